package memory

import (
	"context"
	"sort"

	"vetclinic/internal/domain/pets"
	"vetclinic/internal/domain/visits"
)

type visitsRepo struct {
	s *Store
}

func (r *visitsRepo) Create(ctx context.Context, v visits.Visit) (visits.Visit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	pet, ok := r.s.pets[v.PetID]
	if !ok {
		return visits.Visit{}, pets.ErrNotFound
	}

	r.s.nextVisitID++
	v.ID = r.s.nextVisitID
	v.Date = visits.DateOnly(v.Date)
	v.PetName = ""
	r.s.visits[v.ID] = v

	v.PetName = pet.Name
	return v, nil
}

func (r *visitsRepo) GetByID(ctx context.Context, id int64) (visits.Visit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.visits[id]
	if !ok {
		return visits.Visit{}, visits.ErrNotFound
	}
	v.PetName = r.s.pets[v.PetID].Name
	return v, nil
}

func (r *visitsRepo) ListByPet(ctx context.Context, petID int64) ([]visits.Visit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	petName := r.s.pets[petID].Name

	out := make([]visits.Visit, 0)
	for _, v := range r.s.visits {
		if v.PetID == petID {
			v.PetName = petName
			out = append(out, v)
		}
	}

	// más recientes primero, igual que el ORDER BY date DESC del store real
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *visitsRepo) Update(ctx context.Context, id int64, p visits.Patch) (bool, error) {
	if p.Empty() {
		return false, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.visits[id]
	if !ok {
		return false, nil
	}

	if p.Date != nil {
		v.Date = visits.DateOnly(*p.Date)
	}
	if p.Reason != nil {
		v.Reason = *p.Reason
	}
	if p.Diagnosis != nil {
		v.Diagnosis = *p.Diagnosis
	}

	v.PetName = ""
	r.s.visits[id] = v
	return true, nil
}

func (r *visitsRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.visits[id]; !ok {
		return false, nil
	}
	delete(r.s.visits, id)
	return true, nil
}
