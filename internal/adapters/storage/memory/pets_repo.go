package memory

import (
	"context"

	"vetclinic/internal/domain/owners"
	"vetclinic/internal/domain/pets"
)

type petsRepo struct {
	s *Store
}

func (r *petsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	owner, ok := r.s.owners[p.OwnerID]
	if !ok {
		// misma garantía que la FK: nunca una mascota sin dueño
		return pets.Pet{}, owners.ErrNotFound
	}

	r.s.nextPetID++
	p.ID = r.s.nextPetID
	p.OwnerName = ""
	r.s.pets[p.ID] = p

	p.OwnerName = owner.Name
	return p, nil
}

func (r *petsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	p.OwnerName = r.s.owners[p.OwnerID].Name
	return p, nil
}

func (r *petsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.s.pets))
	for _, p := range r.s.pets {
		p.OwnerName = r.s.owners[p.OwnerID].Name
		out = append(out, p)
	}
	return out, nil
}

func (r *petsRepo) Update(ctx context.Context, id int64, patch pets.Patch) (bool, error) {
	if patch.Empty() {
		return false, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.pets[id]
	if !ok {
		return false, nil
	}

	if patch.OwnerID != nil {
		if _, ok := r.s.owners[*patch.OwnerID]; !ok {
			return false, owners.ErrNotFound
		}
		p.OwnerID = *patch.OwnerID
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Species != nil {
		p.Species = *patch.Species
	}
	if patch.Breed != nil {
		p.Breed = *patch.Breed
	}
	if patch.Age != nil {
		p.Age = *patch.Age
	}

	p.OwnerName = ""
	r.s.pets[id] = p
	return true, nil
}

func (r *petsRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[id]; !ok {
		return false, nil
	}
	r.s.deletePetLocked(id)
	return true, nil
}
