package memory

import (
	"context"

	"vetclinic/internal/domain/owners"
)

type ownersRepo struct {
	s *Store
}

func (r *ownersRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.owners {
		if existing.Name == o.Name {
			return owners.Owner{}, owners.ErrDuplicateName
		}
	}

	r.s.nextOwnerID++
	o.ID = r.s.nextOwnerID
	r.s.owners[o.ID] = o
	return o, nil
}

func (r *ownersRepo) GetByID(ctx context.Context, id int64) (owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.owners[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *ownersRepo) GetByName(ctx context.Context, name string) (owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.owners {
		if o.Name == name {
			return o, nil
		}
	}
	return owners.Owner{}, owners.ErrNotFound
}

func (r *ownersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]owners.Owner, 0, len(r.s.owners))
	for _, o := range r.s.owners {
		out = append(out, o)
	}
	return out, nil
}

func (r *ownersRepo) Update(ctx context.Context, id int64, p owners.Patch) (bool, error) {
	if p.Empty() {
		return false, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.owners[id]
	if !ok {
		return false, nil
	}

	if p.Name != nil {
		for _, other := range r.s.owners {
			if other.ID != id && other.Name == *p.Name {
				return false, owners.ErrDuplicateName
			}
		}
		o.Name = *p.Name
	}
	if p.Phone != nil {
		o.Phone = *p.Phone
	}
	if p.Address != nil {
		o.Address = *p.Address
	}

	r.s.owners[id] = o
	return true, nil
}

func (r *ownersRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[id]; !ok {
		return false, nil
	}

	// cascada manual: mascotas del dueño y consultas de esas mascotas
	for petID, p := range r.s.pets {
		if p.OwnerID == id {
			r.s.deletePetLocked(petID)
		}
	}
	delete(r.s.owners, id)
	return true, nil
}
