package memory

import (
	"sync"

	"vetclinic/internal/domain/owners"
	"vetclinic/internal/domain/pets"
	"vetclinic/internal/domain/visits"
)

// Store es el backend en memoria: un solo mutex y los tres mapas juntos,
// para poder cascar borrados entre entidades igual que lo hace la FK en
// SQLite. Sirve para el modo efímero y para tests.
type Store struct {
	mu sync.RWMutex

	owners map[int64]owners.Owner
	pets   map[int64]pets.Pet
	visits map[int64]visits.Visit

	nextOwnerID int64
	nextPetID   int64
	nextVisitID int64
}

func NewStore() *Store {
	return &Store{
		owners: make(map[int64]owners.Owner),
		pets:   make(map[int64]pets.Pet),
		visits: make(map[int64]visits.Visit),
	}
}

func (s *Store) Owners() owners.Repository { return &ownersRepo{s: s} }
func (s *Store) Pets() pets.Repository     { return &petsRepo{s: s} }
func (s *Store) Visits() visits.Repository { return &visitsRepo{s: s} }

// deletePetLocked borra la mascota y sus consultas. Requiere s.mu tomado.
func (s *Store) deletePetLocked(petID int64) {
	for id, v := range s.visits {
		if v.PetID == petID {
			delete(s.visits, id)
		}
	}
	delete(s.pets, petID)
}
