package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"vetclinic/internal/adapters/storage/memory"
	"vetclinic/internal/domain/owners"
	"vetclinic/internal/domain/pets"
	"vetclinic/internal/domain/visits"
)

// -------------------------
// Prompter guionado
// -------------------------

type fakePrompt struct {
	confirmCreate bool
	details       owners.CreateInput
	detailsOK     bool
	confirmDelete bool

	createAsked bool
	deleteAsked bool
}

func (f *fakePrompt) ConfirmOwnerCreate(string) bool {
	f.createAsked = true
	return f.confirmCreate
}

func (f *fakePrompt) NewOwnerDetails(string) (owners.CreateInput, bool) {
	return f.details, f.detailsOK
}

func (f *fakePrompt) ConfirmDelete(string) bool {
	f.deleteAsked = true
	return f.confirmDelete
}

func newTestService() (*Service, *memory.Store) {
	store := memory.NewStore()
	svc := NewService(
		owners.NewService(store.Owners()),
		pets.NewService(store.Pets()),
		visits.NewService(store.Visits()),
		zerolog.Nop(),
	)
	return svc, store
}

func seedOwner(t *testing.T, store *memory.Store, name string) owners.Owner {
	t.Helper()
	o, err := store.Owners().Create(context.Background(), owners.Owner{Name: name})
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return o
}

func seedPet(t *testing.T, store *memory.Store, name string, ownerID int64) pets.Pet {
	t.Helper()
	p, err := store.Pets().Create(context.Background(), pets.Pet{Name: name, Species: "dog", Age: 2, OwnerID: ownerID})
	if err != nil {
		t.Fatalf("seed pet: %v", err)
	}
	return p
}

// -------------------------
// Tests
// -------------------------

func TestRegisterPet_ExistingOwner(t *testing.T) {
	svc, store := newTestService()
	o := seedOwner(t, store, "Ana")

	prompt := &fakePrompt{}
	p, err := svc.RegisterPet(context.Background(), RegisterPetInput{
		Name: "Rex", Species: "dog", Breed: "lab", Age: 3, OwnerName: "Ana",
	}, prompt)
	if err != nil {
		t.Fatalf("RegisterPet returned error: %v", err)
	}
	if p.OwnerID != o.ID {
		t.Fatalf("expected owner id %d, got %d", o.ID, p.OwnerID)
	}
	if prompt.createAsked {
		t.Fatalf("should not offer owner creation when the owner exists")
	}
}

func TestRegisterPet_DeclinedOwnerCreation_PersistsNothing(t *testing.T) {
	svc, store := newTestService()

	prompt := &fakePrompt{confirmCreate: false}
	_, err := svc.RegisterPet(context.Background(), RegisterPetInput{
		Name: "Rex", Age: 3, OwnerName: "Nadie",
	}, prompt)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	os, _ := store.Owners().List(context.Background())
	if len(os) != 0 {
		t.Fatalf("expected no owners, got %d", len(os))
	}
	ps, _ := store.Pets().List(context.Background())
	if len(ps) != 0 {
		t.Fatalf("expected no pets, got %d", len(ps))
	}
}

func TestRegisterPet_CreatesOwnerOnAccept(t *testing.T) {
	svc, store := newTestService()

	prompt := &fakePrompt{
		confirmCreate: true,
		details:       owners.CreateInput{Name: "Ana", Phone: "555-1111", Address: "Calle 1"},
		detailsOK:     true,
	}
	p, err := svc.RegisterPet(context.Background(), RegisterPetInput{
		Name: "Rex", Age: 3, OwnerName: "Ana",
	}, prompt)
	if err != nil {
		t.Fatalf("RegisterPet returned error: %v", err)
	}

	owner, err := store.Owners().GetByName(context.Background(), "Ana")
	if err != nil {
		t.Fatalf("owner was not created: %v", err)
	}
	if p.OwnerID != owner.ID {
		t.Fatalf("pet not linked to the new owner")
	}
}

func TestRegisterPet_RecheckReusesExistingOwner(t *testing.T) {
	// El usuario busca "Anna" (typo), acepta crear y teclea "Ana", que ya
	// existe: el doble chequeo debe reusar a Ana, no fallar por duplicado.
	svc, store := newTestService()
	existing := seedOwner(t, store, "Ana")

	prompt := &fakePrompt{
		confirmCreate: true,
		details:       owners.CreateInput{Name: "Ana"},
		detailsOK:     true,
	}
	p, err := svc.RegisterPet(context.Background(), RegisterPetInput{
		Name: "Rex", Age: 3, OwnerName: "Anna",
	}, prompt)
	if err != nil {
		t.Fatalf("RegisterPet returned error: %v", err)
	}
	if p.OwnerID != existing.ID {
		t.Fatalf("expected pet assigned to existing owner %d, got %d", existing.ID, p.OwnerID)
	}

	os, _ := store.Owners().List(context.Background())
	if len(os) != 1 {
		t.Fatalf("expected a single owner, got %d", len(os))
	}
}

func TestRegisterVisit_MissingPetAborts(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.RegisterVisit(context.Background(), visits.CreateInput{
		Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), PetID: 99,
	})
	if !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected pets.ErrNotFound, got %v", err)
	}

	if _, err := store.Visits().GetByID(context.Background(), 1); !errors.Is(err, visits.ErrNotFound) {
		t.Fatalf("no visit should have been persisted")
	}
}

func TestUpdateOwner_RenameConflictRejectsWholeUpdate(t *testing.T) {
	svc, store := newTestService()
	o1 := seedOwner(t, store, "Ana")
	seedOwner(t, store, "Luis")

	name := "Luis"
	phone := "999"
	_, err := svc.UpdateOwner(context.Background(), o1.ID, owners.Patch{Name: &name, Phone: &phone})
	if !errors.Is(err, owners.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	got, _ := store.Owners().GetByID(context.Background(), o1.ID)
	if got.Name != "Ana" || got.Phone != "" {
		t.Fatalf("owner fields must stay unchanged, got %+v", got)
	}
}

func TestUpdateOwner_RenameToOwnNameIsAllowed(t *testing.T) {
	svc, store := newTestService()
	o := seedOwner(t, store, "Ana")

	name := "Ana"
	ok, err := svc.UpdateOwner(context.Background(), o.ID, owners.Patch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateOwner returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected the update to apply")
	}
}

func TestUpdatePet_ReassignsOwnerByName(t *testing.T) {
	svc, store := newTestService()
	o1 := seedOwner(t, store, "Ana")
	o2 := seedOwner(t, store, "Luis")
	p := seedPet(t, store, "Rex", o1.ID)

	res, err := svc.UpdatePet(context.Background(), p.ID, PetUpdate{NewOwnerName: "Luis"})
	if err != nil {
		t.Fatalf("UpdatePet returned error: %v", err)
	}
	if !res.Applied || res.OwnerSkipped {
		t.Fatalf("unexpected result %+v", res)
	}

	got, _ := store.Pets().GetByID(context.Background(), p.ID)
	if got.OwnerID != o2.ID {
		t.Fatalf("expected owner %d, got %d", o2.ID, got.OwnerID)
	}
}

func TestUpdatePet_UnknownOwnerSkipsReassignmentButAppliesRest(t *testing.T) {
	svc, store := newTestService()
	o := seedOwner(t, store, "Ana")
	p := seedPet(t, store, "Rex", o.ID)

	age := 5
	res, err := svc.UpdatePet(context.Background(), p.ID, PetUpdate{
		Patch:        pets.Patch{Age: &age},
		NewOwnerName: "Nadie",
	})
	if err != nil {
		t.Fatalf("UpdatePet returned error: %v", err)
	}
	if !res.OwnerSkipped {
		t.Fatalf("expected OwnerSkipped")
	}
	if !res.Applied {
		t.Fatalf("expected the rest of the patch to apply")
	}

	got, _ := store.Pets().GetByID(context.Background(), p.ID)
	if got.Age != 5 {
		t.Fatalf("expected age 5, got %d", got.Age)
	}
	if got.OwnerID != o.ID {
		t.Fatalf("owner must not change")
	}
}

func TestDeleteOwner_DeclinedLeavesEverything(t *testing.T) {
	svc, store := newTestService()
	o := seedOwner(t, store, "Ana")
	seedPet(t, store, "Rex", o.ID)

	prompt := &fakePrompt{confirmDelete: false}
	err := svc.DeleteOwner(context.Background(), o.ID, prompt)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if !prompt.deleteAsked {
		t.Fatalf("confirmation must be requested")
	}

	if _, err := store.Owners().GetByID(context.Background(), o.ID); err != nil {
		t.Fatalf("owner must still exist: %v", err)
	}
}

func TestDeleteOwner_ConfirmedCascades(t *testing.T) {
	svc, store := newTestService()
	o := seedOwner(t, store, "Ana")
	p := seedPet(t, store, "Rex", o.ID)
	_, err := store.Visits().Create(context.Background(), visits.Visit{
		Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), PetID: p.ID,
	})
	if err != nil {
		t.Fatalf("seed visit: %v", err)
	}

	prompt := &fakePrompt{confirmDelete: true}
	if err := svc.DeleteOwner(context.Background(), o.ID, prompt); err != nil {
		t.Fatalf("DeleteOwner returned error: %v", err)
	}

	if _, err := store.Pets().GetByID(context.Background(), p.ID); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("pet must be gone, got %v", err)
	}
	if _, err := store.Visits().GetByID(context.Background(), 1); !errors.Is(err, visits.ErrNotFound) {
		t.Fatalf("visit must be gone, got %v", err)
	}
}

func TestDeleteVisit_Confirmed(t *testing.T) {
	svc, store := newTestService()
	o := seedOwner(t, store, "Ana")
	p := seedPet(t, store, "Rex", o.ID)
	v, err := store.Visits().Create(context.Background(), visits.Visit{
		Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), PetID: p.ID,
	})
	if err != nil {
		t.Fatalf("seed visit: %v", err)
	}

	if err := svc.DeleteVisit(context.Background(), v.ID, &fakePrompt{confirmDelete: true}); err != nil {
		t.Fatalf("DeleteVisit returned error: %v", err)
	}
	if _, err := store.Pets().GetByID(context.Background(), p.ID); err != nil {
		t.Fatalf("deleting a visit must not touch the pet: %v", err)
	}
}
