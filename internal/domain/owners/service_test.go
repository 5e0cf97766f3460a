package owners

import (
	"context"
	"errors"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID   map[int64]Owner
	nextID int64
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Owner{}}
}

func (r *testRepo) Create(ctx context.Context, o Owner) (Owner, error) {
	for _, existing := range r.byID {
		if existing.Name == o.Name {
			return Owner{}, ErrDuplicateName
		}
	}
	r.nextID++
	o.ID = r.nextID
	r.byID[o.ID] = o
	return o, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Owner, error) {
	o, ok := r.byID[id]
	if !ok {
		return Owner{}, ErrNotFound
	}
	return o, nil
}

func (r *testRepo) GetByName(ctx context.Context, name string) (Owner, error) {
	for _, o := range r.byID {
		if o.Name == name {
			return o, nil
		}
	}
	return Owner{}, ErrNotFound
}

func (r *testRepo) List(ctx context.Context) ([]Owner, error) {
	out := make([]Owner, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, o)
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, id int64, p Patch) (bool, error) {
	o, ok := r.byID[id]
	if !ok || p.Empty() {
		return false, nil
	}
	if p.Name != nil {
		o.Name = *p.Name
	}
	if p.Phone != nil {
		o.Phone = *p.Phone
	}
	if p.Address != nil {
		o.Address = *p.Address
	}
	r.byID[id] = o
	return true, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_RequiresName(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), CreateInput{Name: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Create_TrimsFields(t *testing.T) {
	svc := NewService(newTestRepo())

	o, err := svc.Create(context.Background(), CreateInput{
		Name: "  Ana ", Phone: " 555-1111 ", Address: " Calle 1 ",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if o.Name != "Ana" || o.Phone != "555-1111" || o.Address != "Calle 1" {
		t.Fatalf("fields not trimmed: %+v", o)
	}
	if o.ID == 0 {
		t.Fatalf("expected an assigned id")
	}
}

func TestService_GetByName_RejectsEmpty(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.GetByName(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Update_RejectsBlankName(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	o, err := svc.Create(context.Background(), CreateInput{Name: "Ana"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	blank := "  "
	if _, err := svc.Update(context.Background(), o.ID, Patch{Name: &blank}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, _ := repo.GetByID(context.Background(), o.ID)
	if got.Name != "Ana" {
		t.Fatalf("name must stay unchanged, got %q", got.Name)
	}
}
