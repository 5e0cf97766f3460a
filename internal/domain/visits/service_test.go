package visits

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	byID   map[int64]Visit
	nextID int64
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Visit{}}
}

func (r *testRepo) Create(ctx context.Context, v Visit) (Visit, error) {
	r.nextID++
	v.ID = r.nextID
	r.byID[v.ID] = v
	return v, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Visit, error) {
	v, ok := r.byID[id]
	if !ok {
		return Visit{}, ErrNotFound
	}
	return v, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID int64) ([]Visit, error) {
	out := make([]Visit, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, id int64, p Patch) (bool, error) {
	v, ok := r.byID[id]
	if !ok || p.Empty() {
		return false, nil
	}
	if p.Date != nil {
		v.Date = *p.Date
	}
	r.byID[id] = v
	return true, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func TestService_Create_RequiresDate(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), CreateInput{PetID: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Create_TruncatesTimeOfDay(t *testing.T) {
	svc := NewService(newTestRepo())

	v, err := svc.Create(context.Background(), CreateInput{
		Date:  time.Date(2024, 5, 1, 15, 42, 7, 0, time.Local),
		PetID: 1,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if !v.Date.Equal(want) {
		t.Fatalf("expected %s, got %s", want, v.Date)
	}
}

func TestService_Update_NormalizesDate(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	v, err := svc.Create(context.Background(), CreateInput{
		Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), PetID: 1,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	d := time.Date(2024, 6, 2, 9, 30, 0, 0, time.Local)
	ok, err := svc.Update(context.Background(), v.ID, Patch{Date: &d})
	if err != nil || !ok {
		t.Fatalf("Update: ok=%v err=%v", ok, err)
	}

	got, _ := repo.GetByID(context.Background(), v.ID)
	want := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got.Date)
	}
}
