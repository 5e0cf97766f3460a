package pets

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("pet not found")
)

type Repository interface {
	Create(ctx context.Context, p Pet) (Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	Update(ctx context.Context, id int64, p Patch) (bool, error)
	// Delete elimina en cascada las consultas de la mascota.
	Delete(ctx context.Context, id int64) (bool, error)
}
