package visits

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("visit not found")
)

type Repository interface {
	Create(ctx context.Context, v Visit) (Visit, error)
	GetByID(ctx context.Context, id int64) (Visit, error)
	// ListByPet devuelve el historial ordenado por fecha descendente.
	ListByPet(ctx context.Context, petID int64) ([]Visit, error)
	Update(ctx context.Context, id int64, p Patch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
