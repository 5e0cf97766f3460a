package owners

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("owner not found")
	ErrDuplicateName = errors.New("owner name already in use")
)

type Repository interface {
	Create(ctx context.Context, o Owner) (Owner, error)
	GetByID(ctx context.Context, id int64) (Owner, error)
	// GetByName es búsqueda exacta (la colación la decide el store).
	GetByName(ctx context.Context, name string) (Owner, error)
	List(ctx context.Context) ([]Owner, error)
	Update(ctx context.Context, id int64, p Patch) (bool, error)
	// Delete elimina en cascada las mascotas del dueño y sus consultas.
	Delete(ctx context.Context, id int64) (bool, error)
}
