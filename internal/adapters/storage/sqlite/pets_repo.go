package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"vetclinic/internal/domain/pets"
)

type PetsRepo struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewPetsRepo(db *sql.DB, log zerolog.Logger) *PetsRepo {
	return &PetsRepo{db: db, log: log.With().Str("repo", "pets").Logger()}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (name, species, breed, age, owner_id)
		VALUES (?, ?, ?, ?, ?)
	`, p.Name, p.Species, p.Breed, p.Age, p.OwnerID)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("insert pet: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return pets.Pet{}, fmt.Errorf("insert pet: %w", err)
	}
	p.ID = id

	r.log.Info().Int64("id", p.ID).Str("name", p.Name).Int64("owner_id", p.OwnerID).Msg("pet inserted")
	return p, nil
}

// GetByID trae la mascota junto al nombre de su dueño (JOIN de lectura,
// no es un campo almacenado).
func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.species, p.breed, p.age, p.owner_id, o.name
		FROM pets p
		JOIN owners o ON p.owner_id = o.id
		WHERE p.id = ?
	`, id)

	var p pets.Pet
	if err := row.Scan(&p.ID, &p.Name, &p.Species, &p.Breed, &p.Age, &p.OwnerID, &p.OwnerName); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("scan pet: %w", err)
	}
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.species, p.breed, p.age, p.owner_id, o.name
		FROM pets p
		JOIN owners o ON p.owner_id = o.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		if err := rows.Scan(&p.ID, &p.Name, &p.Species, &p.Breed, &p.Age, &p.OwnerID, &p.OwnerName); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Update(ctx context.Context, id int64, p pets.Patch) (bool, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Species != nil {
		sets = append(sets, "species = ?")
		args = append(args, *p.Species)
	}
	if p.Breed != nil {
		sets = append(sets, "breed = ?")
		args = append(args, *p.Breed)
	}
	if p.Age != nil {
		sets = append(sets, "age = ?")
		args = append(args, *p.Age)
	}
	if p.OwnerID != nil {
		sets = append(sets, "owner_id = ?")
		args = append(args, *p.OwnerID)
	}
	if len(sets) == 0 {
		return false, nil
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE pets SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("update pet: %w", err)
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		r.log.Info().Int64("id", id).Msg("pet updated")
	}
	return n > 0, nil
}

func (r *PetsRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete pet: %w", err)
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		r.log.Info().Int64("id", id).Msg("pet deleted")
	}
	return n > 0, nil
}
