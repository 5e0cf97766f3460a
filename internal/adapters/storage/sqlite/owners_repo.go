package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"vetclinic/internal/domain/owners"
)

type OwnersRepo struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewOwnersRepo(db *sql.DB, log zerolog.Logger) *OwnersRepo {
	return &OwnersRepo{db: db, log: log.With().Str("repo", "owners").Logger()}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (name, phone, address) VALUES (?, ?, ?)
	`, o.Name, o.Phone, o.Address)
	if err != nil {
		if isUniqueViolation(err) {
			r.log.Warn().Str("name", o.Name).Msg("duplicate owner name rejected")
			return owners.Owner{}, owners.ErrDuplicateName
		}
		return owners.Owner{}, fmt.Errorf("insert owner: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return owners.Owner{}, fmt.Errorf("insert owner: %w", err)
	}
	o.ID = id

	r.log.Info().Int64("id", o.ID).Str("name", o.Name).Msg("owner inserted")
	return o, nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id int64) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, address FROM owners WHERE id = ?
	`, id)
	return scanOwner(row)
}

func (r *OwnersRepo) GetByName(ctx context.Context, name string) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, address FROM owners WHERE name = ?
	`, name)
	return scanOwner(row)
}

func (r *OwnersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, address FROM owners
	`)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		var o owners.Owner
		if err := rows.Scan(&o.ID, &o.Name, &o.Phone, &o.Address); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OwnersRepo) Update(ctx context.Context, id int64, p owners.Patch) (bool, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *p.Phone)
	}
	if p.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *p.Address)
	}
	if len(sets) == 0 {
		return false, nil
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE owners SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, owners.ErrDuplicateName
		}
		return false, fmt.Errorf("update owner: %w", err)
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		r.log.Info().Int64("id", id).Msg("owner updated")
	}
	return n > 0, nil
}

func (r *OwnersRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM owners WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete owner: %w", err)
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		// las mascotas y consultas dependientes caen por la FK en cascada
		r.log.Info().Int64("id", id).Msg("owner deleted")
	}
	return n > 0, nil
}

func scanOwner(row *sql.Row) (owners.Owner, error) {
	var o owners.Owner
	if err := row.Scan(&o.ID, &o.Name, &o.Phone, &o.Address); err != nil {
		if err == sql.ErrNoRows {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, fmt.Errorf("scan owner: %w", err)
	}
	return o, nil
}
