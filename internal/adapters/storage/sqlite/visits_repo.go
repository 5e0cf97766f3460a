package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vetclinic/internal/domain/visits"
)

type VisitsRepo struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewVisitsRepo(db *sql.DB, log zerolog.Logger) *VisitsRepo {
	return &VisitsRepo{db: db, log: log.With().Str("repo", "visits").Logger()}
}

func (r *VisitsRepo) Create(ctx context.Context, v visits.Visit) (visits.Visit, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO visits (date, reason, diagnosis, pet_id)
		VALUES (?, ?, ?, ?)
	`, v.Date.Format(visits.DateLayout), v.Reason, v.Diagnosis, v.PetID)
	if err != nil {
		return visits.Visit{}, fmt.Errorf("insert visit: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return visits.Visit{}, fmt.Errorf("insert visit: %w", err)
	}
	v.ID = id

	r.log.Info().Int64("id", v.ID).Int64("pet_id", v.PetID).Msg("visit inserted")
	return v, nil
}

func (r *VisitsRepo) GetByID(ctx context.Context, id int64) (visits.Visit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT v.id, v.date, v.reason, v.diagnosis, v.pet_id, p.name
		FROM visits v
		JOIN pets p ON v.pet_id = p.id
		WHERE v.id = ?
	`, id)

	v, err := scanVisit(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return visits.Visit{}, visits.ErrNotFound
		}
		return visits.Visit{}, err
	}
	return v, nil
}

// ListByPet devuelve el historial de la mascota, fechas más recientes primero.
func (r *VisitsRepo) ListByPet(ctx context.Context, petID int64) ([]visits.Visit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT v.id, v.date, v.reason, v.diagnosis, v.pet_id, p.name
		FROM visits v
		JOIN pets p ON v.pet_id = p.id
		WHERE v.pet_id = ?
		ORDER BY v.date DESC
	`, petID)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	out := make([]visits.Visit, 0)
	for rows.Next() {
		v, err := scanVisit(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VisitsRepo) Update(ctx context.Context, id int64, p visits.Patch) (bool, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if p.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, p.Date.Format(visits.DateLayout))
	}
	if p.Reason != nil {
		sets = append(sets, "reason = ?")
		args = append(args, *p.Reason)
	}
	if p.Diagnosis != nil {
		sets = append(sets, "diagnosis = ?")
		args = append(args, *p.Diagnosis)
	}
	if len(sets) == 0 {
		return false, nil
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE visits SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("update visit: %w", err)
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		r.log.Info().Int64("id", id).Msg("visit updated")
	}
	return n > 0, nil
}

func (r *VisitsRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM visits WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete visit: %w", err)
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		r.log.Info().Int64("id", id).Msg("visit deleted")
	}
	return n > 0, nil
}

// scanVisit convierte una fila en Visit, parseando la fecha ISO almacenada.
func scanVisit(scan func(dest ...any) error) (visits.Visit, error) {
	var v visits.Visit
	var raw string
	if err := scan(&v.ID, &raw, &v.Reason, &v.Diagnosis, &v.PetID, &v.PetName); err != nil {
		return visits.Visit{}, err
	}

	d, err := time.ParseInLocation(visits.DateLayout, raw, time.UTC)
	if err != nil {
		return visits.Visit{}, fmt.Errorf("parse stored visit date %q: %w", raw, err)
	}
	v.Date = d
	return v, nil
}
