package visits

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// DateLayout es el formato ISO con el que se persisten las fechas.
const DateLayout = "2006-01-02"

// DateOnly descarta la hora, dejando la fecha calendario en UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Date      time.Time
	Reason    string
	Diagnosis string
	PetID     int64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Visit, error) {
	if in.Date.IsZero() {
		return Visit{}, ErrInvalidInput
	}
	if in.PetID <= 0 {
		return Visit{}, ErrInvalidInput
	}

	v := Visit{
		Date:      DateOnly(in.Date),
		Reason:    strings.TrimSpace(in.Reason),
		Diagnosis: strings.TrimSpace(in.Diagnosis),
		PetID:     in.PetID,
	}
	return s.repo.Create(ctx, v)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Visit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID int64) ([]Visit, error) {
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) Update(ctx context.Context, id int64, p Patch) (bool, error) {
	if p.Date != nil {
		if p.Date.IsZero() {
			return false, ErrInvalidInput
		}
		d := DateOnly(*p.Date)
		p.Date = &d
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
