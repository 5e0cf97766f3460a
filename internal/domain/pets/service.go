package pets

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name    string
	Species string
	Breed   string
	Age     int
	OwnerID int64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}
	if in.OwnerID <= 0 {
		return Pet{}, ErrInvalidInput
	}

	p := Pet{
		Name:    strings.TrimSpace(in.Name),
		Species: strings.TrimSpace(in.Species),
		Breed:   strings.TrimSpace(in.Breed),
		Age:     in.Age,
		OwnerID: in.OwnerID,
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, p Patch) (bool, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return false, ErrInvalidInput
	}
	if p.Age != nil && *p.Age < 0 {
		return false, ErrInvalidInput
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
