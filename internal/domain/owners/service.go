package owners

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
	Phone   string
	Address string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Owner, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Owner{}, ErrInvalidInput
	}

	o := Owner{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
	return s.repo.Create(ctx, o)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Owner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (Owner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Owner{}, ErrInvalidInput
	}
	return s.repo.GetByName(ctx, name)
}

func (s *Service) List(ctx context.Context) ([]Owner, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, p Patch) (bool, error) {
	// Un rename a nombre vacío no es un "no tocar", es un error.
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return false, ErrInvalidInput
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
