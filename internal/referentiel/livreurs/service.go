package livreurs

import (
	"context"
	"strings"

	"github.com/gestistock/gestistock/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Livreur, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Livreur, error) {
	if id <= 0 {
		return Livreur{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, l Livreur) (Livreur, error) {
	l.Name = strings.TrimSpace(l.Name)
	l.Phone = strings.TrimSpace(l.Phone)
	if err := validate(l); err != nil {
		return Livreur{}, err
	}
	return s.repo.Create(ctx, l)
}

func (s *Service) Update(ctx context.Context, id int64, l Livreur) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	l.Name = strings.TrimSpace(l.Name)
	l.Phone = strings.TrimSpace(l.Phone)
	if err := validate(l); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, l)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func validate(l Livreur) error {
	return shared.ValidateStruct(l).ErrIfAny()
}
