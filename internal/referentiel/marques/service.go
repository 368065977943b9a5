package marques

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

func (s *Service) List(ctx context.Context) ([]Marque, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Marque, error) {
	if id <= 0 {
		return Marque{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, marque Marque) (Marque, error) {
	marque.Name = strings.TrimSpace(marque.Name)
	if err := s.validate(ctx, marque, 0); err != nil {
		return Marque{}, err
	}
	return s.repo.Create(ctx, marque)
}

func (s *Service) Update(ctx context.Context, id int64, marque Marque) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	marque.Name = strings.TrimSpace(marque.Name)
	if err := s.validate(ctx, marque, id); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, marque)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(ctx context.Context, marque Marque, excludeID int64) error {
	verr := shared.ValidateStruct(marque)
	if verr.Any() {
		return verr
	}
	taken, err := s.repo.NameExists(ctx, marque.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("name", "Cette marque existe déjà")
	}
	return verr.ErrIfAny()
}
