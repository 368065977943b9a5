package villes

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

func (s *Service) List(ctx context.Context) ([]Ville, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Ville, error) {
	if id <= 0 {
		return Ville{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, ville Ville) (Ville, error) {
	ville.Name = strings.TrimSpace(ville.Name)
	if err := s.validate(ctx, ville, 0); err != nil {
		return Ville{}, err
	}
	return s.repo.Create(ctx, ville)
}

func (s *Service) Update(ctx context.Context, id int64, ville Ville) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	ville.Name = strings.TrimSpace(ville.Name)
	if err := s.validate(ctx, ville, id); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, ville)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// validate enforces the required and unique name rules. excludeID removes
// the row itself from its own uniqueness check on update.
func (s *Service) validate(ctx context.Context, ville Ville, excludeID int64) error {
	verr := shared.ValidateStruct(ville)
	if verr.Any() {
		return verr
	}
	taken, err := s.repo.NameExists(ctx, ville.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("name", "Cette ville existe déjà")
	}
	return verr.ErrIfAny()
}
