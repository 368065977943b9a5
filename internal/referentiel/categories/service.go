package categories

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

func (s *Service) List(ctx context.Context) ([]Categorie, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Categorie, error) {
	if id <= 0 {
		return Categorie{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, categorie Categorie) (Categorie, error) {
	categorie.Name = strings.TrimSpace(categorie.Name)
	if err := s.validate(ctx, categorie, 0); err != nil {
		return Categorie{}, err
	}
	return s.repo.Create(ctx, categorie)
}

func (s *Service) Update(ctx context.Context, id int64, categorie Categorie) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	categorie.Name = strings.TrimSpace(categorie.Name)
	if err := s.validate(ctx, categorie, id); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, categorie)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(ctx context.Context, categorie Categorie, excludeID int64) error {
	verr := shared.ValidateStruct(categorie)
	if verr.Any() {
		return verr
	}

	taken, err := s.repo.NameExists(ctx, categorie.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("name", "Cette catégorie existe déjà")
	}
	known, err := s.repo.MarqueExists(ctx, categorie.MarqueID)
	if err != nil {
		return err
	}
	if !known {
		verr.Add("marque_id", "La marque sélectionnée est introuvable")
	}
	return verr.ErrIfAny()
}
