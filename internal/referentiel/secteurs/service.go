package secteurs

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

func (s *Service) List(ctx context.Context) ([]Secteur, error) {
	return s.repo.List(ctx)
}

// ListByVille feeds the dependent dropdown of the client and secteur forms.
// An unknown or non-positive ville id yields an empty slice, never an error.
func (s *Service) ListByVille(ctx context.Context, villeID int64) ([]Secteur, error) {
	if villeID <= 0 {
		return []Secteur{}, nil
	}
	secteurs, err := s.repo.ListByVille(ctx, villeID)
	if err != nil {
		return nil, err
	}
	if secteurs == nil {
		secteurs = []Secteur{}
	}
	return secteurs, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Secteur, error) {
	if id <= 0 {
		return Secteur{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, secteur Secteur) (Secteur, error) {
	secteur.Name = strings.TrimSpace(secteur.Name)
	if err := s.validate(ctx, secteur, 0); err != nil {
		return Secteur{}, err
	}
	return s.repo.Create(ctx, secteur)
}

func (s *Service) Update(ctx context.Context, id int64, secteur Secteur) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	secteur.Name = strings.TrimSpace(secteur.Name)
	if err := s.validate(ctx, secteur, id); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, secteur)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(ctx context.Context, secteur Secteur, excludeID int64) error {
	verr := shared.ValidateStruct(secteur)
	if verr.Any() {
		return verr
	}

	taken, err := s.repo.NameExists(ctx, secteur.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("name", "Ce secteur existe déjà")
	}
	known, err := s.repo.VilleExists(ctx, secteur.VilleID)
	if err != nil {
		return err
	}
	if !known {
		verr.Add("ville_id", "La ville sélectionnée est introuvable")
	}
	return verr.ErrIfAny()
}
