package produits

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

func (s *Service) List(ctx context.Context) ([]Produit, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Produit, error) {
	if id <= 0 {
		return Produit{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Details serves the purchase-form lookup: reference and case purchase price.
func (s *Service) Details(ctx context.Context, id int64) (ProduitDetails, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return ProduitDetails{}, err
	}
	return ProduitDetails{Ref: p.Ref, PrixAchatColis: p.PrixAchatColis}, nil
}

func (s *Service) Create(ctx context.Context, p Produit) (Produit, error) {
	p = trim(p)
	if err := s.validate(ctx, p, 0); err != nil {
		return Produit{}, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int64, p Produit) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	p = trim(p)
	if err := s.validate(ctx, p, id); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func trim(p Produit) Produit {
	p.Ref = strings.TrimSpace(p.Ref)
	p.Label = strings.TrimSpace(p.Label)
	p.Note = strings.TrimSpace(p.Note)
	return p
}

func (s *Service) validate(ctx context.Context, p Produit, excludeID int64) error {
	verr := shared.ValidateStruct(p)
	if verr.Any() {
		return verr
	}

	taken, err := s.repo.RefExists(ctx, p.Ref, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("ref", "Cette référence est déjà utilisée")
	}
	taken, err = s.repo.LabelExists(ctx, p.Label, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("label", "Ce libellé est déjà utilisé")
	}

	ok, err := s.repo.MarqueExists(ctx, p.MarqueID)
	if err != nil {
		return err
	}
	if !ok {
		verr.Add("marque_id", "La marque sélectionnée n'existe pas")
	}
	ok, err = s.repo.CategorieExists(ctx, p.CategorieID)
	if err != nil {
		return err
	}
	if !ok {
		verr.Add("categorie_id", "La catégorie sélectionnée n'existe pas")
	}
	return verr.ErrIfAny()
}
