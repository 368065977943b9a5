package promotions

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/gestistock/gestistock/internal/shared"
)

type Service struct {
	repo   Repository
	lookup singleflight.Group
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Promotion, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Promotion, error) {
	if id <= 0 {
		return Promotion{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// ForProduct resolves the active promotion for a product reference. Order
// forms fire this on every quantity change, so concurrent lookups for the
// same reference are collapsed into one query.
func (s *Service) ForProduct(ctx context.Context, ref string) (Promotion, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Promotion{}, shared.ErrNotFound
	}
	v, err, _ := s.lookup.Do(strings.ToLower(ref), func() (any, error) {
		return s.repo.FindActiveByProductRef(ctx, ref)
	})
	if err != nil {
		return Promotion{}, err
	}
	return v.(Promotion), nil
}

func (s *Service) Create(ctx context.Context, p Promotion) (Promotion, error) {
	if err := s.validate(ctx, p, 0); err != nil {
		return Promotion{}, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int64, p Promotion) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
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

func (s *Service) validate(ctx context.Context, p Promotion, excludeID int64) error {
	verr := shared.ValidateStruct(p)
	if verr.Any() {
		return verr
	}

	ok, err := s.repo.ProduitExists(ctx, p.ProduitID)
	if err != nil {
		return err
	}
	if !ok {
		verr.Add("produit_id", "Le produit sélectionné n'existe pas")
	}
	ok, err = s.repo.ProduitExists(ctx, p.OfferedProduitID)
	if err != nil {
		return err
	}
	if !ok {
		verr.Add("offered_produit_id", "Le produit offert sélectionné n'existe pas")
	}
	taken, err := s.repo.ProductPromotionExists(ctx, p.ProduitID, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("produit_id", "Ce produit a déjà une promotion")
	}
	return verr.ErrIfAny()
}
