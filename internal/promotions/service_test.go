package promotions

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gestistock/gestistock/internal/shared"
)

type fakeProduit struct {
	ref, label string
}

type fakeRepo struct {
	seq      int64
	rows     map[int64]Promotion
	produits map[int64]fakeProduit
	lookups  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rows: map[int64]Promotion{},
		produits: map[int64]fakeProduit{
			1: {ref: "REF-001", label: "Huile 5L"},
			2: {ref: "REF-002", label: "Huile 1L"},
		},
	}
}

// hydrate fills the joined product columns the way the SQL select does.
func (f *fakeRepo) hydrate(p Promotion) Promotion {
	p.ProduitRef = f.produits[p.ProduitID].ref
	p.ProduitLabel = f.produits[p.ProduitID].label
	p.OfferedProduitRef = f.produits[p.OfferedProduitID].ref
	p.OfferedProduitLabel = f.produits[p.OfferedProduitID].label
	return p
}

func (f *fakeRepo) List(context.Context) ([]Promotion, error) {
	var out []Promotion
	for _, p := range f.rows {
		out = append(out, f.hydrate(p))
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Promotion, error) {
	p, ok := f.rows[id]
	if !ok {
		return Promotion{}, shared.ErrNotFound
	}
	return f.hydrate(p), nil
}

func (f *fakeRepo) Create(_ context.Context, p Promotion) (Promotion, error) {
	f.seq++
	p.ID = f.seq
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, p Promotion) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	p.ID = id
	f.rows[id] = p
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) FindActiveByProductRef(_ context.Context, ref string) (Promotion, error) {
	f.lookups++
	for _, p := range f.rows {
		if p.IsActive && strings.EqualFold(f.produits[p.ProduitID].ref, ref) {
			return f.hydrate(p), nil
		}
	}
	return Promotion{}, shared.ErrNotFound
}

func (f *fakeRepo) ProductPromotionExists(_ context.Context, produitID, excludeID int64) (bool, error) {
	for id, p := range f.rows {
		if id != excludeID && p.ProduitID == produitID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ProduitExists(_ context.Context, produitID int64) (bool, error) {
	_, ok := f.produits[produitID]
	return ok, nil
}

func validPromotion() Promotion {
	return Promotion{
		ProduitID:        1,
		OfferedProduitID: 2,
		BuyQuantity:      6,
		FreeQuantity:     1,
		IsActive:         true,
	}
}

func TestCreatePromotion(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), validPromotion())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestCreatePromotionRejectsBadQuantities(t *testing.T) {
	svc := NewService(newFakeRepo())

	p := validPromotion()
	p.BuyQuantity = 0
	p.FreeQuantity = 0
	_, err := svc.Create(context.Background(), p)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "buy_quantity")
	require.Contains(t, verr.Fields, "free_quantity")
}

func TestCreatePromotionRequiresBothProducts(t *testing.T) {
	svc := NewService(newFakeRepo())

	p := validPromotion()
	p.OfferedProduitID = 0
	_, err := svc.Create(context.Background(), p)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "offered_produit_id")
}

func TestCreatePromotionRejectsUnknownOfferedProduct(t *testing.T) {
	svc := NewService(newFakeRepo())

	p := validPromotion()
	p.OfferedProduitID = 99
	_, err := svc.Create(context.Background(), p)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "offered_produit_id")
}

func TestCreatePromotionRejectsSecondPromotionForProduct(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), validPromotion())
	require.NoError(t, err)

	second := validPromotion()
	second.BuyQuantity = 12
	second.FreeQuantity = 3
	_, err = svc.Create(context.Background(), second)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "produit_id")
}

func TestForProductReturnsOfferedProduct(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), validPromotion())
	require.NoError(t, err)

	// The stock-in form builds its synthetic free line from the offered
	// product, which is a different reference than the trigger.
	p, err := svc.ForProduct(context.Background(), "ref-001")
	require.NoError(t, err)
	require.Equal(t, 6, p.BuyQuantity)
	require.Equal(t, int64(2), p.OfferedProduitID)
	require.Equal(t, "REF-002", p.OfferedProduitRef)
	require.Equal(t, "Huile 1L", p.OfferedProduitLabel)

	_, err = svc.ForProduct(context.Background(), "REF-404")
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.ForProduct(context.Background(), "  ")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestForProductInactivePromotionIsInvisible(t *testing.T) {
	svc := NewService(newFakeRepo())

	p := validPromotion()
	p.IsActive = false
	_, err := svc.Create(context.Background(), p)
	require.NoError(t, err)

	_, err = svc.ForProduct(context.Background(), "REF-001")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPromotionMayOfferItsOwnTrigger(t *testing.T) {
	svc := NewService(newFakeRepo())

	p := validPromotion()
	p.OfferedProduitID = 1
	_, err := svc.Create(context.Background(), p)
	require.NoError(t, err)

	got, err := svc.ForProduct(context.Background(), "REF-001")
	require.NoError(t, err)
	require.Equal(t, "REF-001", got.OfferedProduitRef)
}
