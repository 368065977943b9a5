package produits

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gestistock/gestistock/internal/shared"
)

type fakeRepo struct {
	seq        int64
	rows       map[int64]Produit
	marques    map[int64]bool
	categories map[int64]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rows:       map[int64]Produit{},
		marques:    map[int64]bool{1: true},
		categories: map[int64]bool{1: true},
	}
}

func (f *fakeRepo) List(context.Context) ([]Produit, error) {
	var out []Produit
	for _, p := range f.rows {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Produit, error) {
	p, ok := f.rows[id]
	if !ok {
		return Produit{}, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) Create(_ context.Context, p Produit) (Produit, error) {
	f.seq++
	p.ID = f.seq
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, p Produit) error {
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

func (f *fakeRepo) RefExists(_ context.Context, ref string, excludeID int64) (bool, error) {
	for id, p := range f.rows {
		if id != excludeID && strings.EqualFold(p.Ref, ref) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) LabelExists(_ context.Context, label string, excludeID int64) (bool, error) {
	for id, p := range f.rows {
		if id != excludeID && strings.EqualFold(p.Label, label) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) MarqueExists(_ context.Context, id int64) (bool, error) {
	return f.marques[id], nil
}

func (f *fakeRepo) CategorieExists(_ context.Context, id int64) (bool, error) {
	return f.categories[id], nil
}

func validProduit() Produit {
	return Produit{
		Ref:            "REF-001",
		Label:          "Huile de table 5L",
		MarqueID:       1,
		CategorieID:    1,
		PrixAchatColis: 240,
		PrixAchatUnite: 40,
		PrixVenteColis: 270,
		PrixVenteUnite: 45,
		Weight:         5.2,
		UnitsPerCase:   6,
		IsActive:       true,
	}
}

func TestCreateProduit(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), validProduit())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestCreateProduitRejectsPriceOverflow(t *testing.T) {
	svc := NewService(newFakeRepo())

	p := validProduit()
	p.PrixVenteColis = 100_000_000
	_, err := svc.Create(context.Background(), p)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "prix_vente_colis")
}

func TestCreateProduitRejectsUnitsOutOfRange(t *testing.T) {
	svc := NewService(newFakeRepo())

	p := validProduit()
	p.UnitsPerCase = 0
	_, err := svc.Create(context.Background(), p)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "units_per_case")

	p.UnitsPerCase = 10000
	_, err = svc.Create(context.Background(), p)
	verr, ok = shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "units_per_case")
}

func TestCreateProduitRejectsDuplicateRef(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), validProduit())
	require.NoError(t, err)

	p := validProduit()
	p.Ref = "ref-001"
	p.Label = "Autre libellé"
	_, err = svc.Create(context.Background(), p)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "ref")
}

func TestUpdateProduitKeepsOwnRef(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), validProduit())
	require.NoError(t, err)

	p := validProduit()
	p.Label = "Huile de table 5L (nouveau)"
	require.NoError(t, svc.Update(context.Background(), created.ID, p))
}

func TestCreateProduitRejectsUnknownMarque(t *testing.T) {
	svc := NewService(newFakeRepo())

	p := validProduit()
	p.MarqueID = 99
	_, err := svc.Create(context.Background(), p)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "marque_id")
}

func TestDetails(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), validProduit())
	require.NoError(t, err)

	d, err := svc.Details(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "REF-001", d.Ref)
	require.Equal(t, 240.0, d.PrixAchatColis)

	_, err = svc.Details(context.Background(), 999)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
