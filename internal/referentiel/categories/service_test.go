package categories

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gestistock/gestistock/internal/shared"
)

type fakeRepo struct {
	seq     int64
	rows    map[int64]Categorie
	marques map[int64]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]Categorie{}, marques: map[int64]bool{1: true}}
}

func (f *fakeRepo) List(context.Context) ([]Categorie, error) {
	var out []Categorie
	for _, c := range f.rows {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Categorie, error) {
	c, ok := f.rows[id]
	if !ok {
		return Categorie{}, shared.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) Create(_ context.Context, c Categorie) (Categorie, error) {
	f.seq++
	c.ID = f.seq
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, c Categorie) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	c.ID = id
	f.rows[id] = c
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) NameExists(_ context.Context, name string, excludeID int64) (bool, error) {
	for id, c := range f.rows {
		if id != excludeID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) MarqueExists(_ context.Context, id int64) (bool, error) {
	return f.marques[id], nil
}

func TestCreateCategorie(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), Categorie{Name: "Huiles", MarqueID: 1})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestCreateCategorieRejectsUnknownMarque(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), Categorie{Name: "Huiles", MarqueID: 99})
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "marque_id")
}

func TestCreateCategorieRejectsDuplicateName(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), Categorie{Name: "Huiles", MarqueID: 1})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), Categorie{Name: "huiles", MarqueID: 1})
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "name")
}
