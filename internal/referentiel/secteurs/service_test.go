package secteurs

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gestistock/gestistock/internal/shared"
)

type fakeRepo struct {
	seq    int64
	rows   map[int64]Secteur
	villes map[int64]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]Secteur{}, villes: map[int64]bool{1: true, 2: true}}
}

func (f *fakeRepo) List(context.Context) ([]Secteur, error) {
	var out []Secteur
	for _, s := range f.rows {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) ListByVille(_ context.Context, villeID int64) ([]Secteur, error) {
	var out []Secteur
	for _, s := range f.rows {
		if s.VilleID == villeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Secteur, error) {
	s, ok := f.rows[id]
	if !ok {
		return Secteur{}, shared.ErrNotFound
	}
	return s, nil
}

func (f *fakeRepo) Create(_ context.Context, s Secteur) (Secteur, error) {
	f.seq++
	s.ID = f.seq
	f.rows[s.ID] = s
	return s, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, s Secteur) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	s.ID = id
	f.rows[id] = s
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
	for id, s := range f.rows {
		if id != excludeID && strings.EqualFold(s.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) VilleExists(_ context.Context, villeID int64) (bool, error) {
	return f.villes[villeID], nil
}

func TestCreateSecteur(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), Secteur{Name: "Maarif", VilleID: 1})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestCreateSecteurRejectsUnknownVille(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), Secteur{Name: "Maarif", VilleID: 99})
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "ville_id")
}

func TestListByVilleFiltersAndNeverReturnsNil(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), Secteur{Name: "Maarif", VilleID: 1})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), Secteur{Name: "Agdal", VilleID: 2})
	require.NoError(t, err)

	got, err := svc.ListByVille(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Maarif", got[0].Name)

	// Unknown and non-positive ids yield an empty slice, not nil and not
	// an error, so the JSON endpoint always encodes [].
	got, err = svc.ListByVille(context.Background(), 99)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)

	got, err = svc.ListByVille(context.Background(), 0)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
