package marques

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gestistock/gestistock/internal/shared"
)

type fakeRepo struct {
	seq  int64
	rows map[int64]Marque
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]Marque{}}
}

func (f *fakeRepo) List(context.Context) ([]Marque, error) {
	var out []Marque
	for _, m := range f.rows {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Marque, error) {
	m, ok := f.rows[id]
	if !ok {
		return Marque{}, shared.ErrNotFound
	}
	return m, nil
}

func (f *fakeRepo) Create(_ context.Context, m Marque) (Marque, error) {
	f.seq++
	m.ID = f.seq
	f.rows[m.ID] = m
	return m, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, m Marque) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	m.ID = id
	f.rows[id] = m
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
	for id, m := range f.rows {
		if id != excludeID && strings.EqualFold(m.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateMarque(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), Marque{Name: "  Lesieur  "})
	require.NoError(t, err)
	require.Equal(t, "Lesieur", created.Name)
	require.NotZero(t, created.ID)
}

func TestCreateMarqueRejectsEmptyName(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), Marque{Name: "   "})
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "name")
}

func TestCreateMarqueRejectsDuplicateName(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), Marque{Name: "Lesieur"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), Marque{Name: "lesieur"})
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "name")
}

func TestUpdateMarqueKeepsOwnName(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), Marque{Name: "Lesieur"})
	require.NoError(t, err)

	require.NoError(t, svc.Update(context.Background(), created.ID, Marque{Name: "Lesieur"}))
}

func TestDeleteMarqueUnknownID(t *testing.T) {
	svc := NewService(newFakeRepo())
	require.ErrorIs(t, svc.Delete(context.Background(), 42), shared.ErrNotFound)
}
