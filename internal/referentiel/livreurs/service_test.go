package livreurs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gestistock/gestistock/internal/shared"
)

type fakeRepo struct {
	seq  int64
	rows map[int64]Livreur
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]Livreur{}}
}

func (f *fakeRepo) List(context.Context) ([]Livreur, error) {
	var out []Livreur
	for _, l := range f.rows {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Livreur, error) {
	l, ok := f.rows[id]
	if !ok {
		return Livreur{}, shared.ErrNotFound
	}
	return l, nil
}

func (f *fakeRepo) Create(_ context.Context, l Livreur) (Livreur, error) {
	f.seq++
	l.ID = f.seq
	f.rows[l.ID] = l
	return l, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, l Livreur) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	l.ID = id
	f.rows[id] = l
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func TestCreateLivreur(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), Livreur{Name: "  Youssef Alami  ", Phone: " 0612345678 "})
	require.NoError(t, err)
	require.Equal(t, "Youssef Alami", created.Name)
	require.Equal(t, "0612345678", created.Phone)
	require.NotZero(t, created.ID)
}

func TestCreateLivreurRequiresNameAndPhone(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), Livreur{Name: "   ", Phone: ""})
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "name")
	require.Contains(t, verr.Fields, "phone")
}

func TestUpdateLivreurUnknownID(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.Update(context.Background(), 42, Livreur{Name: "Youssef Alami", Phone: "0612345678"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteLivreurUnknownID(t *testing.T) {
	svc := NewService(newFakeRepo())
	require.ErrorIs(t, svc.Delete(context.Background(), 42), shared.ErrNotFound)
}
