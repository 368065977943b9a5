package clients

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gestistock/gestistock/internal/shared"
)

type fakeRepo struct {
	seq         int64
	rows        map[int64]Client
	villes      map[int64]bool
	secteurs    map[int64]int64 // secteur id -> ville id
	commerciaux map[int64]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rows:        map[int64]Client{},
		villes:      map[int64]bool{1: true},
		secteurs:    map[int64]int64{10: 1},
		commerciaux: map[int64]bool{5: true},
	}
}

func (f *fakeRepo) List(context.Context) ([]Client, error) {
	var out []Client
	for _, c := range f.rows {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Client, error) {
	c, ok := f.rows[id]
	if !ok {
		return Client{}, shared.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) Create(_ context.Context, c Client) (Client, error) {
	f.seq++
	c.ID = f.seq
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, c Client) error {
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

func (f *fakeRepo) CodeExists(_ context.Context, code string, excludeID int64) (bool, error) {
	for id, c := range f.rows {
		if id != excludeID && strings.EqualFold(c.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) FullNameExists(_ context.Context, fullName string, excludeID int64) (bool, error) {
	for id, c := range f.rows {
		if id != excludeID && strings.EqualFold(c.FullName, fullName) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) VilleExists(_ context.Context, id int64) (bool, error) {
	return f.villes[id], nil
}

func (f *fakeRepo) SecteurInVille(_ context.Context, secteurID, villeID int64) (bool, error) {
	return f.secteurs[secteurID] == villeID, nil
}

func (f *fakeRepo) CommercialExists(_ context.Context, id int64) (bool, error) {
	return f.commerciaux[id], nil
}

func validClient() Client {
	return Client{
		Code:           "CL-001",
		FullName:       "Epicerie Al Amal",
		Phone:          "0612345678",
		VilleID:        1,
		SecteurID:      10,
		Remise:         5,
		RemiseSpeciale: 2.5,
		IsActive:       true,
	}
}

func TestCreateClient(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), validClient())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Nil(t, created.CommercialID)
}

func TestCreateClientNormalizesZeroCommercial(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	// A zero commercial id means "no assignment"; it is nulled before
	// validation so no existence check runs against id 0.
	zero := int64(0)
	c := validClient()
	c.CommercialID = &zero
	created, err := svc.Create(context.Background(), c)
	require.NoError(t, err)
	require.Nil(t, repo.rows[created.ID].CommercialID)
}

func TestCreateClientWithCommercial(t *testing.T) {
	svc := NewService(newFakeRepo())

	five := int64(5)
	c := validClient()
	c.CommercialID = &five
	created, err := svc.Create(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, created.CommercialID)
	require.Equal(t, int64(5), *created.CommercialID)
}

func TestCreateClientRejectsUnknownCommercial(t *testing.T) {
	svc := NewService(newFakeRepo())

	unknown := int64(99)
	c := validClient()
	c.CommercialID = &unknown
	_, err := svc.Create(context.Background(), c)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "commercial_id")
}

func TestCreateClientRejectsForeignSecteur(t *testing.T) {
	repo := newFakeRepo()
	repo.villes[2] = true
	svc := NewService(repo)

	c := validClient()
	c.VilleID = 2 // secteur 10 belongs to ville 1
	_, err := svc.Create(context.Background(), c)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "secteur_id")
}

func TestCreateClientRejectsRemiseAndPhoneBounds(t *testing.T) {
	svc := NewService(newFakeRepo())

	c := validClient()
	c.Remise = 101
	c.Phone = "012345"
	_, err := svc.Create(context.Background(), c)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "remise")
	require.Contains(t, verr.Fields, "phone")
}

func TestClientDiscountsAreIndependent(t *testing.T) {
	svc := NewService(newFakeRepo())

	// A special rate out of range must not hide behind a valid standing
	// discount, and vice versa.
	c := validClient()
	c.RemiseSpeciale = 150
	_, err := svc.Create(context.Background(), c)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "remise_speciale")
	require.NotContains(t, verr.Fields, "remise")

	c = validClient()
	c.Remise = -1
	_, err = svc.Create(context.Background(), c)
	verr, ok = shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "remise")
	require.NotContains(t, verr.Fields, "remise_speciale")

	c = validClient()
	c.Remise = 0
	c.RemiseSpeciale = 100
	created, err := svc.Create(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, 100.0, created.RemiseSpeciale)
}

func TestCreateClientRejectsDuplicateCodeAndName(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), validClient())
	require.NoError(t, err)

	c := validClient()
	c.Code = "cl-001"
	c.FullName = "EPICERIE AL AMAL"
	_, err = svc.Create(context.Background(), c)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "code")
	require.Contains(t, verr.Fields, "full_name")
}
