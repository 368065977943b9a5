package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestistock/gestistock/internal/shared"
)

type fakeRepo struct {
	users    map[string]*User
	sessions map[string]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*User{}, sessions: map[string]int64{}}
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) CreateSession(_ context.Context, id string, userID int64, _ time.Time, _, _ string) error {
	f.sessions[id] = userID
	return nil
}

func (f *fakeRepo) DeleteSession(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func seedUser(t *testing.T, repo *fakeRepo, email, password string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users[email] = &User{
		ID:           1,
		Email:        email,
		FullName:     "Admin",
		PasswordHash: string(hash),
		IsActive:     active,
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "admin@gestistock.ma", "motdepasse", true)
	svc := NewService(repo)

	user, err := svc.Authenticate(context.Background(), "admin@gestistock.ma", "motdepasse")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "admin@gestistock.ma", "motdepasse", true)
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "admin@gestistock.ma", "autre")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Authenticate(context.Background(), "nobody@gestistock.ma", "motdepasse")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, "admin@gestistock.ma", "motdepasse", false)
	svc := NewService(repo)

	// Disabled accounts get the same opaque error as bad credentials.
	_, err := svc.Authenticate(context.Background(), "admin@gestistock.ma", "motdepasse")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
