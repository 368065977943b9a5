package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/gestistock/gestistock/internal/shared"
)

type staticSource struct {
	perms map[int64][]string
}

func (s staticSource) EffectivePermissions(_ context.Context, userID int64) ([]string, error) {
	return s.perms[userID], nil
}

func newGatedRouter(t *testing.T, mw Middleware) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	r.Use(mw.LoadPrincipal)
	r.With(mw.Require(View(ResVilles))).Get("/villes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.With(mw.Require(Delete(ResVilles))).Post("/villes/1/delete", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func requestWithUser(method, target, userID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	sess := &shared.Session{}
	sess.SetUser(userID)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func TestRequireAllowsGrantedPermission(t *testing.T) {
	mw := Middleware{Source: staticSource{perms: map[int64][]string{7: {"villes.view"}}}}
	router := newGatedRouter(t, mw)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, requestWithUser(http.MethodGet, "/villes", "7"))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRejectsMissingPermission(t *testing.T) {
	mw := Middleware{Source: staticSource{perms: map[int64][]string{7: {"villes.view"}}}}
	router := newGatedRouter(t, mw)

	// view does not imply delete
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, requestWithUser(http.MethodPost, "/villes/1/delete", "7"))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRejectsAnonymous(t *testing.T) {
	mw := Middleware{Source: staticSource{}}
	router := newGatedRouter(t, mw)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/villes", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)
}
