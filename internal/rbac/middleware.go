package rbac

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gestistock/gestistock/internal/i18n"
	"github.com/gestistock/gestistock/internal/shared"
)

type principalContextKey struct{}

// ContextWithPrincipal stores the principal in context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal from context, nil when the
// request is unauthenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}

// Middleware wires authorization helpers for HTTP handlers.
type Middleware struct {
	Source PermissionSource
	Logger *slog.Logger
}

// LoadPrincipal resolves the session user into a request-scoped Principal.
// Unauthenticated requests pass through without a principal; the permission
// guards reject them.
func (m Middleware) LoadPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil {
			next.ServeHTTP(w, r)
			return
		}
		raw := strings.TrimSpace(sess.User())
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Error("rbac parse user id", slog.String("value", raw))
			}
			next.ServeHTTP(w, r)
			return
		}
		names, err := m.Source.EffectivePermissions(r.Context(), userID)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Error("rbac load permissions", slog.Any("error", err))
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		principal := &Principal{UserID: userID, Permissions: NewPermissionSet(names)}
		next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
	})
}

// Require ensures the current principal holds the permission.
func (m Middleware) Require(perm Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if PrincipalFromContext(r.Context()).Can(perm) {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, i18n.MsgForbidden, http.StatusForbidden)
		})
	}
}

// RequireAny ensures the principal holds at least one of the permissions.
func (m Middleware) RequireAny(perms ...Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			for _, perm := range perms {
				if principal.Can(perm) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, i18n.MsgForbidden, http.StatusForbidden)
		})
	}
}
