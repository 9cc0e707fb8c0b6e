package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/productcatalog/webapp/app/api"
	"github.com/productcatalog/webapp/models"
	"github.com/productcatalog/webapp/session"
)

type contextKey struct{}

// NewContext returns ctx carrying the session.
func NewContext(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session attached by Require, or nil.
func FromContext(ctx context.Context) *session.Session {
	s, _ := ctx.Value(contextKey{}).(*session.Session)
	return s
}

// Require rejects requests that do not carry a valid session token and
// attaches the resolved session to the request context.
func Require(sessions SessionStore, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessions.Lookup(bearerToken(r))
		if !ok {
			api.Error(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r.WithContext(NewContext(r.Context(), s)))
	}
}

// RequireCapability is the single place mutating routes check the
// acting role. can is a models.Role capability method, for example
// models.Role.CanManageCatalog.
func RequireCapability(sessions SessionStore, can func(models.Role) bool, next http.HandlerFunc) http.HandlerFunc {
	return Require(sessions, func(w http.ResponseWriter, r *http.Request) {
		if s := FromContext(r.Context()); !can(s.Role) {
			api.Error(w, http.StatusForbidden, "Insufficient permissions")
			return
		}
		next(w, r)
	})
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, prefix) {
		return h[len(prefix):]
	}
	return ""
}
