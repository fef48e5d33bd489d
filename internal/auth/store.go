package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/app/services"
	"github.com/smartshop/webapp/pkg/backend"
	"github.com/smartshop/webapp/pkg/logger"
	"github.com/smartshop/webapp/pkg/session"
)

// Session keys owned by this package.
const (
	KeyBackendCookie = "backend_cookie"
	KeyRole          = "auth_role"
)

// ErrGeneric is the user-visible fallback for failures that are not an
// authentication problem.
const ErrGeneric = "Une erreur est survenue."

// Store resolves authentication state from the browser session and the
// backend. It holds no state of its own.
type Store struct {
	auth *services.AuthService
}

// NewStore builds a Store over the auth resource service.
func NewStore(auth *services.AuthService) *Store {
	return &Store{auth: auth}
}

// Restore resolves the authentication state for the current session by
// re-validating the stored backend cookie against the profile endpoint.
// A 401/403 resolves silently to logged-out (failed status, no error
// message); any other failure carries a generic user-visible error.
// If ctx is done before the result commits, the idle state is returned.
func (s *Store) Restore(ctx context.Context, sess *session.Session) State {
	cookie, ok := sess.GetString(KeyBackendCookie)
	if !ok || cookie == "" {
		return State{Status: StatusFailed}
	}

	ctx = backend.WithCredentials(ctx, cookie)
	roleHint, _ := sess.GetString(KeyRole)

	var (
		profile *models.ClientProfile
		err     error
	)
	if roleHint == RoleAdmin {
		profile, err = s.auth.AdminProfile(ctx)
	} else {
		profile, err = s.auth.MyProfile(ctx)
	}

	if ctx.Err() != nil {
		// A newer navigation superseded this one; do not commit.
		return State{Status: StatusIdle}
	}

	if err != nil {
		if backend.IsAuthError(err) {
			s.Clear(sess)
			return State{Status: StatusFailed}
		}
		logger.WithCtx(ctx).Warn("auth: restore failed", "error", err)
		return State{Status: StatusFailed, Error: ErrGeneric}
	}

	role := roleHint
	if role == "" {
		role = RoleClient
	}
	return State{
		IsAuthenticated: true,
		User:            profile,
		Role:            role,
		Status:          StatusSucceeded,
	}
}

// SetAuthenticated records a successful login in the session: the backend
// session cookies and the announced role. The caller has already completed
// the credential round-trip; the full state, profile included, comes from
// the next Restore.
func (s *Store) SetAuthenticated(sess *session.Session, role string, cookies []*http.Cookie) {
	sess.Set(KeyBackendCookie, CookieHeader(cookies))
	sess.Set(KeyRole, role)
}

// Logout invalidates the backend session best-effort, then always clears the
// local one. A backend failure is logged and swallowed; the caller navigates
// to the login view regardless.
func (s *Store) Logout(ctx context.Context, sess *session.Session) State {
	if cookie, ok := sess.GetString(KeyBackendCookie); ok && cookie != "" {
		if err := s.auth.Logout(backend.WithCredentials(ctx, cookie)); err != nil {
			logger.WithCtx(ctx).Warn("auth: backend logout failed", "error", err)
		}
	}
	sess.Invalidate()
	return State{Status: StatusIdle}
}

// Clear drops the auth keys from the session without touching the backend.
func (s *Store) Clear(sess *session.Session) {
	sess.Delete(KeyBackendCookie)
	sess.Delete(KeyRole)
}

// CookieHeader flattens Set-Cookie values into a Cookie header string.
func CookieHeader(cookies []*http.Cookie) string {
	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return strings.Join(pairs, "; ")
}
