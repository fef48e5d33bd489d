package auth

import (
	"context"
	"net/http"

	"github.com/smartshop/webapp/pkg/backend"
	"github.com/smartshop/webapp/pkg/session"
)

// Outcome is the guard's verdict for one navigation.
type Outcome int

const (
	// Allow serves the requested view.
	Allow Outcome = iota
	// ShowLoading renders a neutral placeholder while restore is pending.
	ShowLoading
	// RedirectLogin sends the visitor to the login view. Used both for
	// unauthenticated visitors and for role mismatches.
	RedirectLogin
)

// Decide applies the route guard table. requiredRole is empty when any
// authenticated visitor may pass.
func Decide(s State, requiredRole string) Outcome {
	switch s.Status {
	case StatusIdle, StatusLoading:
		return ShowLoading
	}
	if !s.IsAuthenticated {
		return RedirectLogin
	}
	if requiredRole != "" && s.Role != requiredRole {
		return RedirectLogin
	}
	return Allow
}

type stateKey struct{}

// WithState stores the resolved state in ctx.
func WithState(ctx context.Context, s State) context.Context {
	return context.WithValue(ctx, stateKey{}, s)
}

// FromCtx returns the state resolved by the guard middleware, or the zero
// idle state when no guard ran.
func FromCtx(ctx context.Context) State {
	if s, ok := ctx.Value(stateKey{}).(State); ok {
		return s
	}
	return State{Status: StatusIdle}
}

// Require guards a route subtree. It restores the auth state once per
// request, injects it (plus the backend credentials) into the context and
// applies the decision table before the handler runs.
func Require(store *Store, requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromCtx(r)
			state := store.Restore(r.Context(), sess)

			switch Decide(state, requiredRole) {
			case RedirectLogin:
				_ = sess.Save(w)
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			case ShowLoading:
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				_, _ = w.Write([]byte("<p>Chargement de la session...</p>"))
				return
			}

			ctx := WithState(r.Context(), state)
			if cookie, ok := sess.GetString(KeyBackendCookie); ok {
				ctx = backend.WithCredentials(ctx, cookie)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
