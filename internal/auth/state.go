// Package auth holds the per-request authentication state and the role
// guard applied to protected routes. The Store is constructed once at
// bootstrap and injected; handlers read the resolved State from the
// request context.
package auth

import "github.com/smartshop/webapp/app/models"

// Roles the backend announces at login.
const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

// Restore lifecycle statuses. A request only ever renders on a terminal
// status (succeeded or failed).
const (
	StatusIdle      = "idle"
	StatusLoading   = "loading"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// State is the resolved authentication state for one request.
//
// Invariant: IsAuthenticated implies Role is ADMIN or CLIENT, User is
// non-nil and Status is succeeded.
type State struct {
	IsAuthenticated bool
	User            *models.ClientProfile
	Role            string
	Status          string
	Error           string
}

// Valid reports whether the state upholds the authenticated invariant.
func (s State) Valid() bool {
	if !s.IsAuthenticated {
		return true
	}
	return (s.Role == RoleAdmin || s.Role == RoleClient) &&
		s.User != nil &&
		s.Status == StatusSucceeded
}

// IsAdmin reports an authenticated admin.
func (s State) IsAdmin() bool { return s.IsAuthenticated && s.Role == RoleAdmin }

// IsClient reports an authenticated client.
func (s State) IsClient() bool { return s.IsAuthenticated && s.Role == RoleClient }
