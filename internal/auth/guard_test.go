package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/internal/auth"
)

func authenticated(role string) auth.State {
	return auth.State{
		IsAuthenticated: true,
		User:            &models.ClientProfile{ID: 1, Name: "Jean"},
		Role:            role,
		Status:          auth.StatusSucceeded,
	}
}

func TestDecideTable(t *testing.T) {
	cases := []struct {
		name     string
		state    auth.State
		required string
		want     auth.Outcome
	}{
		{"pending restore shows placeholder", auth.State{Status: auth.StatusLoading}, "", auth.ShowLoading},
		{"idle shows placeholder", auth.State{Status: auth.StatusIdle}, "", auth.ShowLoading},
		{"resolved unauthenticated redirects", auth.State{Status: auth.StatusSucceeded}, "", auth.RedirectLogin},
		{"failed restore redirects", auth.State{Status: auth.StatusFailed}, "", auth.RedirectLogin},
		{"authenticated no role requirement", authenticated(auth.RoleClient), "", auth.Allow},
		{"matching role passes", authenticated(auth.RoleAdmin), auth.RoleAdmin, auth.Allow},
		{"client on admin route redirects to login", authenticated(auth.RoleClient), auth.RoleAdmin, auth.RedirectLogin},
		{"admin on client route redirects to login", authenticated(auth.RoleAdmin), auth.RoleClient, auth.RedirectLogin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, auth.Decide(tc.state, tc.required))
		})
	}
}

func TestStateInvariant(t *testing.T) {
	assert.True(t, authenticated(auth.RoleAdmin).Valid())
	assert.True(t, auth.State{Status: auth.StatusFailed}.Valid())

	// Authenticated without a user, a known role or a terminal success
	// status violates the invariant.
	assert.False(t, auth.State{IsAuthenticated: true, Role: auth.RoleAdmin, Status: auth.StatusSucceeded}.Valid())
	broken := authenticated("SUPERVISOR")
	assert.False(t, broken.Valid())
	pending := authenticated(auth.RoleClient)
	pending.Status = auth.StatusLoading
	assert.False(t, pending.Valid())
}

func TestRoleHelpers(t *testing.T) {
	assert.True(t, authenticated(auth.RoleAdmin).IsAdmin())
	assert.False(t, authenticated(auth.RoleAdmin).IsClient())
	assert.False(t, auth.State{Status: auth.StatusFailed}.IsAdmin())
}
