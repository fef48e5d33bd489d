package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartshop/webapp/app/services"
	"github.com/smartshop/webapp/internal/auth"
	"github.com/smartshop/webapp/pkg/backend"
	"github.com/smartshop/webapp/pkg/session"
	"github.com/smartshop/webapp/pkg/testkit"
)

func newStore(mt *testkit.MockTransport) *auth.Store {
	client := backend.New("http://backend.test")
	client.SetTransport(mt)
	return auth.NewStore(services.NewAuthService(client))
}

func newSession() *session.Session {
	return session.FromCtx(httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestRestoreClientSession(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/me/profile", 200, `{"id":7,"name":"Jean Dupont","email":"jean@example.com","tier":"SILVER"}`)
	store := newStore(mt)

	sess := newSession()
	sess.Set(auth.KeyBackendCookie, "JSESSIONID=abc123")
	sess.Set(auth.KeyRole, auth.RoleClient)

	state := store.Restore(context.Background(), sess)

	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, auth.RoleClient, state.Role)
	assert.Equal(t, auth.StatusSucceeded, state.Status)
	require.NotNil(t, state.User)
	assert.Equal(t, "Jean Dupont", state.User.Name)
	assert.True(t, state.Valid())

	// The stored backend cookie must ride along on the profile call.
	require.Len(t, mt.Requests, 1)
	assert.Equal(t, "JSESSIONID=abc123", mt.Requests[0].Header.Get("Cookie"))
}

func TestRestoreAdminHintTargetsAdminEndpoint(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/admin/me", 200, `{"id":1,"name":"Admin"}`)
	store := newStore(mt)

	sess := newSession()
	sess.Set(auth.KeyBackendCookie, "JSESSIONID=root")
	sess.Set(auth.KeyRole, auth.RoleAdmin)

	state := store.Restore(context.Background(), sess)

	assert.True(t, state.IsAdmin())
	require.Len(t, mt.Requests, 1)
	assert.Equal(t, "/admin/me", mt.Requests[0].URL.Path)
}

func TestRestoreExpiredCookieIsSilent(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/me/profile", 401, `{"message":"unauthorized"}`)
	store := newStore(mt)

	sess := newSession()
	sess.Set(auth.KeyBackendCookie, "JSESSIONID=stale")
	sess.Set(auth.KeyRole, auth.RoleClient)

	state := store.Restore(context.Background(), sess)

	assert.False(t, state.IsAuthenticated)
	assert.Equal(t, auth.StatusFailed, state.Status)
	assert.Empty(t, state.Error, "an auth failure must stay silent")

	_, stillThere := sess.Get(auth.KeyBackendCookie)
	assert.False(t, stillThere, "stale credentials must be dropped")
}

func TestRestoreBackendOutageShowsGenericError(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/me/profile", 500, `{"error":"boom"}`)
	store := newStore(mt)

	sess := newSession()
	sess.Set(auth.KeyBackendCookie, "JSESSIONID=abc")

	state := store.Restore(context.Background(), sess)

	assert.False(t, state.IsAuthenticated)
	assert.Equal(t, auth.StatusFailed, state.Status)
	assert.Equal(t, "Une erreur est survenue.", state.Error)
}

func TestRestoreWithoutCookieSkipsNetwork(t *testing.T) {
	mt := testkit.NewMockTransport()
	store := newStore(mt)

	state := store.Restore(context.Background(), newSession())

	assert.False(t, state.IsAuthenticated)
	assert.Equal(t, auth.StatusFailed, state.Status)
	assert.Empty(t, mt.Requests)
}

func TestRestoreCanceledContextDoesNotCommit(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/me/profile", 200, `{"id":7,"name":"Jean"}`)
	store := newStore(mt)

	sess := newSession()
	sess.Set(auth.KeyBackendCookie, "JSESSIONID=abc")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state := store.Restore(ctx, sess)
	assert.Equal(t, auth.StatusIdle, state.Status)
	assert.False(t, state.IsAuthenticated)
}

func TestSetAuthenticatedPersistsCredentials(t *testing.T) {
	store := newStore(testkit.NewMockTransport())
	sess := newSession()

	cookies := []*http.Cookie{{Name: "JSESSIONID", Value: "fresh"}}
	store.SetAuthenticated(sess, auth.RoleAdmin, cookies)

	stored, _ := sess.GetString(auth.KeyBackendCookie)
	assert.Equal(t, "JSESSIONID=fresh", stored)
	role, _ := sess.GetString(auth.KeyRole)
	assert.Equal(t, auth.RoleAdmin, role)
}

func TestLogoutAlwaysClearsLocally(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("POST", "/auth/logout", 502, `{"message":"backend down"}`)
	store := newStore(mt)

	sess := newSession()
	sess.Set(auth.KeyBackendCookie, "JSESSIONID=abc")

	state := store.Logout(context.Background(), sess)

	assert.False(t, state.IsAuthenticated)
	_, ok := sess.Get(auth.KeyBackendCookie)
	assert.False(t, ok, "local session must be cleared even when the backend call fails")
	assert.Equal(t, 1, mt.Calls("POST", "/auth/logout"))
}

func TestCookieHeader(t *testing.T) {
	header := auth.CookieHeader([]*http.Cookie{
		{Name: "JSESSIONID", Value: "abc"},
		{Name: "XSRF-TOKEN", Value: "tok"},
	})
	assert.Equal(t, "JSESSIONID=abc; XSRF-TOKEN=tok", header)
}
