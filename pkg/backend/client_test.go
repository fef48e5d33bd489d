package backend_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartshop/webapp/pkg/backend"
	"github.com/smartshop/webapp/pkg/testkit"
)

func newClient(mt *testkit.MockTransport) *backend.Client {
	c := backend.New("http://backend.test")
	c.SetTransport(mt)
	return c
}

func TestQueryDropsEmptyValues(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/products", 200, `{}`)

	_, err := newClient(mt).Get("/products").
		Query("page", "0").
		Query("name", "").
		Send(context.Background())
	require.NoError(t, err)

	q := mt.Requests[0].URL.Query()
	assert.Equal(t, "0", q.Get("page"))
	_, present := q["name"]
	assert.False(t, present)
}

func TestCredentialsForwardedFromContext(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/me/profile", 200, `{}`)

	ctx := backend.WithCredentials(context.Background(), "JSESSIONID=abc")
	_, err := newClient(mt).Get("/me/profile").Send(ctx)
	require.NoError(t, err)

	assert.Equal(t, "JSESSIONID=abc", mt.Requests[0].Header.Get("Cookie"))
}

func TestNoCredentialsNoCookieHeader(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/products", 200, `{}`)

	_, err := newClient(mt).Get("/products").Send(context.Background())
	require.NoError(t, err)

	assert.Empty(t, mt.Requests[0].Header.Get("Cookie"))
}

func TestErrParsesBackendMessage(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/admin/orders/9", 404, `{"message":"Commande introuvable"}`)

	resp, err := newClient(mt).Get("/admin/orders/9").Send(context.Background())
	require.NoError(t, err, "a 404 is a response, not a transport failure")
	require.False(t, resp.OK())

	apiErr := new(backend.APIError)
	require.True(t, errors.As(resp.Err(), &apiErr))
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "Commande introuvable", apiErr.Message)
}

func TestErrFallsBackToErrorField(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/x", 500, `{"error":"boom"}`)

	resp, _ := newClient(mt).Get("/x").Send(context.Background())
	apiErr := new(backend.APIError)
	require.True(t, errors.As(resp.Err(), &apiErr))
	assert.Equal(t, "boom", apiErr.Message)
}

func TestAuthErrorTaxonomy(t *testing.T) {
	unauthorized := &backend.APIError{Status: 401}
	forbidden := &backend.APIError{Status: 403}
	conflict := &backend.APIError{Status: 409}

	assert.True(t, backend.IsUnauthorized(unauthorized))
	assert.False(t, backend.IsUnauthorized(forbidden))

	assert.True(t, backend.IsAuthError(unauthorized))
	assert.True(t, backend.IsAuthError(forbidden))
	assert.False(t, backend.IsAuthError(conflict))
	assert.False(t, backend.IsAuthError(errors.New("plain")))
}

func TestUserMessagePrefersBackendText(t *testing.T) {
	withMessage := &backend.APIError{Status: 409, Message: "Stock insuffisant"}
	assert.Equal(t, "Stock insuffisant", backend.UserMessage(withMessage, "fallback"))

	bare := &backend.APIError{Status: 500}
	assert.Equal(t, "fallback", backend.UserMessage(bare, "fallback"))
	assert.Equal(t, "fallback", backend.UserMessage(errors.New("dial tcp"), "fallback"))
}

func TestNoDeadlineUnlessRequested(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/products", 200, `{}`)
	mt.Stub("GET", "/admin/orders", 200, `[]`)

	c := newClient(mt)

	_, err := c.Get("/products").Send(context.Background())
	require.NoError(t, err)
	_, hasDeadline := mt.Requests[0].Context().Deadline()
	assert.False(t, hasDeadline, "requests honor the caller's context only")

	_, err = c.Get("/admin/orders").Timeout(time.Second).Send(context.Background())
	require.NoError(t, err)
	_, hasDeadline = mt.Requests[1].Context().Deadline()
	assert.True(t, hasDeadline)
}

func TestResponseJSONDecodes(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/products", 200, `{"content":[],"totalPages":3}`)

	resp, err := newClient(mt).Get("/products").Send(context.Background())
	require.NoError(t, err)

	var page struct {
		TotalPages int `json:"totalPages"`
	}
	require.NoError(t, resp.JSON(&page))
	assert.Equal(t, 3, page.TotalPages)
}
