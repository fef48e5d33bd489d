package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartshop/webapp/app/routes"
	"github.com/smartshop/webapp/app/services"
	"github.com/smartshop/webapp/internal/auth"
	"github.com/smartshop/webapp/pkg/backend"
	"github.com/smartshop/webapp/pkg/router"
	"github.com/smartshop/webapp/pkg/session"
	"github.com/smartshop/webapp/pkg/testkit"
)

// newApp wires the full route table over a stubbed backend, with real
// session middleware backed by an in-memory store.
func newApp(mt *testkit.MockTransport) http.Handler {
	client := backend.New("http://backend.test")
	client.SetTransport(mt)

	authSvc := services.NewAuthService(client)
	deps := routes.Deps{
		AuthStore: auth.NewStore(authSvc),
		Auth:      authSvc,
		Products:  services.NewProductService(client),
		Clients:   services.NewClientService(client),
		Orders:    services.NewOrderService(client),
		Payments:  services.NewPaymentService(client),
	}

	mgr := session.NewManager(session.NewMemoryStore(time.Hour), session.DefaultOptions())

	r := router.New()
	r.Use(mgr.Middleware())
	routes.Register(r, deps)
	return r.Handler()
}

func postForm(app http.Handler, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func get(app http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "smartshop_session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

// loginAs walks the real login flow against stubbed backend responses and
// returns the issued browser session cookie.
func loginAs(t *testing.T, app http.Handler, mt *testkit.MockTransport, role string) *http.Cookie {
	t.Helper()
	mt.Stub("POST", "/auth/login", 200, "Logged in as "+role).
		SetCookie("JSESSIONID=backend-session; Path=/; HttpOnly")

	rec := postForm(app, "/login", url.Values{"username": {"admin"}, "password": {"admin"}})
	require.Equal(t, http.StatusFound, rec.Code)
	return sessionCookie(t, rec)
}

func TestLoginAdminLandsOnDashboard(t *testing.T) {
	mt := testkit.NewMockTransport()
	app := newApp(mt)

	cookie := loginAs(t, app, mt, "ADMIN")

	mt.Stub("GET", "/admin/me", 200, `{"id":1,"name":"Admin"}`)
	mt.Stub("GET", "/admin/clients", 200, `[{"id":1,"name":"Jean","email":"jean@example.com","tier":"BASIC"}]`)
	mt.Stub("GET", "/admin/products", 200, `[{"id":1,"name":"Souris","unitPrice":25,"stockQuantity":3}]`)
	mt.Stub("GET", "/admin/orders", 200, `[{"id":1,"status":"PENDING","totalTtc":336,"remainingAmount":336}]`)

	rec := get(app, "/admin/dashboard", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dashboard admin")

	// The guard restored the admin session against /admin/me.
	assert.Equal(t, 1, mt.Calls("GET", "/admin/me"))
}

func TestLoginInvalidCredentialsShowsExactMessage(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("POST", "/auth/login", 401, `{"message":"Bad credentials"}`)
	app := newApp(mt)

	rec := postForm(app, "/login", url.Values{"username": {"admin"}, "password": {"nope"}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nom d&#39;utilisateur ou mot de passe incorrect.")
}

func TestLoginBackendOutageShowsGenericMessage(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("POST", "/auth/login", 500, ``)
	app := newApp(mt)

	rec := postForm(app, "/login", url.Values{"username": {"admin"}, "password": {"admin"}})
	assert.Contains(t, rec.Body.String(), "Une erreur est survenue.")
}

func TestGuardRedirectsAnonymousVisitors(t *testing.T) {
	app := newApp(testkit.NewMockTransport())

	for _, path := range []string{"/admin/dashboard", "/admin/orders", "/me/profile", "/me/orders"} {
		rec := get(app, path)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Result().Header.Get("Location"), path)
	}
}

func TestGuardRejectsWrongRole(t *testing.T) {
	mt := testkit.NewMockTransport()
	app := newApp(mt)

	cookie := loginAs(t, app, mt, "CLIENT")
	mt.Stub("GET", "/me/profile", 200, `{"id":7,"name":"Jean"}`)

	rec := get(app, "/admin/dashboard", cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Result().Header.Get("Location"))
}

func TestUnknownPathFallsBackToLogin(t *testing.T) {
	app := newApp(testkit.NewMockTransport())

	rec := get(app, "/definitely/not/a/route")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Result().Header.Get("Location"))
}

func TestCatalogIsPublic(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/products", 200, `{"content":[{"id":1,"name":"Souris sans fil","unitPrice":25.5,"stockQuantity":4}],"number":0,"size":12,"totalPages":1,"totalElements":1}`)
	app := newApp(mt)

	rec := get(app, "/products")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Souris sans fil")
}

func TestRejectedOrderCreationShowsStockMessage(t *testing.T) {
	mt := testkit.NewMockTransport()
	app := newApp(mt)

	cookie := loginAs(t, app, mt, "ADMIN")
	mt.Stub("GET", "/admin/me", 200, `{"id":1,"name":"Admin"}`)
	mt.Stub("POST", "/admin/orders", 200, `{"id":12,"status":"REJECTED","totalTtc":0,"remainingAmount":0}`)
	mt.Stub("GET", "/admin/orders", 200, `[{"id":12,"status":"REJECTED","totalTtc":0,"remainingAmount":0}]`)

	rec := postForm(app, "/admin/orders", url.Values{
		"clientId":           {"4"},
		"items[0].productId": {"1"},
		"items[0].quantity":  {"999"},
	}, cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/orders", rec.Result().Header.Get("Location"))

	// The rejection surfaces on the next page rather than vanishing.
	rec = get(app, "/admin/orders", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Commande créée mais rejetée pour stock insuffisant sur au moins un produit.")
}

func TestOrderDetailSettlementGate(t *testing.T) {
	mt := testkit.NewMockTransport()
	app := newApp(mt)

	cookie := loginAs(t, app, mt, "ADMIN")
	mt.Stub("GET", "/admin/me", 200, `{"id":1,"name":"Admin"}`)
	mt.Stub("GET", "/admin/orders/3/payments", 200, `[{"id":5,"orderId":3,"amount":120,"type":"CHECK","status":"PENDING"}]`)
	mt.Stub("GET", "/admin/orders/3", 200, `{"id":3,"clientId":4,"status":"PENDING","subTotalHt":300,"tvaAmount":56,"totalHtAfterDiscount":280,"totalTtc":336,"remainingAmount":216,"items":[]}`)

	rec := get(app, "/admin/orders/3", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Partially paid")
	// A partially settled pending order keeps confirm disabled.
	assert.Contains(t, body, "disabled")
	assert.Contains(t, body, "Encaisser")
	// The payment form carries every field the handler reads.
	assert.Contains(t, body, `name="paymentDate"`)
	assert.Contains(t, body, `name="dueDate"`)
}

func TestPaymentOverRemainingRejectedBeforeNetwork(t *testing.T) {
	mt := testkit.NewMockTransport()
	app := newApp(mt)

	cookie := loginAs(t, app, mt, "ADMIN")
	mt.Stub("GET", "/admin/me", 200, `{"id":1,"name":"Admin"}`)
	mt.Stub("GET", "/admin/orders/3/payments", 200, `[]`)
	mt.Stub("GET", "/admin/orders/3", 200, `{"id":3,"status":"PENDING","totalTtc":336,"remainingAmount":216,"items":[]}`)

	rec := postForm(app, "/admin/orders/3/payments", url.Values{
		"amount": {"500"},
		"type":   {"CASH"},
	}, cookie)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Le montant dépasse le restant dû.")
	assert.Equal(t, 0, mt.Calls("POST", "/admin/payments"))
}

func TestLogoutClearsSessionAndRedirects(t *testing.T) {
	mt := testkit.NewMockTransport()
	app := newApp(mt)

	cookie := loginAs(t, app, mt, "ADMIN")
	mt.Stub("POST", "/auth/logout", 200, "Logged out")

	rec := postForm(app, "/logout", url.Values{}, cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Result().Header.Get("Location"))

	// The guarded area is gone once the session is invalidated.
	rec = get(app, "/admin/dashboard", cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Result().Header.Get("Location"))
}

func TestMeProfileRendersGuardResolvedUser(t *testing.T) {
	mt := testkit.NewMockTransport()
	app := newApp(mt)

	cookie := loginAs(t, app, mt, "CLIENT")
	mt.Stub("GET", "/me/profile", 200, `{"id":7,"name":"Jean Dupont","email":"jean@example.com","tier":"GOLD","totalOrders":3,"totalSpent":912.5}`)

	rec := get(app, "/me/profile", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jean Dupont")
	assert.Contains(t, rec.Body.String(), "GOLD")
}
