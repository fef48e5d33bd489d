package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartshop/webapp/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutesAndReversal(t *testing.T) {
	r := router.New()
	r.Get("/products", "catalog", ok)

	admin := r.Group("/admin")
	admin.Get("/orders/{id}", "admin.orders.show", ok)

	path, found := r.Path("catalog")
	assert.True(t, found)
	assert.Equal(t, "/products", path)

	url, err := r.URL("admin.orders.show", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/orders/42", url)

	_, err = r.URL("admin.orders.show", nil)
	assert.Error(t, err, "missing params must not reverse")

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestGroupMiddlewareApplies(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	outer := r.Group("/admin", mw("outer"))
	inner := outer.Group("/orders", mw("inner"))
	inner.Get("/{id}", "show", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders/1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestNotFoundFallback(t *testing.T) {
	r := router.New()
	r.Get("/products", "catalog", ok)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/login", http.StatusFound)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Result().Header.Get("Location"))
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/login", "auth.login", ok)
	r.Post("/login", "auth.login.submit", ok)

	infos := r.Routes()
	assert.Len(t, infos, 2)

	names := map[string]bool{}
	for _, info := range infos {
		names[info.Name] = true
	}
	assert.True(t, names["auth.login"])
	assert.True(t, names["auth.login.submit"])
}
