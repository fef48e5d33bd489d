// Package routes mounts the console's route table. Guarded groups carry
// the role they require; everything unknown falls back to the login view.
package routes

import (
	"net/http"

	"github.com/smartshop/webapp/app/controllers"
	"github.com/smartshop/webapp/app/services"
	"github.com/smartshop/webapp/internal/auth"
	"github.com/smartshop/webapp/pkg/router"
)

// Deps carries the shared singletons the controllers need.
type Deps struct {
	AuthStore *auth.Store
	Auth      *services.AuthService
	Products  *services.ProductService
	Clients   *services.ClientService
	Orders    *services.OrderService
	Payments  *services.PaymentService
}

// Register mounts every console route on r.
func Register(r *router.Router, d Deps) {
	authC := controllers.NewAuthController(d.AuthStore, d.Auth)
	catalogC := controllers.NewCatalogController(d.Products)
	meC := controllers.NewMeController(d.Orders)
	dashC := controllers.NewDashboardController(d.Clients, d.Products, d.Orders)
	customerC := controllers.NewCustomerController(d.Clients)
	productC := controllers.NewProductAdminController(d.Products)
	orderC := controllers.NewOrderController(d.Orders, d.Payments, d.Clients, d.Products)

	r.Get("/", "home", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/products", http.StatusFound)
	})

	r.Get("/login", "auth.login", authC.ShowLogin)
	r.Post("/login", "auth.login.submit", authC.Login)
	r.Post("/logout", "auth.logout", authC.Logout)

	r.Get("/products", "catalog", catalogC.Index)

	me := r.Group("/me", auth.Require(d.AuthStore, auth.RoleClient))
	me.Get("/profile", "me.profile", meC.Profile)
	me.Get("/orders", "me.orders", meC.Orders)
	me.Get("/orders/{id}", "me.orders.show", meC.OrderDetail)

	admin := r.Group("/admin", auth.Require(d.AuthStore, auth.RoleAdmin))
	admin.Get("/dashboard", "admin.dashboard", dashC.Index)

	admin.Get("/customers", "admin.customers", customerC.Index)
	admin.Get("/customers/{id}", "admin.customers.show", customerC.Show)
	admin.Post("/customers/{id}", "admin.customers.update", customerC.Update)

	admin.Get("/products", "admin.products", productC.Index)
	admin.Get("/products/new", "admin.products.new", productC.NewForm)
	admin.Post("/products", "admin.products.create", productC.Create)
	admin.Get("/products/{id}/edit", "admin.products.edit", productC.EditForm)
	admin.Post("/products/{id}", "admin.products.update", productC.Update)
	admin.Post("/products/{id}/delete", "admin.products.delete", productC.Delete)

	admin.Get("/orders", "admin.orders", orderC.Index)
	admin.Get("/orders/new", "admin.orders.new", orderC.NewForm)
	admin.Post("/orders", "admin.orders.create", orderC.Create)
	admin.Get("/orders/{id}", "admin.orders.show", orderC.Show)
	admin.Post("/orders/{id}/confirm", "admin.orders.confirm", orderC.Transition("confirm"))
	admin.Post("/orders/{id}/cancel", "admin.orders.cancel", orderC.Transition("cancel"))
	admin.Post("/orders/{id}/reject", "admin.orders.reject", orderC.Transition("reject"))
	admin.Post("/orders/{id}/payments", "admin.orders.payments.create", orderC.CreatePayment)
	admin.Post("/payments/{id}/encash", "admin.payments.encash", orderC.Encash)

	// Unknown paths land on the login view.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
}
