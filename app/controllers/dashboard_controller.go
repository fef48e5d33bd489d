package controllers

import (
	"net/http"
	"sync"

	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/app/services"
	"github.com/smartshop/webapp/app/views"
)

type DashboardController struct {
	clients  *services.ClientService
	products *services.ProductService
	orders   *services.OrderService
}

func NewDashboardController(clients *services.ClientService, products *services.ProductService, orders *services.OrderService) *DashboardController {
	return &DashboardController{clients: clients, products: products, orders: orders}
}

type dashboardData struct {
	ClientCount  int
	ProductCount int
	OrderCount   int
	PendingCount int
	Revenue      float64
	Outstanding  float64
}

// Index aggregates the three admin collections, fetched concurrently; the
// first failure wins.
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	var (
		wg       sync.WaitGroup
		clients  []models.ClientProfile
		products []models.Product
		orders   []models.Order
		errs     [3]error
	)

	wg.Add(3)
	go func() { defer wg.Done(); clients, errs[0] = c.clients.List(r.Context()) }()
	go func() { defer wg.Done(); products, errs[1] = c.products.AdminList(r.Context()) }()
	go func() { defer wg.Done(); orders, errs[2] = c.orders.AdminList(r.Context()) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			handleError(w, r, err)
			return
		}
	}

	data := dashboardData{
		ClientCount:  len(clients),
		ProductCount: len(products),
		OrderCount:   len(orders),
	}
	for _, o := range orders {
		switch o.Status {
		case models.OrderPending:
			data.PendingCount++
			data.Outstanding += o.RemainingAmount
		case models.OrderConfirmed:
			data.Revenue += o.TotalTTC
			data.Outstanding += o.RemainingAmount
		}
	}

	views.Render(w, r, http.StatusOK, "admin_dashboard", views.Page{
		Title: "Dashboard admin",
		Flash: flash(w, r),
		Data:  data,
	})
}
