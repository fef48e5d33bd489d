package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/app/services"
	"github.com/smartshop/webapp/app/views"
	"github.com/smartshop/webapp/internal/auth"
	"github.com/smartshop/webapp/internal/reconcile"
)

// MeController serves the client self-service screens. The guard has
// already resolved the profile, so Profile renders straight from context.
type MeController struct {
	orders *services.OrderService
}

func NewMeController(orders *services.OrderService) *MeController {
	return &MeController{orders: orders}
}

func (c *MeController) Profile(w http.ResponseWriter, r *http.Request) {
	state := auth.FromCtx(r.Context())
	views.Render(w, r, http.StatusOK, "me_profile", views.Page{
		Title: "Mon profil",
		Flash: flash(w, r),
		Data:  state.User,
	})
}

func (c *MeController) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.MyOrders(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	views.Render(w, r, http.StatusOK, "me_orders", views.Page{
		Title: "Mes commandes",
		Flash: flash(w, r),
		Data:  orderRows(orders),
	})
}

type meOrderDetailData struct {
	Order           models.Order
	TotalPaid       float64
	Settlement      string
	SettlementClass string
}

// OrderDetail renders one of the visitor's own orders. The backend exposes
// no per-order endpoint for clients, so the order is picked out of the
// owner's list; an unknown ID falls through to a 404.
func (c *MeController) OrderDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		views.RenderError(w, r, http.StatusNotFound, "Commande introuvable.")
		return
	}

	orders, err := c.orders.MyOrders(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	for _, o := range orders {
		if o.ID == id {
			views.Render(w, r, http.StatusOK, "me_order_detail", views.Page{
				Title: "Commande n°" + strconv.FormatInt(id, 10),
				Data: meOrderDetailData{
					Order:           o,
					TotalPaid:       reconcile.TotalPaid(o),
					Settlement:      reconcile.StatusLabel(o),
					SettlementClass: settlementClass(o),
				},
			})
			return
		}
	}
	views.RenderError(w, r, http.StatusNotFound, "Commande introuvable.")
}
