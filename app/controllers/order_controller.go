package controllers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/smartshop/webapp/app/forms"
	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/app/services"
	"github.com/smartshop/webapp/app/views"
	"github.com/smartshop/webapp/internal/reconcile"
)

// orderFormRows is the number of blank item lines on the creation form.
const orderFormRows = 5

// Messages flashed after order creation; the rejected one must surface
// instead of silently navigating away.
const (
	orderCreated  = "Commande créée avec succès."
	orderRejected = "Commande créée mais rejetée pour stock insuffisant sur au moins un produit."
)

type OrderController struct {
	orders   *services.OrderService
	payments *services.PaymentService
	clients  *services.ClientService
	products *services.ProductService
}

func NewOrderController(orders *services.OrderService, payments *services.PaymentService, clients *services.ClientService, products *services.ProductService) *OrderController {
	return &OrderController{orders: orders, payments: payments, clients: clients, products: products}
}

func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.AdminList(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	views.Render(w, r, http.StatusOK, "admin_orders", views.Page{
		Title: "Commandes",
		Flash: flash(w, r),
		Data:  orderRows(orders),
	})
}

type orderNewData struct {
	Clients  []models.ClientProfile
	Products []models.Product
	Rows     int
	Form     forms.OrderForm
	Errors   forms.Errors
	Message  string
}

// NewForm renders the creation screen. Clients and products are fetched
// concurrently and joined before anything renders.
func (c *OrderController) NewForm(w http.ResponseWriter, r *http.Request) {
	data, err := c.loadFormData(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	data.Errors = forms.Errors{}
	views.Render(w, r, http.StatusOK, "admin_order_new", views.Page{
		Title: "Nouvelle commande",
		Data:  data,
	})
}

func (c *OrderController) loadFormData(r *http.Request) (orderNewData, error) {
	var (
		wg      sync.WaitGroup
		clients []models.ClientProfile
		prods   []models.Product
		errs    [2]error
	)
	wg.Add(2)
	go func() { defer wg.Done(); clients, errs[0] = c.clients.List(r.Context()) }()
	go func() { defer wg.Done(); prods, errs[1] = c.products.AdminList(r.Context()) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return orderNewData{}, err
		}
	}
	return orderNewData{Clients: clients, Products: prods, Rows: orderFormRows}, nil
}

// Create submits the order. The backend may accept it with a REJECTED
// status (insufficient stock); that still counts as created, but the
// rejection message is flashed so it is never silent.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseOrder(r)
	if errs := form.Validate(); errs.Has() {
		data, lerr := c.loadFormData(r)
		if lerr != nil {
			handleError(w, r, lerr)
			return
		}
		data.Form = form
		data.Errors = errs
		views.Render(w, r, http.StatusUnprocessableEntity, "admin_order_new", views.Page{
			Title: "Nouvelle commande",
			Data:  data,
		})
		return
	}

	order, err := c.orders.Create(r.Context(), form.ToRequest())
	if err != nil {
		data, lerr := c.loadFormData(r)
		if lerr != nil {
			handleError(w, r, lerr)
			return
		}
		data.Form = form
		data.Errors = forms.Errors{}
		data.Message = userMessage(err)
		views.Render(w, r, http.StatusBadGateway, "admin_order_new", views.Page{
			Title: "Nouvelle commande",
			Data:  data,
		})
		return
	}

	if order.Status == models.OrderRejected {
		putFlash(w, r, orderRejected)
	} else {
		putFlash(w, r, orderCreated)
	}
	http.Redirect(w, r, "/admin/orders", http.StatusFound)
}

type orderDetailData struct {
	Order           models.Order
	Payments        []models.Payment
	TotalPaid       float64
	Settlement      string
	SettlementClass string
	CanTransition   bool
	CanConfirm      bool
	CanPay          bool
	PaymentForm     forms.PaymentForm
	PaymentErrors   forms.Errors
	Message         string
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		views.RenderError(w, r, http.StatusNotFound, "Commande introuvable.")
		return
	}
	data, err := c.loadDetail(r, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	views.Render(w, r, http.StatusOK, "admin_order_detail", views.Page{
		Title: "Commande n°" + strconv.FormatInt(id, 10),
		Flash: flash(w, r),
		Data:  data,
	})
}

func (c *OrderController) loadDetail(r *http.Request, id int64) (orderDetailData, error) {
	var (
		wg       sync.WaitGroup
		order    *models.Order
		payments []models.Payment
		errs     [2]error
	)
	wg.Add(2)
	go func() { defer wg.Done(); order, errs[0] = c.orders.Get(r.Context(), id) }()
	go func() { defer wg.Done(); payments, errs[1] = c.payments.ListByOrder(r.Context(), id) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return orderDetailData{}, err
		}
	}

	o := *order
	return orderDetailData{
		Order:           o,
		Payments:        payments,
		TotalPaid:       reconcile.TotalPaid(o),
		Settlement:      reconcile.StatusLabel(o),
		SettlementClass: settlementClass(o),
		CanTransition:   reconcile.CanTransition(o),
		CanConfirm:      reconcile.CanConfirm(o),
		CanPay:          o.RemainingAmount > 0 && reconcile.CanTransition(o),
		PaymentErrors:   forms.Errors{},
	}, nil
}

// Transition handles confirm, cancel and reject; the action is bound by
// the route. After a successful write the detail view re-fetches, so no
// local state is patched.
func (c *OrderController) Transition(action string) http.HandlerFunc {
	messages := map[string]string{
		"confirm": "Commande confirmée.",
		"cancel":  "Commande annulée.",
		"reject":  "Commande rejetée.",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			views.RenderError(w, r, http.StatusNotFound, "Commande introuvable.")
			return
		}

		switch action {
		case "confirm":
			_, err = c.orders.Confirm(r.Context(), id)
		case "cancel":
			_, err = c.orders.Cancel(r.Context(), id)
		case "reject":
			_, err = c.orders.Reject(r.Context(), id)
		}
		if err != nil {
			handleError(w, r, err)
			return
		}

		putFlash(w, r, messages[action])
		http.Redirect(w, r, "/admin/orders/"+strconv.FormatInt(id, 10), http.StatusFound)
	}
}

// CreatePayment records a payment. The amount is checked against the
// order's remaining due before any write; a failed check re-renders the
// detail view with the field error.
func (c *OrderController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		views.RenderError(w, r, http.StatusNotFound, "Commande introuvable.")
		return
	}

	form := forms.ParsePayment(r, id)
	errs := form.Validate()
	if !errs.Has() {
		order, gerr := c.orders.Get(r.Context(), id)
		if gerr != nil {
			handleError(w, r, gerr)
			return
		}
		if verr := reconcile.ValidatePayment(form.Amount, order.RemainingAmount); verr != nil {
			errs["amount"] = verr.Error()
		}
	}

	if errs.Has() {
		data, lerr := c.loadDetail(r, id)
		if lerr != nil {
			handleError(w, r, lerr)
			return
		}
		data.PaymentForm = form
		data.PaymentErrors = errs
		views.Render(w, r, http.StatusUnprocessableEntity, "admin_order_detail", views.Page{
			Title: "Commande n°" + strconv.FormatInt(id, 10),
			Data:  data,
		})
		return
	}

	if _, err := c.payments.Create(r.Context(), form.ToRequest()); err != nil {
		handleError(w, r, err)
		return
	}

	putFlash(w, r, "Paiement enregistré.")
	http.Redirect(w, r, "/admin/orders/"+strconv.FormatInt(id, 10), http.StatusFound)
}

// Encash flips a pending check or transfer to encashed, then returns to
// the order it belongs to.
func (c *OrderController) Encash(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		views.RenderError(w, r, http.StatusNotFound, "Paiement introuvable.")
		return
	}

	payment, err := c.payments.Encash(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	putFlash(w, r, "Paiement encaissé.")
	http.Redirect(w, r, "/admin/orders/"+strconv.FormatInt(payment.OrderID, 10), http.StatusFound)
}
