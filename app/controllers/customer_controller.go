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
)

type CustomerController struct {
	clients *services.ClientService
}

func NewCustomerController(clients *services.ClientService) *CustomerController {
	return &CustomerController{clients: clients}
}

func (c *CustomerController) Index(w http.ResponseWriter, r *http.Request) {
	clients, err := c.clients.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	views.Render(w, r, http.StatusOK, "admin_customers", views.Page{
		Title: "Clients",
		Flash: flash(w, r),
		Data:  clients,
	})
}

type customerDetailData struct {
	Client *models.ClientProfile
	Orders []models.Order
	Form   forms.ClientForm
	Errors forms.Errors
}

func (c *CustomerController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		views.RenderError(w, r, http.StatusNotFound, "Client introuvable.")
		return
	}

	var (
		wg      sync.WaitGroup
		client  *models.ClientProfile
		orders  []models.Order
		errList [2]error
	)
	wg.Add(2)
	go func() { defer wg.Done(); client, errList[0] = c.clients.Get(r.Context(), id) }()
	go func() { defer wg.Done(); orders, errList[1] = c.clients.Orders(r.Context(), id) }()
	wg.Wait()

	for _, err := range errList {
		if err != nil {
			handleError(w, r, err)
			return
		}
	}

	views.Render(w, r, http.StatusOK, "admin_client_detail", views.Page{
		Title: client.Name,
		Flash: flash(w, r),
		Data: customerDetailData{
			Client: client,
			Orders: orders,
			Form: forms.ClientForm{
				Name:    client.Name,
				Email:   client.Email,
				Phone:   client.Phone,
				Address: client.Address,
			},
			Errors: forms.Errors{},
		},
	})
}

// Update saves the contact form, then re-fetches via redirect so the page
// shows backend truth rather than the submitted values.
func (c *CustomerController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		views.RenderError(w, r, http.StatusNotFound, "Client introuvable.")
		return
	}

	form := forms.ParseClient(r)
	if errs := form.Validate(); errs.Has() {
		client, gerr := c.clients.Get(r.Context(), id)
		if gerr != nil {
			handleError(w, r, gerr)
			return
		}
		orders, _ := c.clients.Orders(r.Context(), id)
		views.Render(w, r, http.StatusUnprocessableEntity, "admin_client_detail", views.Page{
			Title: client.Name,
			Data: customerDetailData{
				Client: client,
				Orders: orders,
				Form:   form,
				Errors: errs,
			},
		})
		return
	}

	if _, err := c.clients.Update(r.Context(), id, form.ToRequest()); err != nil {
		handleError(w, r, err)
		return
	}

	putFlash(w, r, "Client mis à jour.")
	http.Redirect(w, r, "/admin/customers/"+strconv.FormatInt(id, 10), http.StatusFound)
}
