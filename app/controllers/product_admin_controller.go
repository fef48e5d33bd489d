package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smartshop/webapp/app/forms"
	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/app/services"
	"github.com/smartshop/webapp/app/views"
)

type ProductAdminController struct {
	products *services.ProductService
}

func NewProductAdminController(products *services.ProductService) *ProductAdminController {
	return &ProductAdminController{products: products}
}

type productListData struct {
	Products []models.Product
}

type productFormData struct {
	IsNew  bool
	Action string
	Form   forms.ProductForm
	Errors forms.Errors
}

func (c *ProductAdminController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.AdminList(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	views.Render(w, r, http.StatusOK, "admin_products", views.Page{
		Title: "Produits",
		Flash: flash(w, r),
		Data:  productListData{Products: products},
	})
}

func (c *ProductAdminController) NewForm(w http.ResponseWriter, r *http.Request) {
	views.Render(w, r, http.StatusOK, "admin_product_form", views.Page{
		Title: "Nouveau produit",
		Data: productFormData{
			IsNew:  true,
			Action: "/admin/products",
			Errors: forms.Errors{},
		},
	})
}

func (c *ProductAdminController) Create(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseProduct(r)
	if errs := form.Validate(); errs.Has() {
		views.Render(w, r, http.StatusUnprocessableEntity, "admin_product_form", views.Page{
			Title: "Nouveau produit",
			Data: productFormData{
				IsNew:  true,
				Action: "/admin/products",
				Form:   form,
				Errors: errs,
			},
		})
		return
	}

	if _, err := c.products.Create(r.Context(), form.ToRequest()); err != nil {
		handleError(w, r, err)
		return
	}
	putFlash(w, r, "Produit créé.")
	http.Redirect(w, r, "/admin/products", http.StatusFound)
}

func (c *ProductAdminController) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		views.RenderError(w, r, http.StatusNotFound, "Produit introuvable.")
		return
	}
	product, err := c.products.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	views.Render(w, r, http.StatusOK, "admin_product_form", views.Page{
		Title: "Modifier le produit",
		Data: productFormData{
			Action: "/admin/products/" + strconv.FormatInt(id, 10),
			Form: forms.ProductForm{
				Name:          product.Name,
				Description:   product.Description,
				UnitPrice:     product.UnitPrice,
				StockQuantity: product.StockQuantity,
			},
			Errors: forms.Errors{},
		},
	})
}

func (c *ProductAdminController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		views.RenderError(w, r, http.StatusNotFound, "Produit introuvable.")
		return
	}

	form := forms.ParseProduct(r)
	if errs := form.Validate(); errs.Has() {
		views.Render(w, r, http.StatusUnprocessableEntity, "admin_product_form", views.Page{
			Title: "Modifier le produit",
			Data: productFormData{
				Action: "/admin/products/" + strconv.FormatInt(id, 10),
				Form:   form,
				Errors: errs,
			},
		})
		return
	}

	if _, err := c.products.Update(r.Context(), id, form.ToRequest()); err != nil {
		handleError(w, r, err)
		return
	}
	putFlash(w, r, "Produit mis à jour.")
	http.Redirect(w, r, "/admin/products", http.StatusFound)
}

func (c *ProductAdminController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		views.RenderError(w, r, http.StatusNotFound, "Produit introuvable.")
		return
	}
	if err := c.products.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	putFlash(w, r, "Produit supprimé.")
	http.Redirect(w, r, "/admin/products", http.StatusFound)
}
