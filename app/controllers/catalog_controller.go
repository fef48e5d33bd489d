package controllers

import (
	"net/http"
	"strconv"

	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/app/services"
	"github.com/smartshop/webapp/app/views"
)

const catalogPageSize = 12

type CatalogController struct {
	products *services.ProductService
}

func NewCatalogController(products *services.ProductService) *CatalogController {
	return &CatalogController{products: products}
}

type catalogData struct {
	Page  *models.Page[models.Product]
	Query string
}

// Index renders one catalog page. The page index is zero-based end to end,
// matching the backend; display adds one.
func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 0 {
		page = 0
	}
	name := r.URL.Query().Get("name")

	result, err := c.products.Catalog(r.Context(), page, catalogPageSize, name)
	if err != nil {
		handleError(w, r, err)
		return
	}

	views.Render(w, r, http.StatusOK, "products", views.Page{
		Title: "Catalogue",
		Flash: flash(w, r),
		Data:  catalogData{Page: result, Query: name},
	})
}
