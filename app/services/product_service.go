package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/pkg/backend"
)

// ProductService wraps the public catalog and /admin/products.
type ProductService struct {
	client *backend.Client
}

func NewProductService(client *backend.Client) *ProductService {
	return &ProductService{client: client}
}

// Catalog returns one page of the public catalog, optionally filtered by name.
func (s *ProductService) Catalog(ctx context.Context, page, size int, name string) (*models.Page[models.Product], error) {
	resp, err := s.client.Get("/products").
		Query("page", strconv.Itoa(page)).
		Query("size", strconv.Itoa(size)).
		Query("name", name).
		Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out models.Page[models.Product]
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminList returns the full product list for management screens.
func (s *ProductService) AdminList(ctx context.Context) ([]models.Product, error) {
	resp, err := s.client.Get("/admin/products").Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out []models.Product
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one product by id.
func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	resp, err := s.client.Get(fmt.Sprintf("/admin/products/%d", id)).Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out models.Product
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a product.
func (s *ProductService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	resp, err := s.client.Post("/admin/products").Body(req).Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out models.Product
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a product.
func (s *ProductService) Update(ctx context.Context, id int64, req models.ProductRequest) (*models.Product, error) {
	resp, err := s.client.Put(fmt.Sprintf("/admin/products/%d", id)).Body(req).Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out models.Product
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	resp, err := s.client.Delete(fmt.Sprintf("/admin/products/%d", id)).Send(ctx)
	if err != nil {
		return err
	}
	return resp.Err()
}
