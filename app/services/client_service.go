package services

import (
	"context"
	"fmt"

	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/pkg/backend"
)

// ClientService wraps /admin/clients.
type ClientService struct {
	client *backend.Client
}

func NewClientService(client *backend.Client) *ClientService {
	return &ClientService{client: client}
}

// List returns every client profile.
func (s *ClientService) List(ctx context.Context) ([]models.ClientProfile, error) {
	resp, err := s.client.Get("/admin/clients").Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out []models.ClientProfile
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one client by id.
func (s *ClientService) Get(ctx context.Context, id int64) (*models.ClientProfile, error) {
	resp, err := s.client.Get(fmt.Sprintf("/admin/clients/%d", id)).Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out models.ClientProfile
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a client's contact record.
func (s *ClientService) Update(ctx context.Context, id int64, req models.UpdateClientRequest) (*models.ClientProfile, error) {
	resp, err := s.client.Put(fmt.Sprintf("/admin/clients/%d", id)).Body(req).Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out models.ClientProfile
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders returns a client's order history.
func (s *ClientService) Orders(ctx context.Context, id int64) ([]models.Order, error) {
	resp, err := s.client.Get(fmt.Sprintf("/admin/clients/%d/orders", id)).Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out []models.Order
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return out, nil
}
