package services

import (
	"context"
	"fmt"

	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/pkg/backend"
)

// OrderService wraps /admin/orders and /me/orders.
type OrderService struct {
	client *backend.Client
}

func NewOrderService(client *backend.Client) *OrderService {
	return &OrderService{client: client}
}

// Create places an order on behalf of a client. The backend computes every
// total and may reject the order outright (for instance on missing stock),
// in which case the rejected order still comes back with its status set.
func (s *OrderService) Create(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	resp, err := s.client.Post("/admin/orders").Body(req).Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out models.Order
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminList returns every order.
func (s *OrderService) AdminList(ctx context.Context) ([]models.Order, error) {
	resp, err := s.client.Get("/admin/orders").Send(ctx)
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

// Get fetches one order with its lines.
func (s *OrderService) Get(ctx context.Context, id int64) (*models.Order, error) {
	resp, err := s.client.Get(fmt.Sprintf("/admin/orders/%d", id)).Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out models.Order
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Confirm asks the backend to confirm a pending order.
func (s *OrderService) Confirm(ctx context.Context, id int64) (*models.Order, error) {
	return s.transition(ctx, id, "confirm")
}

// Cancel asks the backend to cancel a pending order.
func (s *OrderService) Cancel(ctx context.Context, id int64) (*models.Order, error) {
	return s.transition(ctx, id, "cancel")
}

// Reject asks the backend to reject a pending order.
func (s *OrderService) Reject(ctx context.Context, id int64) (*models.Order, error) {
	return s.transition(ctx, id, "reject")
}

func (s *OrderService) transition(ctx context.Context, id int64, action string) (*models.Order, error) {
	resp, err := s.client.Patch(fmt.Sprintf("/admin/orders/%d/%s", id, action)).Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out models.Order
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyOrders returns the authenticated client's own orders.
func (s *OrderService) MyOrders(ctx context.Context) ([]models.Order, error) {
	resp, err := s.client.Get("/me/orders").Send(ctx)
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
