package services

import (
	"context"
	"fmt"

	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/pkg/backend"
)

// PaymentService wraps /admin/payments.
type PaymentService struct {
	client *backend.Client
}

func NewPaymentService(client *backend.Client) *PaymentService {
	return &PaymentService{client: client}
}

// Create records a payment against an order.
func (s *PaymentService) Create(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error) {
	resp, err := s.client.Post("/admin/payments").Body(req).Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out models.Payment
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Encash marks a pending check or transfer as received.
func (s *PaymentService) Encash(ctx context.Context, id int64) (*models.Payment, error) {
	resp, err := s.client.Patch(fmt.Sprintf("/admin/payments/%d/encash", id)).Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out models.Payment
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByOrder returns every payment recorded against an order.
func (s *PaymentService) ListByOrder(ctx context.Context, orderID int64) ([]models.Payment, error) {
	resp, err := s.client.Get(fmt.Sprintf("/admin/orders/%d/payments", orderID)).Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var out []models.Payment
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return out, nil
}
