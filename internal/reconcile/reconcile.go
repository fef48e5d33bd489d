// Package reconcile holds the display-side payment arithmetic for orders.
// Everything here is derived from backend-computed amounts; the backend
// stays authoritative for all transitions and totals.
package reconcile

import (
	"errors"

	"github.com/smartshop/webapp/app/models"
)

// Validation errors shown next to the payment amount field.
var (
	ErrAmountRequired = errors.New("Le montant est obligatoire.")
	ErrAmountInvalid  = errors.New("Le montant doit être un nombre positif.")
	ErrAmountTooHigh  = errors.New("Le montant dépasse le restant dû.")
)

// TotalPaid derives the amount already settled on an order.
func TotalPaid(o models.Order) float64 {
	return o.TotalTTC - o.RemainingAmount
}

// IsFullyPaid reports whether nothing remains due.
func IsFullyPaid(o models.Order) bool {
	return o.RemainingAmount == 0
}

// StatusLabel maps remaining/total into the settlement badge text.
func StatusLabel(o models.Order) string {
	switch {
	case o.RemainingAmount == 0 && o.TotalTTC > 0:
		return "Paid"
	case o.RemainingAmount > 0 && o.RemainingAmount < o.TotalTTC:
		return "Partially paid"
	default:
		return "Unpaid"
	}
}

// CanConfirm reports whether the confirm action should be offered: only a
// fully settled pending order. A UX gate only; the backend re-checks.
func CanConfirm(o models.Order) bool {
	return o.Status == models.OrderPending && IsFullyPaid(o)
}

// CanTransition reports whether any status action applies. Every status but
// PENDING is terminal from this side.
func CanTransition(o models.Order) bool {
	return o.Status == models.OrderPending
}

// ValidatePayment checks a requested payment amount before any network
// call: present, strictly positive and no more than the remaining due.
func ValidatePayment(amount, remaining float64) error {
	switch {
	case amount == 0:
		return ErrAmountRequired
	case amount < 0:
		return ErrAmountInvalid
	case amount > remaining:
		return ErrAmountTooHigh
	}
	return nil
}
