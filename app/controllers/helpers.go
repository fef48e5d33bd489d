// Package controllers holds the HTTP handlers behind the console routes.
// Each controller wraps the resource services it needs; rendering goes
// through app/views and all backend failures funnel through handleError.
package controllers

import (
	"net/http"

	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/app/views"
	"github.com/smartshop/webapp/internal/reconcile"
	"github.com/smartshop/webapp/pkg/backend"
	"github.com/smartshop/webapp/pkg/session"
)

// genericError is the user-visible fallback when the backend gives no
// message of its own.
const genericError = "Une erreur est survenue."

// handleError renders a backend failure. A 401 means the backend session
// expired underneath us, so the visitor is sent back to the login view
// (unless already there); everything else shows the error page with the
// backend message when one exists.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	if backend.IsUnauthorized(err) && r.URL.Path != "/login" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	views.RenderError(w, r, http.StatusBadGateway, backend.UserMessage(err, genericError))
}

// userMessage extracts the backend's message for inline display.
func userMessage(err error) string {
	return backend.UserMessage(err, genericError)
}

// flash pops the pending flash message, persisting the consumption.
func flash(w http.ResponseWriter, r *http.Request) string {
	sess := session.FromCtx(r)
	v, ok := sess.GetFlash("message")
	if !ok {
		return ""
	}
	_ = sess.Save(w)
	msg, _ := v.(string)
	return msg
}

// putFlash stores a one-shot message for the next page view.
func putFlash(w http.ResponseWriter, r *http.Request, msg string) {
	sess := session.FromCtx(r)
	sess.Flash("message", msg)
	_ = sess.Save(w)
}

// OrderRow pairs an order with its derived settlement badge for list views.
type OrderRow struct {
	Order           models.Order
	Settlement      string
	SettlementClass string
}

func orderRows(orders []models.Order) []OrderRow {
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, OrderRow{
			Order:           o,
			Settlement:      reconcile.StatusLabel(o),
			SettlementClass: settlementClass(o),
		})
	}
	return rows
}

func settlementClass(o models.Order) string {
	switch reconcile.StatusLabel(o) {
	case "Paid":
		return "paid"
	case "Partially paid":
		return "partial"
	default:
		return "unpaid"
	}
}
