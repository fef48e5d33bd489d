// Package models holds the DTO projections of backend-owned entities.
// Every struct mirrors the backend's JSON as-is; nothing here is computed
// or mutated locally beyond display.
package models

// Loyalty tiers, display-only in this layer.
const (
	TierBasic    = "BASIC"
	TierSilver   = "SILVER"
	TierGold     = "GOLD"
	TierPlatinum = "PLATINUM"
)

// ClientProfile is a read-only projection of a client, including the
// backend-computed order aggregates.
type ClientProfile struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	Tier           string  `json:"tier"`
	TotalOrders    int     `json:"totalOrders"`
	TotalSpent     float64 `json:"totalSpent"`
	FirstOrderDate string  `json:"firstOrderDate"`
	LastOrderDate  string  `json:"lastOrderDate"`
}

// UpdateClientRequest is the full-record update the admin edit form submits.
type UpdateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}
