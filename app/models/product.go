package models

// Product is the catalog projection. Admin create/update submit the same
// shape minus the ID.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	UnitPrice     float64 `json:"unitPrice"`
	StockQuantity int     `json:"stockQuantity"`
}

// ProductRequest is the create/update payload.
type ProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	UnitPrice     float64 `json:"unitPrice"`
	StockQuantity int     `json:"stockQuantity"`
}
