package models

// Order statuses. The backend owns transitions; the console only requests
// them (confirm/cancel/reject) and treats everything but PENDING as
// terminal.
const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderCanceled  = "CANCELED"
	OrderRejected  = "REJECTED"
)

// Order mirrors the backend order DTO. All monetary fields are computed
// server-side and rendered as-is, never recomputed here.
type Order struct {
	ID                   int64       `json:"id"`
	ClientID             int64       `json:"clientId"`
	CreatedAt            string      `json:"createdAt"`
	PromoCode            string      `json:"promoCode,omitempty"`
	Items                []OrderItem `json:"items"`
	SubTotalHT           float64     `json:"subTotalHt"`
	DiscountAmount       float64     `json:"discountAmount"`
	TotalHTAfterDiscount float64     `json:"totalHtAfterDiscount"`
	TVAAmount            float64     `json:"tvaAmount"`
	TotalTTC             float64     `json:"totalTtc"`
	RemainingAmount      float64     `json:"remainingAmount"`
	Status               string      `json:"status"`
	Payments             []Payment   `json:"payments,omitempty"`
}

// OrderItem is one order line.
type OrderItem struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// CreateOrderRequest is the admin order-creation payload.
type CreateOrderRequest struct {
	ClientID  int64             `json:"clientId"`
	PromoCode string            `json:"promoCode,omitempty"`
	Items     []CreateOrderItem `json:"items"`
}

// CreateOrderItem is one requested line.
type CreateOrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
