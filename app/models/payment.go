package models

// Payment types and statuses. Non-cash payments stay PENDING until the
// backend confirms encashment.
const (
	PaymentCash     = "CASH"
	PaymentCheck    = "CHECK"
	PaymentTransfer = "TRANSFER"

	PaymentPending  = "PENDING"
	PaymentEncashed = "ENCASHED"
)

// Payment mirrors the backend payment DTO.
type Payment struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"orderId"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Reference   string  `json:"reference,omitempty"`
	Bank        string  `json:"bank,omitempty"`
	PaymentDate string  `json:"paymentDate,omitempty"`
	DueDate     string  `json:"dueDate,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// CreatePaymentRequest is the payment-recording payload.
type CreatePaymentRequest struct {
	OrderID     int64   `json:"orderId"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Reference   string  `json:"reference,omitempty"`
	Bank        string  `json:"bank,omitempty"`
	PaymentDate string  `json:"paymentDate,omitempty"`
	DueDate     string  `json:"dueDate,omitempty"`
}
