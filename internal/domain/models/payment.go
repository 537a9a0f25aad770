package models

import (
	"time"

	"careline-backend/internal/domain"
)

// Payment is a ledger row. Amount is immutable after creation;
// RefundAmount is the running total refunded and never exceeds Amount.
type Payment struct {
	ID               int64                `json:"id"`
	ServiceRequestID *int64               `json:"service_request_id"`
	OrderID          string               `json:"order_id"`
	PaymentKey       string               `json:"payment_key"`
	Amount           int64                `json:"amount"`
	RefundAmount     int64                `json:"refund_amount"`
	Status           domain.PaymentStatus `json:"status"`
	Method           string               `json:"method,omitempty"`
	ApprovedAt       *time.Time           `json:"approved_at,omitempty"`
	RefundedAt       *time.Time           `json:"refunded_at,omitempty"`
	PartialRefunded  bool                 `json:"partial_refunded"`
	CreatedAt        time.Time            `json:"created_at"`
}

// Remaining is the balance still refundable.
func (p Payment) Remaining() int64 {
	return p.Amount - p.RefundAmount
}
