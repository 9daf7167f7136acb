package domain

import "time"

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID            int64         `json:"id"`
	BookingID     int64         `json:"booking_id" validate:"required"`
	Amount        float64       `json:"amount" validate:"gt=0"`
	Method        PaymentMethod `json:"payment_method" validate:"required,oneof=cash card online"`
	Status        PaymentStatus `json:"payment_status" validate:"required,oneof=pending completed refunded"`
	TransactionID string        `json:"transaction_id,omitempty" validate:"max=100"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// PaymentSummary is informational; nothing enforces that a booking is settled.
type PaymentSummary struct {
	TotalAmount float64 `json:"total_amount"`
	Paid        float64 `json:"paid"`
	Pending     float64 `json:"pending"`
	Refunded    float64 `json:"refunded"`
	BalanceDue  float64 `json:"balance_due"`
}

// SummarizePayments totals the ledger entries recorded against a booking.
func SummarizePayments(total float64, payments []Payment) PaymentSummary {
	s := PaymentSummary{TotalAmount: total}
	for _, p := range payments {
		switch p.Status {
		case PaymentCompleted:
			s.Paid += p.Amount
		case PaymentPending:
			s.Pending += p.Amount
		case PaymentRefunded:
			s.Refunded += p.Amount
		}
	}
	s.Paid = RoundMoney(s.Paid)
	s.Pending = RoundMoney(s.Pending)
	s.Refunded = RoundMoney(s.Refunded)
	s.BalanceDue = RoundMoney(total - s.Paid)
	return s
}
