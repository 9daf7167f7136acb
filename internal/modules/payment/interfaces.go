package payment

import (
	"context"

	"hotel/internal/domain"
)

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	List(ctx context.Context) ([]domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}
