package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel/internal/domain"
	"hotel/internal/pkg/validator"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	payments PaymentRepository
	bookings BookingReader
	log      *zap.Logger
}

func NewService(payments PaymentRepository, bookings BookingReader, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{payments: payments, bookings: bookings, log: log}
}

func (s *Service) List(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.List(ctx)
}

// ListForBooking returns the booking's payments newest first with a running summary.
func (s *Service) ListForBooking(ctx context.Context, bookingID int64) ([]domain.Payment, domain.PaymentSummary, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, domain.PaymentSummary{}, err
	}

	payments, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, domain.PaymentSummary{}, err
	}
	return payments, domain.SummarizePayments(b.TotalAmount, payments), nil
}

// Record stores a payment against a booking in any state. Refunds on
// cancelled bookings are recorded the same way.
func (s *Service) Record(ctx context.Context, bookingID int64, req RecordPaymentRequest) (*domain.Payment, error) {
	if _, err := s.getBooking(ctx, bookingID); err != nil {
		return nil, err
	}

	status := domain.PaymentStatus(strings.TrimSpace(req.PaymentStatus))
	if status == "" {
		status = domain.PaymentPending
	}

	p := &domain.Payment{
		BookingID:     bookingID,
		Amount:        domain.RoundMoney(req.Amount),
		Method:        domain.PaymentMethod(strings.TrimSpace(req.PaymentMethod)),
		Status:        status,
		TransactionID: strings.TrimSpace(req.TransactionID),
		Notes:         strings.TrimSpace(req.Notes),
	}
	if err := validator.Check(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.Int64("payment_id", p.ID),
		zap.Int64("booking_id", bookingID),
		zap.Float64("amount", p.Amount),
		zap.String("status", string(p.Status)),
	)
	return p, nil
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
