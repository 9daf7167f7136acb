package booking

import (
	"context"
	"time"

	"hotel/internal/domain"

	"go.uber.org/zap"
)

const (
	EventBookingCreated    = "booking.created"
	EventBookingCancelled  = "booking.cancelled"
	EventBookingCheckedIn  = "booking.checked_in"
	EventBookingCheckedOut = "booking.checked_out"
)

type LifecycleEvent struct {
	Event       string               `json:"event"`
	BookingID   int64                `json:"booking_id"`
	RoomID      int64                `json:"room_id"`
	GuestID     int64                `json:"guest_id"`
	Status      domain.BookingStatus `json:"status"`
	TotalAmount float64              `json:"total_amount"`
	OccurredAt  time.Time            `json:"occurred_at"`
}

func eventFor(to domain.BookingStatus) string {
	switch to {
	case domain.BookingCheckedIn:
		return EventBookingCheckedIn
	case domain.BookingCheckedOut:
		return EventBookingCheckedOut
	case domain.BookingCancelled:
		return EventBookingCancelled
	default:
		return EventBookingCreated
	}
}

// publish runs after commit; a failure is logged and the transition stands.
func (s *Service) publish(ctx context.Context, name string, b *domain.Booking) {
	if s.events == nil {
		return
	}

	evt := LifecycleEvent{
		Event:       name,
		BookingID:   b.ID,
		RoomID:      b.RoomID,
		GuestID:     b.GuestID,
		Status:      b.Status,
		TotalAmount: b.TotalAmount,
		OccurredAt:  s.now().UTC(),
	}
	if err := s.events.Publish(ctx, name, evt); err != nil {
		s.log.Warn("publish booking event failed",
			zap.String("event", name),
			zap.Int64("booking_id", b.ID),
			zap.Error(err),
		)
	}
}
