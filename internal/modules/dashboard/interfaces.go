package dashboard

import (
	"context"
	"time"

	"hotel/internal/domain"
)

type RoomCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.RoomStatus) (int64, error)
}

type GuestCounter interface {
	Count(ctx context.Context) (int64, error)
}

type BookingStats interface {
	CountActive(ctx context.Context) (int64, error)
	CountArrivals(ctx context.Context, day time.Time) (int64, error)
	CountDepartures(ctx context.Context, day time.Time) (int64, error)
	ListRecent(ctx context.Context, n int) ([]domain.Booking, error)
}
