package booking

import (
	"context"
	"time"

	"hotel/internal/domain"
	"hotel/internal/repository"
)

// RoomStore is the room side of a lifecycle transaction.
type RoomStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	CompareAndSetStatus(ctx context.Context, id int64, from, to domain.RoomStatus) error
	SetStatus(ctx context.Context, id int64, status domain.RoomStatus) error
}

// BookingStore is the booking side of a lifecycle transaction.
type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, at time.Time) error
}

type GuestReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
}

// Tx groups the stores bound to one open transaction.
type Tx interface {
	Rooms() RoomStore
	Bookings() BookingStore
	Guests() GuestReader
	Commit() error
	Rollback() error
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Tx, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
}

type RoomReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, status *domain.RoomStatus) ([]domain.Room, error)
}

type PaymentLister interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}

// EventPublisher delivers lifecycle events after commit.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
