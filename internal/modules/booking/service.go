package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/internal/domain"
	"hotel/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type CreateBookingInput struct {
	RoomID          int64
	GuestID         int64
	CheckInDate     time.Time
	CheckOutDate    time.Time
	SpecialRequests string
}

type ListInput struct {
	Status domain.BookingStatus
	Page   int
	Limit  int
}

// Details is a booking with everything the front desk shows next to it.
type Details struct {
	Booking  *domain.Booking       `json:"booking"`
	Room     *domain.Room          `json:"room"`
	Guest    *domain.Guest         `json:"guest"`
	Payments []domain.Payment      `json:"payments"`
	Summary  domain.PaymentSummary `json:"payment_summary"`
	Nights   int                   `json:"nights"`
}

// Service owns the booking lifecycle. Every mutation runs in its own
// transaction and keeps the room status in step with the booking status.
type Service struct {
	uow      UnitOfWork
	bookings BookingReader
	rooms    RoomReader
	guests   GuestReader
	payments PaymentLister
	events   EventPublisher
	log      *zap.Logger
	now      func() time.Time
}

func NewService(
	uow UnitOfWork,
	bookings BookingReader,
	rooms RoomReader,
	guests GuestReader,
	payments PaymentLister,
	events EventPublisher,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		uow:      uow,
		bookings: bookings,
		rooms:    rooms,
		guests:   guests,
		payments: payments,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	checkIn := domain.DateOnly(in.CheckInDate)
	checkOut := domain.DateOnly(in.CheckOutDate)
	nights := domain.Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, ErrInvalidDateRange
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	room, err := tx.Rooms().GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, notFound(err, "room", in.RoomID)
	}
	if room.Status != domain.RoomAvailable {
		return nil, ErrRoomUnavailable
	}

	if _, err := tx.Guests().GetByID(ctx, in.GuestID); err != nil {
		return nil, notFound(err, "guest", in.GuestID)
	}

	if err := tx.Rooms().CompareAndSetStatus(ctx, room.ID, domain.RoomAvailable, domain.RoomBooked); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrRoomUnavailable
		}
		return nil, fmt.Errorf("mark room booked: %w", err)
	}

	b := &domain.Booking{
		RoomID:          room.ID,
		GuestID:         in.GuestID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Status:          domain.BookingConfirmed,
		TotalAmount:     domain.BookingTotal(nights, room.PricePerNight),
		SpecialRequests: in.SpecialRequests,
	}
	if err := tx.Bookings().Create(ctx, b); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	s.log.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("room_id", b.RoomID),
		zap.Int("nights", nights),
		zap.Float64("total_amount", b.TotalAmount),
	)
	s.publish(ctx, EventBookingCreated, b)
	return b, nil
}

func (s *Service) CancelBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingCancelled)
}

func (s *Service) CheckIn(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingCheckedIn)
}

func (s *Service) CheckOut(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingCheckedOut)
}

// transition moves an existing booking to status to and sets its room to
// the matching status, both in one transaction.
func (s *Service) transition(ctx context.Context, bookingID int64, to domain.BookingStatus) (*domain.Booking, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	b, err := tx.Bookings().GetByIDForUpdate(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, "booking", bookingID)
	}

	from := b.Status
	if !domain.CanTransition(from, to) {
		return nil, ErrInvalidTransition
	}

	at := s.now().UTC()
	if err := tx.Bookings().UpdateStatus(ctx, b.ID, from, to, at); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	if err := tx.Rooms().SetStatus(ctx, b.RoomID, domain.RoomStatusFor(to)); err != nil {
		return nil, fmt.Errorf("update room status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit %s: %w", to, err)
	}

	b.Status = to
	switch to {
	case domain.BookingCheckedIn:
		b.CheckedInAt = &at
	case domain.BookingCheckedOut:
		b.CheckedOutAt = &at
	}

	s.log.Info("booking status changed",
		zap.Int64("booking_id", b.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	s.publish(ctx, eventFor(to), b)
	return b, nil
}

// Normalize applies the default page and clamps the page size.
func (in ListInput) Normalize() ListInput {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = defaultPageSize
	}
	if in.Limit > maxPageSize {
		in.Limit = maxPageSize
	}
	return in
}

// List returns a page of bookings, newest first, and the total match count.
func (s *Service) List(ctx context.Context, in ListInput) ([]domain.Booking, int64, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}
	in = in.Normalize()

	return s.bookings.List(ctx, repository.BookingFilter{
		Status: in.Status,
		Limit:  in.Limit,
		Offset: (in.Page - 1) * in.Limit,
	})
}

func (s *Service) Get(ctx context.Context, bookingID int64) (*Details, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, "booking", bookingID)
	}

	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, notFound(err, "room", b.RoomID)
	}

	guest, err := s.guests.GetByID(ctx, b.GuestID)
	if err != nil {
		return nil, notFound(err, "guest", b.GuestID)
	}

	payments, err := s.payments.ListByBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	return &Details{
		Booking:  b,
		Room:     room,
		Guest:    guest,
		Payments: payments,
		Summary:  domain.SummarizePayments(b.TotalAmount, payments),
		Nights:   b.Nights(),
	}, nil
}

// AvailableRooms lists the rooms a new booking may use.
func (s *Service) AvailableRooms(ctx context.Context) ([]domain.Room, error) {
	available := domain.RoomAvailable
	return s.rooms.List(ctx, &available)
}

func notFound(err error, what string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return err
}
