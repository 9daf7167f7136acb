package room

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel/internal/domain"
	"hotel/internal/pkg/validator"
	"hotel/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	rooms    RoomRepository
	bookings BookingCounter
	log      *zap.Logger
}

func NewService(rooms RoomRepository, bookings BookingCounter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{rooms: rooms, bookings: bookings, log: log}
}

func (s *Service) List(ctx context.Context, status string) ([]domain.Room, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return s.rooms.List(ctx, nil)
	}

	st := domain.RoomStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.rooms.List(ctx, &st)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Room, error) {
	r, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return r, nil
}

// Create adds a room. New rooms always start available.
func (s *Service) Create(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	r := &domain.Room{
		RoomNumber:    strings.TrimSpace(req.RoomNumber),
		RoomType:      domain.RoomType(strings.ToLower(strings.TrimSpace(req.RoomType))),
		PricePerNight: domain.RoundMoney(req.PricePerNight),
		Status:        domain.RoomAvailable,
		Floor:         req.Floor,
		Capacity:      req.Capacity,
		Amenities:     strings.TrimSpace(req.Amenities),
	}
	if err := validator.Check(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.rooms.Create(ctx, r); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrRoomNumberTaken
		}
		return nil, err
	}

	s.log.Info("room created", zap.Int64("room_id", r.ID), zap.String("room_number", r.RoomNumber))
	return r, nil
}

// Update edits a room. Status may only move between available and
// maintenance; the write fails if the stored status changed meanwhile.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	r, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	expected := r.Status

	if req.RoomNumber != nil {
		r.RoomNumber = strings.TrimSpace(*req.RoomNumber)
	}
	if req.RoomType != nil {
		r.RoomType = domain.RoomType(strings.ToLower(strings.TrimSpace(*req.RoomType)))
	}
	if req.PricePerNight != nil {
		r.PricePerNight = domain.RoundMoney(*req.PricePerNight)
	}
	if req.Floor != nil {
		r.Floor = *req.Floor
	}
	if req.Capacity != nil {
		r.Capacity = *req.Capacity
	}
	if req.Amenities != nil {
		r.Amenities = strings.TrimSpace(*req.Amenities)
	}

	if req.Status != nil {
		next := domain.RoomStatus(strings.TrimSpace(*req.Status))
		if !next.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
		}
		if next != expected {
			if expected.ManagedByBookings() || next.ManagedByBookings() {
				return nil, ErrStatusManagedByBookings
			}
			r.Status = next
		}
	}

	if err := validator.Check(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.rooms.UpdateDetails(ctx, r, expected); err != nil {
		switch {
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, ErrConcurrentUpdate
		case repository.IsUniqueViolation(err):
			return nil, ErrRoomNumberTaken
		}
		return nil, err
	}
	return r, nil
}

// Delete removes a room that no booking has ever referenced.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.rooms.GetByID(ctx, id); err != nil {
		return mapNotFound(err)
	}

	active, err := s.bookings.CountActiveForRoom(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrRoomInUse
	}

	total, err := s.bookings.CountForRoom(ctx, id)
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrRoomHasHistory
	}

	if err := s.rooms.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	s.log.Info("room deleted", zap.Int64("room_id", id))
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
