package guest

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
	guests   GuestRepository
	bookings BookingCounter
	log      *zap.Logger
}

func NewService(guests GuestRepository, bookings BookingCounter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{guests: guests, bookings: bookings, log: log}
}

func (s *Service) List(ctx context.Context, query string) ([]domain.Guest, error) {
	return s.guests.List(ctx, query)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Guest, error) {
	g, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return g, nil
}

func (s *Service) Create(ctx context.Context, req GuestRequest) (*domain.Guest, error) {
	g := fromRequest(req)
	if err := validator.Check(g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.guests.Create(ctx, g); err != nil {
		return nil, err
	}
	s.log.Info("guest created", zap.Int64("guest_id", g.ID))
	return g, nil
}

func (s *Service) Update(ctx context.Context, id int64, req GuestRequest) (*domain.Guest, error) {
	existing, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	g := fromRequest(req)
	g.ID = existing.ID
	g.CreatedAt = existing.CreatedAt
	if err := validator.Check(g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.guests.Update(ctx, g); err != nil {
		return nil, mapNotFound(err)
	}
	return g, nil
}

// Delete removes a guest with no bookings; booking history keeps its guest.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.guests.GetByID(ctx, id); err != nil {
		return mapNotFound(err)
	}

	n, err := s.bookings.CountForGuest(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrGuestHasBookings
	}

	if err := s.guests.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	s.log.Info("guest deleted", zap.Int64("guest_id", id))
	return nil
}

func fromRequest(req GuestRequest) *domain.Guest {
	return &domain.Guest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		IDProof: strings.TrimSpace(req.IDProof),
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
