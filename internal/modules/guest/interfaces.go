package guest

import (
	"context"

	"hotel/internal/domain"
)

type GuestRepository interface {
	Create(ctx context.Context, g *domain.Guest) error
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	List(ctx context.Context, query string) ([]domain.Guest, error)
	Update(ctx context.Context, g *domain.Guest) error
	Delete(ctx context.Context, id int64) error
}

type BookingCounter interface {
	CountForGuest(ctx context.Context, guestID int64) (int64, error)
}
