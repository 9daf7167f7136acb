package room

import (
	"context"

	"hotel/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, r *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, status *domain.RoomStatus) ([]domain.Room, error)
	UpdateDetails(ctx context.Context, r *domain.Room, expected domain.RoomStatus) error
	Delete(ctx context.Context, id int64) error
}

type BookingCounter interface {
	CountActiveForRoom(ctx context.Context, roomID int64) (int64, error)
	CountForRoom(ctx context.Context, roomID int64) (int64, error)
}
