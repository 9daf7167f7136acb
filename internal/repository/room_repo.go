package repository

import (
	"context"
	"time"

	"hotel/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	RoomNumber    string    `gorm:"column:room_number;type:varchar(10);uniqueIndex;not null"`
	RoomType      string    `gorm:"column:room_type;type:varchar(50);not null"`
	PricePerNight float64   `gorm:"column:price_per_night;not null"`
	Status        string    `gorm:"column:status;type:varchar(20);not null;default:available;index"`
	Floor         int       `gorm:"column:floor;not null"`
	Capacity      int       `gorm:"column:capacity;not null"`
	Amenities     *string   `gorm:"column:amenities;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:            m.ID,
		RoomNumber:    m.RoomNumber,
		RoomType:      domain.RoomType(m.RoomType),
		PricePerNight: m.PricePerNight,
		Status:        domain.RoomStatus(m.Status),
		Floor:         m.Floor,
		Capacity:      m.Capacity,
		Amenities:     derefString(m.Amenities),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	return roomModel{
		ID:            r.ID,
		RoomNumber:    r.RoomNumber,
		RoomType:      string(r.RoomType),
		PricePerNight: r.PricePerNight,
		Status:        string(r.Status),
		Floor:         r.Floor,
		Capacity:      r.Capacity,
		Amenities:     optionalString(r.Amenities),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainRoom(m), nil
}

// List returns rooms ordered by number. A nil status returns every room.
func (r *RoomRepository) List(ctx context.Context, status *domain.RoomStatus) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Model(&roomModel{})
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var rows []roomModel
	if err := q.Order("room_number ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

// UpdateDetails writes every editable column of room, including status, but
// only while the stored status still equals expected.
func (r *RoomRepository) UpdateDetails(ctx context.Context, room *domain.Room, expected domain.RoomStatus) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ? AND status = ?", room.ID, string(expected)).
		Updates(map[string]any{
			"room_number":     room.RoomNumber,
			"room_type":       string(room.RoomType),
			"price_per_night": room.PricePerNight,
			"status":          string(room.Status),
			"floor":           room.Floor,
			"capacity":        room.Capacity,
			"amenities":       optionalString(room.Amenities),
			"updated_at":      now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	room.UpdatedAt = now
	return nil
}

// CompareAndSetStatus moves a room from one status to another in a single
// conditional UPDATE. ErrStatusConflict means another writer got there first.
func (r *RoomRepository) CompareAndSetStatus(ctx context.Context, id int64, from, to domain.RoomStatus) error {
	res := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{"status": string(to), "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *RoomRepository) SetStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	res := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&roomModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&roomModel{}).Count(&n).Error
	return n, err
}

func (r *RoomRepository) CountByStatus(ctx context.Context, status domain.RoomStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&roomModel{}).Where("status = ?", string(status)).Count(&n).Error
	return n, err
}
