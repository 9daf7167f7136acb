package repository

import (
	"context"
	"time"

	"hotel/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	RoomID          int64      `gorm:"column:room_id;not null;index"`
	GuestID         int64      `gorm:"column:guest_id;not null;index"`
	CheckInDate     time.Time  `gorm:"column:check_in_date;type:date;not null"`
	CheckOutDate    time.Time  `gorm:"column:check_out_date;type:date;not null"`
	Status          string     `gorm:"column:status;type:varchar(20);not null;index"`
	TotalAmount     float64    `gorm:"column:total_amount;not null"`
	SpecialRequests *string    `gorm:"column:special_requests;type:text"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	CheckedInAt     *time.Time `gorm:"column:checked_in_at"`
	CheckedOutAt    *time.Time `gorm:"column:checked_out_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:              m.ID,
		RoomID:          m.RoomID,
		GuestID:         m.GuestID,
		CheckInDate:     domain.DateOnly(m.CheckInDate),
		CheckOutDate:    domain.DateOnly(m.CheckOutDate),
		Status:          domain.BookingStatus(m.Status),
		TotalAmount:     m.TotalAmount,
		SpecialRequests: derefString(m.SpecialRequests),
		CreatedAt:       m.CreatedAt,
		CheckedInAt:     m.CheckedInAt,
		CheckedOutAt:    m.CheckedOutAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
		RoomID:          b.RoomID,
		GuestID:         b.GuestID,
		CheckInDate:     domain.DateOnly(b.CheckInDate),
		CheckOutDate:    domain.DateOnly(b.CheckOutDate),
		Status:          string(b.Status),
		TotalAmount:     b.TotalAmount,
		SpecialRequests: optionalString(b.SpecialRequests),
		CreatedAt:       b.CreatedAt,
		CheckedInAt:     b.CheckedInAt,
		CheckedOutAt:    b.CheckedOutAt,
	}
}

// BookingFilter narrows List. Zero values mean no filter / defaults.
type BookingFilter struct {
	Status domain.BookingStatus
	Limit  int
	Offset int
}

// bookingListRow is one joined List row. Booking must stay a named embedded
// field: gorm skips unexported anonymous structs when scanning.
type bookingListRow struct {
	Booking    bookingModel `gorm:"embedded"`
	RoomNumber string `gorm:"column:room_number"`
	RoomType   string `gorm:"column:room_type"`
	GuestName  string `gorm:"column:guest_name"`
	GuestPhone string `gorm:"column:guest_phone"`
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// GetByIDForUpdate locks the booking row for the rest of the transaction.
// SQLite ignores the locking clause and serialises writers instead.
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// UpdateStatus moves a booking from one status to another, stamping
// checked_in_at / checked_out_at when entering those states.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, at time.Time) error {
	updates := map[string]any{"status": string(to)}
	switch to {
	case domain.BookingCheckedIn:
		updates["checked_in_at"] = at
	case domain.BookingCheckedOut:
		updates["checked_out_at"] = at
	}

	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// List returns bookings newest first with room and guest headers attached,
// plus the total number of matching rows.
func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, int64, error) {
	base := r.db.WithContext(ctx).Table("bookings AS b")
	if f.Status != "" {
		base = base.Where("b.status = ?", string(f.Status))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base.
		Select("b.*, r.room_number AS room_number, r.room_type AS room_type, g.name AS guest_name, g.phone AS guest_phone").
		Joins("LEFT JOIN rooms r ON r.id = b.room_id").
		Joins("LEFT JOIN guests g ON g.id = b.guest_id").
		Order("b.created_at DESC").
		Order("b.id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var rows []bookingListRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		b := toDomainBooking(row.Booking)
		b.Room = &domain.Room{ID: row.Booking.RoomID, RoomNumber: row.RoomNumber, RoomType: domain.RoomType(row.RoomType)}
		b.Guest = &domain.Guest{ID: row.Booking.GuestID, Name: row.GuestName, Phone: row.GuestPhone}
		out = append(out, *b)
	}
	return out, total, nil
}

func (r *BookingRepository) ListRecent(ctx context.Context, n int) ([]domain.Booking, error) {
	out, _, err := r.List(ctx, BookingFilter{Limit: n})
	return out, err
}

func (r *BookingRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status IN ?", activeStatuses()).
		Count(&n).Error
	return n, err
}

// CountArrivals counts confirmed bookings whose check-in date is day.
func (r *BookingRepository) CountArrivals(ctx context.Context, day time.Time) (int64, error) {
	return r.countOnDate(ctx, "check_in_date", domain.BookingConfirmed, day)
}

// CountDepartures counts checked-in bookings whose check-out date is day.
func (r *BookingRepository) CountDepartures(ctx context.Context, day time.Time) (int64, error) {
	return r.countOnDate(ctx, "check_out_date", domain.BookingCheckedIn, day)
}

func (r *BookingRepository) countOnDate(ctx context.Context, column string, status domain.BookingStatus, day time.Time) (int64, error) {
	start := domain.DateOnly(day)
	end := start.AddDate(0, 0, 1)

	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status = ?", string(status)).
		Where(column+" >= ? AND "+column+" < ?", start, end).
		Count(&n).Error
	return n, err
}

func (r *BookingRepository) CountActiveForRoom(ctx context.Context, roomID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("room_id = ? AND status IN ?", roomID, activeStatuses()).
		Count(&n).Error
	return n, err
}

func (r *BookingRepository) CountForRoom(ctx context.Context, roomID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Where("room_id = ?", roomID).Count(&n).Error
	return n, err
}

func (r *BookingRepository) CountForGuest(ctx context.Context, guestID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Where("guest_id = ?", guestID).Count(&n).Error
	return n, err
}

func activeStatuses() []string {
	active := domain.ActiveBookingStatuses()
	out := make([]string, 0, len(active))
	for _, s := range active {
		out = append(out, string(s))
	}
	return out
}
