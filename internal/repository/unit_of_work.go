package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// UnitOfWork opens database transactions that hand out repositories bound
// to the transaction.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Begin(ctx context.Context) (*Tx, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &Tx{db: tx}, nil
}

// Tx is a single open transaction. Rollback after Commit is a no-op, so
// callers can always defer Rollback.
type Tx struct {
	db   *gorm.DB
	done bool
}

func (t *Tx) Rooms() *RoomRepository       { return NewRoomRepository(t.db) }
func (t *Tx) Bookings() *BookingRepository { return NewBookingRepository(t.db) }
func (t *Tx) Guests() *GuestRepository     { return NewGuestRepository(t.db) }
func (t *Tx) Payments() *PaymentRepository { return NewPaymentRepository(t.db) }

func (t *Tx) Commit() error {
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true
	return t.db.Commit().Error
}

func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.db.Rollback().Error
}
