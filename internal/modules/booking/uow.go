package booking

import (
	"context"

	"hotel/internal/repository"
)

// NewUnitOfWork adapts the gorm unit of work to the lifecycle interfaces.
func NewUnitOfWork(uow *repository.UnitOfWork) UnitOfWork {
	return gormUnitOfWork{uow: uow}
}

type gormUnitOfWork struct {
	uow *repository.UnitOfWork
}

func (g gormUnitOfWork) Begin(ctx context.Context) (Tx, error) {
	tx, err := g.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return gormTx{tx: tx}, nil
}

type gormTx struct {
	tx *repository.Tx
}

func (t gormTx) Rooms() RoomStore       { return t.tx.Rooms() }
func (t gormTx) Bookings() BookingStore { return t.tx.Bookings() }
func (t gormTx) Guests() GuestReader    { return t.tx.Guests() }
func (t gormTx) Commit() error          { return t.tx.Commit() }
func (t gormTx) Rollback() error        { return t.tx.Rollback() }
