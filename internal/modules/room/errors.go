package room

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("room not found")
	ErrRoomNumberTaken         = errors.New("room number already exists")
	ErrStatusManagedByBookings = errors.New("booked and occupied are set by the booking lifecycle")
	ErrConcurrentUpdate        = errors.New("room status changed while editing")
	ErrRoomInUse               = errors.New("room has an active booking")
	ErrRoomHasHistory          = errors.New("room has booking history")
)
