package guest

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("guest not found")
	ErrGuestHasBookings = errors.New("guest has bookings")
)
