package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrRoomUnavailable   = errors.New("room is not available")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrInvalidDateRange  = errors.New("check-out date must be after check-in date")
)
