package domain

import (
	"math"
	"time"
)

type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

// bookingTransitions lists every allowed move of the booking state machine.
// checked_out and cancelled are terminal.
var bookingTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingConfirmed: {
		BookingCheckedIn: true,
		BookingCancelled: true,
	},
	BookingCheckedIn: {
		BookingCheckedOut: true,
	},
	BookingCheckedOut: {},
	BookingCancelled:  {},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	next, ok := bookingTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) IsTerminal() bool {
	return s.Valid() && len(bookingTransitions[s]) == 0
}

// IsActive is true while the booking still holds its room.
func (s BookingStatus) IsActive() bool {
	return s == BookingConfirmed || s == BookingCheckedIn
}

// ActiveBookingStatuses returns the statuses that keep a room out of stock.
func ActiveBookingStatuses() []BookingStatus {
	return []BookingStatus{BookingConfirmed, BookingCheckedIn}
}

// RoomStatusFor returns the room status that mirrors a booking in status s.
func RoomStatusFor(s BookingStatus) RoomStatus {
	switch s {
	case BookingConfirmed:
		return RoomBooked
	case BookingCheckedIn:
		return RoomOccupied
	default:
		return RoomAvailable
	}
}

type Booking struct {
	ID              int64         `json:"id"`
	RoomID          int64         `json:"room_id" validate:"required"`
	GuestID         int64         `json:"guest_id" validate:"required"`
	CheckInDate     time.Time     `json:"check_in_date" validate:"required"`
	CheckOutDate    time.Time     `json:"check_out_date" validate:"required"`
	Status          BookingStatus `json:"status"`
	TotalAmount     float64       `json:"total_amount" validate:"gte=0"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	CheckedInAt     *time.Time    `json:"checked_in_at,omitempty"`
	CheckedOutAt    *time.Time    `json:"checked_out_at,omitempty"`

	// Populated by list queries only
	Room  *Room  `json:"room,omitempty"`
	Guest *Guest `json:"guest,omitempty"`
}

// Nights returns the number of whole nights between two dates.
func (b *Booking) Nights() int {
	return Nights(b.CheckInDate, b.CheckOutDate)
}

// DateOnly drops the clock part of t, keeping its calendar date, in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights counts calendar days between check-in and check-out.
// Non-positive results mean the range is empty or inverted.
func Nights(checkIn, checkOut time.Time) int {
	return int(DateOnly(checkOut).Sub(DateOnly(checkIn)) / (24 * time.Hour))
}

// BookingTotal is nights × price, rounded to cents.
func BookingTotal(nights int, pricePerNight float64) float64 {
	return RoundMoney(float64(nights) * pricePerNight)
}

func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
