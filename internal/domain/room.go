package domain

import "time"

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomSuite  RoomType = "suite"
	RoomDeluxe RoomType = "deluxe"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomBooked      RoomStatus = "booked"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomBooked, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

// ManagedByBookings is true for statuses that only the booking lifecycle may set.
func (s RoomStatus) ManagedByBookings() bool {
	return s == RoomBooked || s == RoomOccupied
}

type Room struct {
	ID            int64      `json:"id"`
	RoomNumber    string     `json:"room_number" validate:"required,max=10"`
	RoomType      RoomType   `json:"room_type" validate:"required,oneof=single double suite deluxe"`
	PricePerNight float64    `json:"price_per_night" validate:"gt=0"`
	Status        RoomStatus `json:"status" validate:"required,oneof=available booked occupied maintenance"`
	Floor         int        `json:"floor"`
	Capacity      int        `json:"capacity" validate:"gt=0"`
	Amenities     string     `json:"amenities,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
