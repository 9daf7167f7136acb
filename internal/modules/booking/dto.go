package booking

import (
	"fmt"
	"strings"
	"time"

	"hotel/internal/domain"
)

const dateLayout = "2006-01-02"

// CreateBookingRequest binds from JSON or from an HTML form post.
type CreateBookingRequest struct {
	RoomID          int64  `json:"room_id" form:"room_id" binding:"required"`
	GuestID         int64  `json:"guest_id" form:"guest_id" binding:"required"`
	CheckInDate     string `json:"check_in_date" form:"check_in_date" binding:"required"`
	CheckOutDate    string `json:"check_out_date" form:"check_out_date" binding:"required"`
	SpecialRequests string `json:"special_requests" form:"special_requests"`
}

func (r CreateBookingRequest) toInput() (CreateBookingInput, error) {
	checkIn, err := time.Parse(dateLayout, strings.TrimSpace(r.CheckInDate))
	if err != nil {
		return CreateBookingInput{}, fmt.Errorf("%w: check_in_date must be YYYY-MM-DD", ErrValidation)
	}
	checkOut, err := time.Parse(dateLayout, strings.TrimSpace(r.CheckOutDate))
	if err != nil {
		return CreateBookingInput{}, fmt.Errorf("%w: check_out_date must be YYYY-MM-DD", ErrValidation)
	}

	return CreateBookingInput{
		RoomID:          r.RoomID,
		GuestID:         r.GuestID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		SpecialRequests: strings.TrimSpace(r.SpecialRequests),
	}, nil
}

type ListBookingsQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (q ListBookingsQuery) toInput() ListInput {
	return ListInput{
		Status: domain.BookingStatus(strings.TrimSpace(q.Status)),
		Page:   q.Page,
		Limit:  q.Limit,
	}
}
