package dashboard

import (
	"context"
	"fmt"
	"time"

	"hotel/internal/domain"
)

const recentBookings = 5

type Stats struct {
	TotalRooms     int64            `json:"total_rooms"`
	AvailableRooms int64            `json:"available_rooms"`
	OccupiedRooms  int64            `json:"occupied_rooms"`
	TotalGuests    int64            `json:"total_guests"`
	ActiveBookings int64            `json:"active_bookings"`
	TodayCheckIns  int64            `json:"today_check_ins"`
	TodayCheckOuts int64            `json:"today_check_outs"`
	RecentBookings []domain.Booking `json:"recent_bookings"`
}

type Service struct {
	rooms    RoomCounter
	guests   GuestCounter
	bookings BookingStats
	now      func() time.Time
}

func NewService(rooms RoomCounter, guests GuestCounter, bookings BookingStats) *Service {
	return &Service{rooms: rooms, guests: guests, bookings: bookings, now: time.Now}
}

// Stats returns front-desk counters for the current UTC day.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	today := domain.DateOnly(s.now())
	var (
		st  Stats
		err error
	)

	if st.TotalRooms, err = s.rooms.Count(ctx); err != nil {
		return nil, fmt.Errorf("count rooms: %w", err)
	}
	if st.AvailableRooms, err = s.rooms.CountByStatus(ctx, domain.RoomAvailable); err != nil {
		return nil, fmt.Errorf("count available rooms: %w", err)
	}
	if st.OccupiedRooms, err = s.rooms.CountByStatus(ctx, domain.RoomOccupied); err != nil {
		return nil, fmt.Errorf("count occupied rooms: %w", err)
	}
	if st.TotalGuests, err = s.guests.Count(ctx); err != nil {
		return nil, fmt.Errorf("count guests: %w", err)
	}
	if st.ActiveBookings, err = s.bookings.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count active bookings: %w", err)
	}
	if st.TodayCheckIns, err = s.bookings.CountArrivals(ctx, today); err != nil {
		return nil, fmt.Errorf("count arrivals: %w", err)
	}
	if st.TodayCheckOuts, err = s.bookings.CountDepartures(ctx, today); err != nil {
		return nil, fmt.Errorf("count departures: %w", err)
	}
	if st.RecentBookings, err = s.bookings.ListRecent(ctx, recentBookings); err != nil {
		return nil, fmt.Errorf("recent bookings: %w", err)
	}
	return &st, nil
}
