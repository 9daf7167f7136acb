package room

type CreateRoomRequest struct {
	RoomNumber    string  `json:"room_number" form:"room_number" binding:"required,max=10"`
	RoomType      string  `json:"room_type" form:"room_type" binding:"required"`
	PricePerNight float64 `json:"price_per_night" form:"price_per_night" binding:"required,gt=0"`
	Floor         int     `json:"floor" form:"floor"`
	Capacity      int     `json:"capacity" form:"capacity" binding:"required,gt=0"`
	Amenities     string  `json:"amenities" form:"amenities"`
}

// UpdateRoomRequest changes only the fields that are present.
type UpdateRoomRequest struct {
	RoomNumber    *string  `json:"room_number" form:"room_number"`
	RoomType      *string  `json:"room_type" form:"room_type"`
	PricePerNight *float64 `json:"price_per_night" form:"price_per_night"`
	Status        *string  `json:"status" form:"status"`
	Floor         *int     `json:"floor" form:"floor"`
	Capacity      *int     `json:"capacity" form:"capacity"`
	Amenities     *string  `json:"amenities" form:"amenities"`
}

type ListRoomsQuery struct {
	Status string `form:"status"`
}
