package domain

import "time"

type RoomStatus string

const (
	RoomAvailable        RoomStatus = "AVAILABLE"
	RoomBooked           RoomStatus = "BOOKED"
	RoomUnderMaintenance RoomStatus = "UNDER_MAINTENANCE"
)

func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomAvailable, RoomBooked, RoomUnderMaintenance:
		return true
	}
	return false
}

type RoomType string

const (
	RoomSingle RoomType = "SINGLE"
	RoomDouble RoomType = "DOUBLE"
	RoomSuite  RoomType = "SUITE"
	RoomDeluxe RoomType = "DELUXE"
)

func (t RoomType) IsValid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite, RoomDeluxe:
		return true
	}
	return false
}

// Room is keyed by (HotelID, RoomID).
type Room struct {
	HotelID       int64      `json:"hotelId"`
	RoomID        int64      `json:"roomId"`
	RoomType      RoomType   `json:"roomType"`
	PricePerNight float64    `json:"pricePerNight"`
	MaxOccupancy  int        `json:"maxOccupancy"`
	Status        RoomStatus `json:"status"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (r *Room) Info() RoomInfo {
	return RoomInfo{
		HotelID:       r.HotelID,
		RoomID:        r.RoomID,
		RoomType:      string(r.RoomType),
		PricePerNight: r.PricePerNight,
		Status:        r.Status,
	}
}

// RoomInfo is what the booking side knows about a room through the Room provider.
type RoomInfo struct {
	HotelID       int64      `json:"hotelId"`
	RoomID        int64      `json:"roomId"`
	RoomType      string     `json:"roomType"`
	PricePerNight float64    `json:"pricePerNight"`
	Status        RoomStatus `json:"status,omitempty"`
}
