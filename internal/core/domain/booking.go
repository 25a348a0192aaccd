package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking is one room reserved for [CheckIn, CheckOut). A multi-room request
// produces one Booking per room.
type Booking struct {
	ID          uuid.UUID     `json:"id"`
	HotelID     int64         `json:"hotelId"`
	RoomID      int64         `json:"roomId"`
	UserID      int64         `json:"userId"`
	CheckIn     time.Time     `json:"checkInDate"`
	CheckOut    time.Time     `json:"checkOutDate"`
	TotalAmount float64       `json:"totalAmount"`
	BookingDate time.Time     `json:"bookingDate"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// IsLive reports whether the booking still holds its room.
func (b *Booking) IsLive() bool {
	return b.Status != BookingCancelled
}

// Nights is the number of nights between check-in and check-out.
func (b *Booking) Nights() int {
	return Nights(b.CheckIn, b.CheckOut)
}

// OverlapsRange applies the half-open overlap test against [checkIn, checkOut).
func (b *Booking) OverlapsRange(checkIn, checkOut time.Time) bool {
	return Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut)
}

// BookingView is a booking enriched with the guest's contact details and the
// room type, as used by hotel-scoped and date-range listings.
type BookingView struct {
	BookingID   uuid.UUID     `json:"bookingId"`
	HotelID     int64         `json:"hotelId"`
	RoomID      int64         `json:"roomId"`
	UserID      int64         `json:"userId"`
	CheckIn     string        `json:"checkInDate"`
	CheckOut    string        `json:"checkOutDate"`
	Status      BookingStatus `json:"status"`
	TotalAmount float64       `json:"totalAmount"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	RoomType    string        `json:"roomType"`
}

// UserBookingView is the user-scoped projection; it carries no contact fields.
type UserBookingView struct {
	BookingID   uuid.UUID     `json:"bookingId"`
	HotelID     int64         `json:"hotelId"`
	RoomID      int64         `json:"roomId"`
	CheckIn     string        `json:"checkInDate"`
	CheckOut    string        `json:"checkOutDate"`
	Status      BookingStatus `json:"status"`
	TotalAmount float64       `json:"totalAmount"`
	RoomType    string        `json:"roomType"`
}

type UserContact struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}
