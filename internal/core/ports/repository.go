package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type BookingRepository interface {
	// CreateBookings persists all bookings or none. It re-checks overlap for
	// every room under a per-room lock and fails with a state conflict naming
	// the first blocked room.
	CreateBookings(ctx context.Context, bookings []*domain.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error)
	// Cancel moves a live booking to CANCELLED. changed is false when the
	// booking was already cancelled, in which case it is returned as stored.
	Cancel(ctx context.Context, bookingID uuid.UUID) (b *domain.Booking, changed bool, err error)
	FindOverlapping(ctx context.Context, hotelID, roomID int64, checkIn, checkOut time.Time) ([]domain.Booking, error)
	FindBookedRoomIDs(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]int64, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	GetExpiredPending(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	Get(ctx context.Context, hotelID, roomID int64) (*domain.Room, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
	// Transition loads the room under a row lock, applies fn to its status and
	// stores the result.
	Transition(ctx context.Context, hotelID, roomID int64, fn func(domain.RoomStatus) (domain.RoomStatus, error)) (*domain.Room, error)
}
