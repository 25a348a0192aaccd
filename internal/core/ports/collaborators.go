package ports

import (
	"context"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// RoomProvider is the hotel side as seen from bookings. Transport failures
// come back as domain.ErrCollaboratorUnavailable, unknown rooms as
// domain.ErrNotFound.
type RoomProvider interface {
	GetRoom(ctx context.Context, hotelID, roomID int64) (*domain.RoomInfo, error)
	GetRoomsForHotel(ctx context.Context, hotelID int64) ([]domain.RoomInfo, error)
	SetRoomStatus(ctx context.Context, hotelID, roomID int64, status domain.RoomStatus) error
}

type UserProvider interface {
	GetUserContact(ctx context.Context, userID int64) (*domain.UserContact, error)
}

// Notifier is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}
