package domain

import "github.com/google/uuid"

const NotificationTypeBooking = "BOOKING"

type NotificationKind string

const (
	NotifyBookingCreated   NotificationKind = "booking.created"
	NotifyBookingConfirmed NotificationKind = "booking.confirmed"
	NotifyBookingCancelled NotificationKind = "booking.cancelled"
	NotifyBookingUpdated   NotificationKind = "booking.updated"
)

type Notification struct {
	Kind       NotificationKind `json:"event"`
	UserID     int64            `json:"userId"`
	Message    string           `json:"message"`
	Type       string           `json:"type"`
	BookingIDs []uuid.UUID      `json:"bookingIds"`
}

// StatusNotification returns the user-facing message for a status change.
func StatusNotification(userID int64, bookingID uuid.UUID, status BookingStatus) Notification {
	n := Notification{
		UserID:     userID,
		Type:       NotificationTypeBooking,
		BookingIDs: []uuid.UUID{bookingID},
	}
	switch status {
	case BookingConfirmed:
		n.Kind = NotifyBookingConfirmed
		n.Message = "Your booking has been confirmed!"
	case BookingCancelled:
		n.Kind = NotifyBookingCancelled
		n.Message = "Your booking has been canceled."
	default:
		n.Kind = NotifyBookingUpdated
		n.Message = "Your booking status has been updated."
	}
	return n
}

func CreatedNotification(userID int64, bookingIDs []uuid.UUID) Notification {
	return Notification{
		Kind:       NotifyBookingCreated,
		UserID:     userID,
		Message:    "Your booking is pending confirmation.",
		Type:       NotificationTypeBooking,
		BookingIDs: bookingIDs,
	}
}
