package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// List views make one user lookup and one room lookup per booking. A failed
// lookup leaves the enriched fields empty instead of failing the listing.

func (s *BookingService) GetBookingsByHotel(ctx context.Context, hotelID int64) ([]domain.BookingView, error) {
	if hotelID <= 0 {
		return nil, domain.Validationf("hotel id is required")
	}

	bookings, err := s.bookingRepo.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, s.bookingView(ctx, &bookings[i]))
	}

	return views, nil
}

func (s *BookingService) GetBookingsByUser(ctx context.Context, userID int64) ([]domain.UserBookingView, error) {
	if userID <= 0 {
		return nil, domain.Validationf("user id is required")
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.UserBookingView, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		views = append(views, domain.UserBookingView{
			BookingID:   b.ID,
			HotelID:     b.HotelID,
			RoomID:      b.RoomID,
			CheckIn:     domain.FormatDate(b.CheckIn),
			CheckOut:    domain.FormatDate(b.CheckOut),
			Status:      b.Status,
			TotalAmount: b.TotalAmount,
			RoomType:    s.roomType(ctx, b.HotelID, b.RoomID),
		})
	}

	return views, nil
}

// GetBookingsByDateRange lists live bookings touching [start, end], both ends
// inclusive. A range whose end is not after its start matches nothing.
func (s *BookingService) GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]domain.BookingView, error) {
	if start.IsZero() || end.IsZero() {
		return nil, domain.Validationf("start and end dates are required")
	}
	if !domain.DateOnly(end).After(domain.DateOnly(start)) {
		return []domain.BookingView{}, nil
	}

	bookings, err := s.bookingRepo.ListByDateRange(ctx, domain.DateOnly(start), domain.DateOnly(end))
	if err != nil {
		return nil, err
	}

	views := make([]domain.BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, s.bookingView(ctx, &bookings[i]))
	}

	return views, nil
}

func (s *BookingService) bookingView(ctx context.Context, b *domain.Booking) domain.BookingView {
	view := domain.BookingView{
		BookingID:   b.ID,
		HotelID:     b.HotelID,
		RoomID:      b.RoomID,
		UserID:      b.UserID,
		CheckIn:     domain.FormatDate(b.CheckIn),
		CheckOut:    domain.FormatDate(b.CheckOut),
		Status:      b.Status,
		TotalAmount: b.TotalAmount,
	}

	contact, err := s.users.GetUserContact(ctx, b.UserID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"booking_id": b.ID,
			"user_id":    b.UserID,
		}).WithError(err).Warn("user lookup failed, leaving contact empty")
	} else if contact != nil {
		view.FirstName = contact.FirstName
		view.LastName = contact.LastName
		view.Email = contact.Email
		view.Phone = contact.Phone
	}

	view.RoomType = s.roomType(ctx, b.HotelID, b.RoomID)

	return view
}

func (s *BookingService) roomType(ctx context.Context, hotelID, roomID int64) string {
	room, err := s.rooms.GetRoom(ctx, hotelID, roomID)
	if err != nil || room == nil {
		s.log.WithFields(logrus.Fields{
			"hotel_id": hotelID,
			"room_id":  roomID,
		}).WithError(err).Warn("room lookup failed, leaving room type empty")
		return ""
	}
	return room.RoomType
}
