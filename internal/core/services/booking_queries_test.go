package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

func seedBookings(t *testing.T, f *fixture, bookings ...*domain.Booking) {
	t.Helper()
	require.NoError(t, f.repo.CreateBookings(context.Background(), bookings))
}

func stay(roomID, userID int64, fromDay, toDay int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          uuid.New(),
		HotelID:     1,
		RoomID:      roomID,
		UserID:      userID,
		CheckIn:     time.Date(2025, time.March, fromDay, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2025, time.March, toDay, 0, 0, 0, 0, time.UTC),
		TotalAmount: 100 * float64(toDay-fromDay),
		Status:      status,
	}
}

func TestGetBookingsByHotel_EnrichesEachBooking(t *testing.T) {
	f := newFixture(t)
	seedBookings(t, f,
		stay(101, 7, 1, 3, domain.BookingConfirmed),
		stay(102, 8, 2, 4, domain.BookingPending),
		stay(103, 7, 5, 6, domain.BookingCancelled),
	)

	f.users.On("GetUserContact", mock.Anything, int64(7)).
		Return(&domain.UserContact{FirstName: "Ana", LastName: "Lim", Email: "ana@example.com", Phone: "555"}, nil).Twice()
	f.users.On("GetUserContact", mock.Anything, int64(8)).
		Return(nil, domain.Unavailable("user service", errors.New("timeout"))).Once()
	f.rooms.On("GetRoom", mock.Anything, int64(1), mock.AnythingOfType("int64")).
		Return(roomInfo(0, 100), nil).Times(3)

	views, err := f.svc.GetBookingsByHotel(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "2025-03-01", views[0].CheckIn)
	assert.Equal(t, "Ana", views[0].FirstName)
	assert.Equal(t, "ana@example.com", views[0].Email)
	assert.Equal(t, "DOUBLE", views[0].RoomType)

	assert.Empty(t, views[1].FirstName)
	assert.Empty(t, views[1].Email)
	assert.Equal(t, "DOUBLE", views[1].RoomType)

	assert.Equal(t, domain.BookingCancelled, views[2].Status)

	f.users.AssertNumberOfCalls(t, "GetUserContact", 3)
	f.rooms.AssertNumberOfCalls(t, "GetRoom", 3)

	warned := false
	for _, e := range f.hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "user lookup failed, leaving contact empty" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestGetBookingsByUser(t *testing.T) {
	f := newFixture(t)
	seedBookings(t, f,
		stay(101, 7, 1, 3, domain.BookingConfirmed),
		stay(102, 8, 2, 4, domain.BookingPending),
	)

	f.rooms.On("GetRoom", mock.Anything, int64(1), int64(101)).
		Return(nil, domain.NotFoundf("room 101 not found in hotel 1")).Once()

	views, err := f.svc.GetBookingsByUser(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, int64(101), views[0].RoomID)
	assert.Empty(t, views[0].RoomType)
	f.users.AssertNotCalled(t, "GetUserContact", mock.Anything, mock.Anything)

	_, err = f.svc.GetBookingsByUser(context.Background(), 0)
	assert.True(t, domain.IsValidation(err))
}

func TestGetBookingsByDateRange(t *testing.T) {
	f := newFixture(t)
	seedBookings(t, f,
		stay(101, 7, 1, 3, domain.BookingConfirmed),
		stay(102, 7, 10, 12, domain.BookingPending),
		stay(103, 7, 2, 4, domain.BookingCancelled),
	)

	f.users.On("GetUserContact", mock.Anything, int64(7)).Return(&domain.UserContact{FirstName: "Ana"}, nil).Once()
	f.rooms.On("GetRoom", mock.Anything, int64(1), int64(101)).Return(roomInfo(101, 100), nil).Once()

	// inclusive: a stay that checks out on the start date is included
	views, err := f.svc.GetBookingsByDateRange(context.Background(),
		time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, int64(101), views[0].RoomID)
}

func TestGetBookingsByDateRange_Invalid(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.GetBookingsByDateRange(context.Background(), time.Time{}, day)
	assert.True(t, domain.IsValidation(err))

}

func TestGetBookingsByDateRange_EmptyRange(t *testing.T) {
	f := newFixture(t)
	seedBookings(t, f, stay(101, 7, 1, 5, domain.BookingConfirmed))
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	views, err := f.svc.GetBookingsByDateRange(context.Background(), day, day)
	require.NoError(t, err)
	assert.Empty(t, views)

	views, err = f.svc.GetBookingsByDateRange(context.Background(), day, day.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Empty(t, views)
}
