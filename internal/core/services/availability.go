package services

import (
	"context"
	"fmt"
	"time"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
)

// AvailabilityChecker answers whether a room is free for a stay, using the
// booking table as the only source of truth.
type AvailabilityChecker struct {
	bookingRepo ports.BookingRepository
}

func NewAvailabilityChecker(bookingRepo ports.BookingRepository) *AvailabilityChecker {
	return &AvailabilityChecker{bookingRepo: bookingRepo}
}

func (c *AvailabilityChecker) IsAvailable(ctx context.Context, hotelID, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	if hotelID <= 0 {
		return false, domain.Validationf("hotel id is required")
	}
	if roomID <= 0 {
		return false, domain.Validationf("room id is required")
	}
	if err := domain.ValidateStay(checkIn, checkOut); err != nil {
		return false, err
	}

	overlapping, err := c.bookingRepo.FindOverlapping(ctx, hotelID, roomID, domain.DateOnly(checkIn), domain.DateOnly(checkOut))
	if err != nil {
		return false, fmt.Errorf("failed to check availability of room %d: %w", roomID, err)
	}

	return len(overlapping) == 0, nil
}
