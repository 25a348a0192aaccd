package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/srgjo27/hotel_booking/internal/core/ports"
)

const expiryBatchSize = 100

// ExpiryWorker cancels bookings left PENDING for longer than the TTL.
type ExpiryWorker struct {
	bookingRepo ports.BookingRepository
	bookings    *BookingService
	ttl         time.Duration
	log         *logrus.Logger
	now         func() time.Time
}

func NewExpiryWorker(bookingRepo ports.BookingRepository, bookings *BookingService, ttl time.Duration, logger *logrus.Logger) *ExpiryWorker {
	return &ExpiryWorker{
		bookingRepo: bookingRepo,
		bookings:    bookings,
		ttl:         ttl,
		log:         logger,
		now:         time.Now,
	}
}

// ProcessExpiredBookings runs one sweep and returns how many bookings it
// cancelled.
func (w *ExpiryWorker) ProcessExpiredBookings(ctx context.Context) int {
	if w.ttl <= 0 {
		return 0
	}

	ids, err := w.bookingRepo.GetExpiredPending(ctx, w.now().Add(-w.ttl), expiryBatchSize)
	if err != nil {
		w.log.WithError(err).Error("error fetching expired bookings")
		return 0
	}

	if len(ids) == 0 {
		return 0
	}

	w.log.Infof("found %d expired bookings, cancelling", len(ids))

	cancelled := 0
	for _, id := range ids {
		if _, err := w.bookings.CancelBooking(ctx, id); err != nil {
			w.log.WithField("booking_id", id).WithError(err).Warn("failed to cancel expired booking")
			continue
		}
		cancelled++
		w.log.WithField("booking_id", id).Info("booking expired and room released")
	}

	return cancelled
}
