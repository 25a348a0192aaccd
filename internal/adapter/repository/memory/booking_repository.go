package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// BookingRepository keeps bookings in process. A single mutex spans the
// overlap check and the insert, so concurrent creations for the same room
// are serialized.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]domain.Booking
	now      func() time.Time
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings: make(map[uuid.UUID]domain.Booking),
		now:      time.Now,
	}
}

func (r *BookingRepository) CreateBookings(ctx context.Context, bookings []*domain.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range bookings {
		if !b.IsLive() {
			continue
		}
		if r.overlapsLocked(b.HotelID, b.RoomID, b.CheckIn, b.CheckOut, uuid.Nil) {
			return domain.Conflictf("room %d is not available", b.RoomID)
		}
		for _, other := range bookings[:i] {
			if other.IsLive() && other.HotelID == b.HotelID && other.RoomID == b.RoomID && other.OverlapsRange(b.CheckIn, b.CheckOut) {
				return domain.Conflictf("room %d is not available", b.RoomID)
			}
		}
	}

	for _, b := range bookings {
		if _, exists := r.bookings[b.ID]; exists {
			return domain.Conflictf("booking %s already exists", b.ID)
		}
	}

	for _, b := range bookings {
		r.bookings[b.ID] = *b
	}

	return nil
}

func (r *BookingRepository) GetByID(_ context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, domain.NotFoundf("booking %s not found", bookingID)
	}
	return &b, nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, domain.NotFoundf("booking %s not found", bookingID)
	}

	if !b.IsLive() && status != domain.BookingCancelled &&
		r.overlapsLocked(b.HotelID, b.RoomID, b.CheckIn, b.CheckOut, b.ID) {
		return nil, domain.Conflictf("room %d is no longer available for booking %s", b.RoomID, b.ID)
	}

	b.Status = status
	b.UpdatedAt = r.now().UTC()
	r.bookings[bookingID] = b

	return &b, nil
}

func (r *BookingRepository) Cancel(_ context.Context, bookingID uuid.UUID) (*domain.Booking, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, false, domain.NotFoundf("booking %s not found", bookingID)
	}

	if b.Status == domain.BookingCancelled {
		return &b, false, nil
	}

	b.Status = domain.BookingCancelled
	b.UpdatedAt = r.now().UTC()
	r.bookings[bookingID] = b

	return &b, true, nil
}

func (r *BookingRepository) FindOverlapping(_ context.Context, hotelID, roomID int64, checkIn, checkOut time.Time) ([]domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool {
		return b.HotelID == hotelID && b.RoomID == roomID && b.IsLive() && b.OverlapsRange(checkIn, checkOut)
	}), nil
}

func (r *BookingRepository) FindBookedRoomIDs(_ context.Context, hotelID int64, checkIn, checkOut time.Time) ([]int64, error) {
	overlapping := r.filter(func(b *domain.Booking) bool {
		return b.HotelID == hotelID && b.IsLive() && b.OverlapsRange(checkIn, checkOut)
	})

	seen := make(map[int64]struct{})
	ids := make([]int64, 0, len(overlapping))
	for _, b := range overlapping {
		if _, ok := seen[b.RoomID]; ok {
			continue
		}
		seen[b.RoomID] = struct{}{}
		ids = append(ids, b.RoomID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}

func (r *BookingRepository) ListByHotel(_ context.Context, hotelID int64) ([]domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool { return b.HotelID == hotelID }), nil
}

func (r *BookingRepository) ListByUser(_ context.Context, userID int64) ([]domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool { return b.UserID == userID }), nil
}

func (r *BookingRepository) ListByDateRange(_ context.Context, start, end time.Time) ([]domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool {
		return b.IsLive() && !b.CheckIn.After(end) && !b.CheckOut.Before(start)
	}), nil
}

func (r *BookingRepository) ListAll(_ context.Context) ([]domain.Booking, error) {
	return r.filter(func(*domain.Booking) bool { return true }), nil
}

func (r *BookingRepository) GetExpiredPending(_ context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	expired := r.filter(func(b *domain.Booking) bool {
		return b.Status == domain.BookingPending && b.CreatedAt.Before(createdBefore)
	})
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}

	ids := make([]uuid.UUID, 0, len(expired))
	for _, b := range expired {
		ids = append(ids, b.ID)
	}
	return ids, nil
}

func (r *BookingRepository) overlapsLocked(hotelID, roomID int64, checkIn, checkOut time.Time, exclude uuid.UUID) bool {
	for id, b := range r.bookings {
		if id == exclude {
			continue
		}
		if b.HotelID == hotelID && b.RoomID == roomID && b.IsLive() && b.OverlapsRange(checkIn, checkOut) {
			return true
		}
	}
	return false
}

// filter returns matching bookings ordered by check-in, then creation time.
func (r *BookingRepository) filter(match func(*domain.Booking) bool) []domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		if match(&b) {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].CheckIn.Before(out[j].CheckIn)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	return out
}
