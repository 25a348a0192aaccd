package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
)

var tracer = otel.Tracer("github.com/srgjo27/hotel_booking/internal/core/services")

const defaultCacheTTL = 5 * time.Minute

type CreateBookingRequest struct {
	HotelID      int64   `json:"hotelId" validate:"required,gt=0"`
	UserID       int64   `json:"userId" validate:"required,gt=0"`
	RoomIDs      []int64 `json:"roomIds" validate:"required,min=1,dive,gt=0"`
	CheckInDate  string  `json:"checkInDate" validate:"required"`
	CheckOutDate string  `json:"checkOutDate" validate:"required"`
}

type CreateBookingResponse struct {
	BookingIDs  []string         `json:"bookingIds"`
	Bookings    []domain.Booking `json:"bookings"`
	TotalAmount float64          `json:"totalAmount"`
	Status      string           `json:"status"`
}

type BookingService struct {
	bookingRepo  ports.BookingRepository
	rooms        ports.RoomProvider
	users        ports.UserProvider
	notifier     ports.Notifier
	availability *AvailabilityChecker
	cache        availabilityCache
	log          *logrus.Logger
	now          func() time.Time
}

// NewBookingService wires the booking lifecycle. cache may be nil, which
// disables the available-rooms cache.
func NewBookingService(
	bookingRepo ports.BookingRepository,
	rooms ports.RoomProvider,
	users ports.UserProvider,
	notifier ports.Notifier,
	cache *redis.Client,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		rooms:        rooms,
		users:        users,
		notifier:     notifier,
		availability: NewAvailabilityChecker(bookingRepo),
		cache:        availabilityCache{client: cache, ttl: defaultCacheTTL, log: logger},
		log:          logger,
		now:          time.Now,
	}
}

func (s *BookingService) WithCacheTTL(ttl time.Duration) *BookingService {
	if ttl > 0 {
		s.cache.ttl = ttl
	}
	return s
}

func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (resp *CreateBookingResponse, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.CreateBooking", trace.WithAttributes(
		attribute.Int64("hotel.id", req.HotelID),
		attribute.Int64("user.id", req.UserID),
		attribute.Int("rooms.count", len(req.RoomIDs)),
	))
	defer func() { endSpan(span, err) }()

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	checkIn, err := domain.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, err
	}

	checkOut, err := domain.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateStay(checkIn, checkOut); err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(req.RoomIDs))
	for _, roomID := range req.RoomIDs {
		if _, dup := seen[roomID]; dup {
			return nil, domain.Validationf("room %d selected more than once", roomID)
		}
		seen[roomID] = struct{}{}
	}

	nights := domain.Nights(checkIn, checkOut)
	now := s.now().UTC()

	var totalAmount float64
	bookings := make([]*domain.Booking, 0, len(req.RoomIDs))

	for _, roomID := range req.RoomIDs {
		available, err := s.availability.IsAvailable(ctx, req.HotelID, roomID, checkIn, checkOut)
		if err != nil {
			return nil, err
		}

		if !available {
			return nil, domain.Conflictf("room %d is not available", roomID)
		}

		room, err := s.rooms.GetRoom(ctx, req.HotelID, roomID)
		if err != nil {
			return nil, err
		}

		if room.Status == domain.RoomUnderMaintenance {
			return nil, domain.Conflictf("room %d is under maintenance", roomID)
		}

		if room.PricePerNight <= 0 {
			return nil, domain.Conflictf("cannot fetch price for room %d", roomID)
		}

		amount := room.PricePerNight * float64(nights)
		totalAmount += amount

		bookings = append(bookings, &domain.Booking{
			ID:          uuid.New(),
			HotelID:     req.HotelID,
			RoomID:      roomID,
			UserID:      req.UserID,
			CheckIn:     checkIn,
			CheckOut:    checkOut,
			TotalAmount: amount,
			BookingDate: domain.DateOnly(now),
			Status:      domain.BookingPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.bookingRepo.CreateBookings(ctx, bookings); err != nil {
		return nil, err
	}

	created := make([]domain.Booking, 0, len(bookings))
	ids := make([]uuid.UUID, 0, len(bookings))
	idStrings := make([]string, 0, len(bookings))
	for _, b := range bookings {
		created = append(created, *b)
		ids = append(ids, b.ID)
		idStrings = append(idStrings, b.ID.String())
		s.syncRoomStatus(ctx, b.HotelID, b.RoomID, domain.RoomBooked)
	}

	s.cache.invalidate(ctx, req.HotelID)
	s.notifier.Notify(ctx, domain.CreatedNotification(req.UserID, ids))

	s.log.WithFields(logrus.Fields{
		"hotel_id":    req.HotelID,
		"user_id":     req.UserID,
		"booking_ids": idStrings,
	}).Info("bookings created")

	return &CreateBookingResponse{
		BookingIDs:  idStrings,
		Bookings:    created,
		TotalAmount: totalAmount,
		Status:      string(domain.BookingPending),
	}, nil
}

// UpdateBookingStatus sets any valid status on a booking. Reviving a
// cancelled booking is rejected by the store if its dates are taken.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) (b *domain.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.UpdateBookingStatus", trace.WithAttributes(
		attribute.String("booking.id", bookingID.String()),
		attribute.String("booking.status", string(status)),
	))
	defer func() { endSpan(span, err) }()

	if bookingID == uuid.Nil {
		return nil, domain.Validationf("booking id is required")
	}

	if !status.IsValid() {
		return nil, domain.Validationf("invalid booking status %q", status)
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, updated.HotelID)
	s.notifier.Notify(ctx, domain.StatusNotification(updated.UserID, updated.ID, status))

	return updated, nil
}

// CancelBooking frees the booking's dates and releases the room on a best
// effort basis. Cancelling an already cancelled booking has no side effects.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) (b *domain.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.CancelBooking", trace.WithAttributes(
		attribute.String("booking.id", bookingID.String()),
	))
	defer func() { endSpan(span, err) }()

	if bookingID == uuid.Nil {
		return nil, domain.Validationf("booking id is required")
	}

	cancelled, changed, err := s.bookingRepo.Cancel(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !changed {
		return cancelled, nil
	}

	s.syncRoomStatus(ctx, cancelled.HotelID, cancelled.RoomID, domain.RoomAvailable)
	s.cache.invalidate(ctx, cancelled.HotelID)
	s.notifier.Notify(ctx, domain.StatusNotification(cancelled.UserID, cancelled.ID, domain.BookingCancelled))

	return cancelled, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	if bookingID == uuid.Nil {
		return nil, domain.Validationf("booking id is required")
	}
	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *BookingService) ListAllBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookingRepo.ListAll(ctx)
}

func (s *BookingService) IsRoomAvailable(ctx context.Context, hotelID, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	return s.availability.IsAvailable(ctx, hotelID, roomID, checkIn, checkOut)
}

// syncRoomStatus mirrors a booking change onto the room's operational status.
// Failures are logged and never undo the booking change.
func (s *BookingService) syncRoomStatus(ctx context.Context, hotelID, roomID int64, status domain.RoomStatus) {
	if err := s.rooms.SetRoomStatus(ctx, hotelID, roomID, status); err != nil {
		s.log.WithFields(logrus.Fields{
			"hotel_id": hotelID,
			"room_id":  roomID,
			"status":   status,
		}).WithError(err).Warn("failed to sync room status")
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
