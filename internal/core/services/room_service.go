package services

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
)

type CreateRoomRequest struct {
	HotelID       int64   `json:"hotelId" validate:"required,gt=0"`
	RoomID        int64   `json:"roomId" validate:"required,gt=0"`
	RoomType      string  `json:"roomType" validate:"required,oneof=SINGLE DOUBLE SUITE DELUXE"`
	PricePerNight float64 `json:"pricePerNight" validate:"required,gt=0"`
	MaxOccupancy  int     `json:"maxOccupancy" validate:"required,gt=0"`
}

// RoomService owns room records and drives their status through
// domain.NextRoomState.
type RoomService struct {
	roomRepo ports.RoomRepository
	cache    availabilityCache
	log      *logrus.Logger
}

func NewRoomService(roomRepo ports.RoomRepository, logger *logrus.Logger) *RoomService {
	return &RoomService{roomRepo: roomRepo, cache: availabilityCache{log: logger}, log: logger}
}

// WithAvailabilityCache makes room changes drop the hotel's cached
// available-rooms listings.
func (s *RoomService) WithAvailabilityCache(client *redis.Client) *RoomService {
	s.cache.client = client
	return s
}

func (s *RoomService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	room := &domain.Room{
		HotelID:       req.HotelID,
		RoomID:        req.RoomID,
		RoomType:      domain.RoomType(req.RoomType),
		PricePerNight: req.PricePerNight,
		MaxOccupancy:  req.MaxOccupancy,
		Status:        domain.RoomAvailable,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, room.HotelID)

	return room, nil
}

func (s *RoomService) GetRoom(ctx context.Context, hotelID, roomID int64) (*domain.Room, error) {
	if err := requireRoomKey(hotelID, roomID); err != nil {
		return nil, err
	}
	return s.roomRepo.Get(ctx, hotelID, roomID)
}

func (s *RoomService) ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	if hotelID <= 0 {
		return nil, domain.Validationf("hotel id is required")
	}
	return s.roomRepo.ListByHotel(ctx, hotelID)
}

func (s *RoomService) Book(ctx context.Context, hotelID, roomID int64) (*domain.Room, error) {
	return s.apply(ctx, hotelID, roomID, domain.EventBook)
}

func (s *RoomService) CheckOut(ctx context.Context, hotelID, roomID int64) (*domain.Room, error) {
	return s.apply(ctx, hotelID, roomID, domain.EventCheckOut)
}

func (s *RoomService) MarkUnderMaintenance(ctx context.Context, hotelID, roomID int64) (*domain.Room, error) {
	return s.apply(ctx, hotelID, roomID, domain.EventMarkMaintenance)
}

func (s *RoomService) CompleteMaintenance(ctx context.Context, hotelID, roomID int64) (*domain.Room, error) {
	return s.apply(ctx, hotelID, roomID, domain.EventCompleteMaintenance)
}

// SetStatus moves the room to target through whichever event leads there.
func (s *RoomService) SetStatus(ctx context.Context, hotelID, roomID int64, target domain.RoomStatus) (*domain.Room, error) {
	if err := requireRoomKey(hotelID, roomID); err != nil {
		return nil, err
	}
	if !target.IsValid() {
		return nil, domain.Validationf("invalid room status %q", target)
	}

	room, err := s.roomRepo.Transition(ctx, hotelID, roomID, func(current domain.RoomStatus) (domain.RoomStatus, error) {
		ev, err := domain.EventFor(current, target)
		if err != nil {
			return current, err
		}
		return domain.NextRoomState(current, ev)
	})
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, hotelID)

	return room, nil
}

func (s *RoomService) apply(ctx context.Context, hotelID, roomID int64, ev domain.RoomEvent) (*domain.Room, error) {
	if err := requireRoomKey(hotelID, roomID); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.Transition(ctx, hotelID, roomID, func(current domain.RoomStatus) (domain.RoomStatus, error) {
		return domain.NextRoomState(current, ev)
	})
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, hotelID)

	s.log.WithFields(logrus.Fields{
		"hotel_id": hotelID,
		"room_id":  roomID,
		"event":    ev,
		"status":   room.Status,
	}).Info("room status changed")

	return room, nil
}

func requireRoomKey(hotelID, roomID int64) error {
	if hotelID <= 0 {
		return domain.Validationf("hotel id is required")
	}
	if roomID <= 0 {
		return domain.Validationf("room id is required")
	}
	return nil
}

// LocalRoomProvider serves the booking side straight from RoomService when
// both run in one process.
type LocalRoomProvider struct {
	rooms *RoomService
}

func NewLocalRoomProvider(rooms *RoomService) *LocalRoomProvider {
	return &LocalRoomProvider{rooms: rooms}
}

func (p *LocalRoomProvider) GetRoom(ctx context.Context, hotelID, roomID int64) (*domain.RoomInfo, error) {
	room, err := p.rooms.GetRoom(ctx, hotelID, roomID)
	if err != nil {
		return nil, err
	}
	info := room.Info()
	return &info, nil
}

func (p *LocalRoomProvider) GetRoomsForHotel(ctx context.Context, hotelID int64) ([]domain.RoomInfo, error) {
	rooms, err := p.rooms.ListRooms(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	infos := make([]domain.RoomInfo, 0, len(rooms))
	for i := range rooms {
		infos = append(infos, rooms[i].Info())
	}
	return infos, nil
}

func (p *LocalRoomProvider) SetRoomStatus(ctx context.Context, hotelID, roomID int64, status domain.RoomStatus) error {
	_, err := p.rooms.SetStatus(ctx, hotelID, roomID, status)
	return err
}
