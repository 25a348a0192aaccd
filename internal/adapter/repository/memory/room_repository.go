package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type roomKey struct {
	hotelID int64
	roomID  int64
}

type RoomRepository struct {
	mu    sync.Mutex
	rooms map[roomKey]domain.Room
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{rooms: make(map[roomKey]domain.Room)}
}

func (r *RoomRepository) Create(_ context.Context, room *domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := roomKey{room.HotelID, room.RoomID}
	if _, exists := r.rooms[key]; exists {
		return domain.Conflictf("room %d already exists in hotel %d", room.RoomID, room.HotelID)
	}

	if room.Status == "" {
		room.Status = domain.RoomAvailable
	}
	room.UpdatedAt = time.Now().UTC()
	r.rooms[key] = *room

	return nil
}

func (r *RoomRepository) Get(_ context.Context, hotelID, roomID int64) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomKey{hotelID, roomID}]
	if !ok {
		return nil, domain.NotFoundf("room %d not found in hotel %d", roomID, hotelID)
	}
	return &room, nil
}

func (r *RoomRepository) ListByHotel(_ context.Context, hotelID int64) ([]domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rooms := make([]domain.Room, 0)
	for k, room := range r.rooms {
		if k.hotelID == hotelID {
			rooms = append(rooms, room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomID < rooms[j].RoomID })

	return rooms, nil
}

func (r *RoomRepository) Transition(_ context.Context, hotelID, roomID int64, fn func(domain.RoomStatus) (domain.RoomStatus, error)) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := roomKey{hotelID, roomID}
	room, ok := r.rooms[key]
	if !ok {
		return nil, domain.NotFoundf("room %d not found in hotel %d", roomID, hotelID)
	}

	next, err := fn(room.Status)
	if err != nil {
		return nil, err
	}

	room.Status = next
	room.UpdatedAt = time.Now().UTC()
	r.rooms[key] = room

	return &room, nil
}
