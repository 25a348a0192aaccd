package memory_test

import (
	"context"
	"testing"

	"github.com/srgjo27/hotel_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRepository_CreateAndTransition(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRoomRepository()

	room := &domain.Room{HotelID: 1, RoomID: 10, RoomType: domain.RoomDouble, PricePerNight: 120, MaxOccupancy: 2}
	require.NoError(t, repo.Create(ctx, room))
	assert.Equal(t, domain.RoomAvailable, room.Status)

	err := repo.Create(ctx, &domain.Room{HotelID: 1, RoomID: 10})
	assert.True(t, domain.IsConflict(err))

	updated, err := repo.Transition(ctx, 1, 10, func(s domain.RoomStatus) (domain.RoomStatus, error) {
		return domain.NextRoomState(s, domain.EventBook)
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomBooked, updated.Status)

	_, err = repo.Transition(ctx, 1, 10, func(s domain.RoomStatus) (domain.RoomStatus, error) {
		return domain.NextRoomState(s, domain.EventBook)
	})
	assert.True(t, domain.IsConflict(err))

	stored, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomBooked, stored.Status)
}

func TestRoomRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRoomRepository()

	_, err := repo.Get(ctx, 1, 99)
	assert.True(t, domain.IsNotFound(err))

	_, err = repo.Transition(ctx, 1, 99, func(s domain.RoomStatus) (domain.RoomStatus, error) { return s, nil })
	assert.True(t, domain.IsNotFound(err))
}

func TestRoomRepository_ListByHotel(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRoomRepository()

	for _, id := range []int64{12, 10, 11} {
		require.NoError(t, repo.Create(ctx, &domain.Room{HotelID: 1, RoomID: id, RoomType: domain.RoomSingle, PricePerNight: 80, MaxOccupancy: 1}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Room{HotelID: 2, RoomID: 10, RoomType: domain.RoomSingle, PricePerNight: 80, MaxOccupancy: 1}))

	rooms, err := repo.ListByHotel(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.Equal(t, int64(10), rooms[0].RoomID)
	assert.Equal(t, int64(12), rooms[2].RoomID)
}
