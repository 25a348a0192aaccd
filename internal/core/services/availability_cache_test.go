package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hotel_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports/mocks"
	"github.com/srgjo27/hotel_booking/internal/core/services"
)

const (
	cacheKey   = "availability:1"
	versionKey = "availability:1:version"
	cacheField = "2025-03-10:2025-03-12"
	cacheTTLms = int64(600000)
)

const storeScript = `if (redis.call('GET', KEYS[2]) or '0') ~= ARGV[1] then return 0 end
redis.call('HSET', KEYS[1], ARGV[2], ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1`

type cachedFixture struct {
	*fixture
	redis redismock.ClientMock
}

func newCachedFixture(t *testing.T) *cachedFixture {
	logger, hook := test.NewNullLogger()
	db, redisMock := redismock.NewClientMock()

	f := &fixture{
		repo:     memory.NewBookingRepository(),
		rooms:    mocks.NewRoomProvider(t),
		users:    mocks.NewUserProvider(t),
		notifier: mocks.NewNotifier(t),
		hook:     hook,
	}
	f.svc = services.NewBookingService(f.repo, f.rooms, f.users, f.notifier, db, logger).
		WithCacheTTL(10 * time.Minute)

	t.Cleanup(func() {
		if err := redisMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled redis expectations: %s", err)
		}
	})

	return &cachedFixture{fixture: f, redis: redisMock}
}

var (
	stayIn  = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	stayOut = time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
)

func hotelRooms() []domain.RoomInfo {
	maintenance := *roomInfo(102, 120)
	maintenance.Status = domain.RoomUnderMaintenance
	return []domain.RoomInfo{*roomInfo(103, 90), maintenance, *roomInfo(101, 100)}
}

func TestGetAvailableRoomsForHotel_MissLoadsAndStores(t *testing.T) {
	f := newCachedFixture(t)
	seedBookings(t, f.fixture, stay(103, 7, 11, 13, domain.BookingConfirmed))

	expected := []domain.RoomInfo{*roomInfo(101, 100)}
	payload, err := json.Marshal(expected)
	require.NoError(t, err)

	f.redis.ExpectHGet(cacheKey, cacheField).RedisNil()
	f.redis.ExpectGet(versionKey).RedisNil()
	f.rooms.On("GetRoomsForHotel", mock.Anything, int64(1)).Return(hotelRooms(), nil).Once()
	f.redis.ExpectEval(storeScript, []string{cacheKey, versionKey}, "0", cacheField, string(payload), cacheTTLms).SetVal(int64(1))

	rooms, err := f.svc.GetAvailableRoomsForHotel(context.Background(), 1, stayIn, stayOut)

	require.NoError(t, err)
	assert.Equal(t, expected, rooms)
}

func TestGetAvailableRoomsForHotel_Hit(t *testing.T) {
	f := newCachedFixture(t)

	cached := []domain.RoomInfo{*roomInfo(101, 100), *roomInfo(103, 90)}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	f.redis.ExpectHGet(cacheKey, cacheField).SetVal(string(payload))

	rooms, err := f.svc.GetAvailableRoomsForHotel(context.Background(), 1, stayIn, stayOut)

	require.NoError(t, err)
	assert.Equal(t, cached, rooms)
	f.rooms.AssertNotCalled(t, "GetRoomsForHotel", mock.Anything, mock.Anything)
}

func TestGetAvailableRoomsForHotel_CacheDownStillAnswers(t *testing.T) {
	f := newCachedFixture(t)

	f.redis.ExpectHGet(cacheKey, cacheField).SetErr(errors.New("connection reset"))
	f.redis.ExpectGet(versionKey).SetErr(errors.New("connection reset"))
	f.rooms.On("GetRoomsForHotel", mock.Anything, int64(1)).Return(hotelRooms(), nil).Once()

	rooms, err := f.svc.GetAvailableRoomsForHotel(context.Background(), 1, stayIn, stayOut)

	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, int64(101), rooms[0].RoomID)
	assert.Equal(t, int64(103), rooms[1].RoomID)
}

func TestGetAvailableRoomsForHotel_RoomServiceDown(t *testing.T) {
	f := newFixture(t)

	f.rooms.On("GetRoomsForHotel", mock.Anything, int64(1)).
		Return(nil, domain.Unavailable("room service", errors.New("timeout"))).Once()

	_, err := f.svc.GetAvailableRoomsForHotel(context.Background(), 1, stayIn, stayOut)

	assert.True(t, domain.IsUnavailable(err))
}

func TestCreateBooking_InvalidatesAvailabilityCache(t *testing.T) {
	f := newCachedFixture(t)

	f.expectCreate(101, 100)
	f.notifier.On("Notify", mock.Anything, notificationOf(domain.NotifyBookingCreated, 1)).Once()
	f.redis.ExpectIncr(versionKey).SetVal(1)
	f.redis.ExpectDel(cacheKey).SetVal(1)

	_, err := f.svc.CreateBooking(context.Background(), bookingRequest(101))

	require.NoError(t, err)
}

func TestGetAvailableRoomsForHotel_ChangedDuringLoadIsNotCached(t *testing.T) {
	f := newCachedFixture(t)

	expected := []domain.RoomInfo{*roomInfo(101, 100), *roomInfo(103, 90)}
	payload, err := json.Marshal(expected)
	require.NoError(t, err)

	f.redis.ExpectHGet(cacheKey, cacheField).RedisNil()
	f.redis.ExpectGet(versionKey).SetVal("4")
	f.rooms.On("GetRoomsForHotel", mock.Anything, int64(1)).Return(hotelRooms(), nil).Once()
	f.redis.ExpectEval(storeScript, []string{cacheKey, versionKey}, "4", cacheField, string(payload), cacheTTLms).SetVal(int64(0))

	rooms, err := f.svc.GetAvailableRoomsForHotel(context.Background(), 1, stayIn, stayOut)

	require.NoError(t, err)
	assert.Equal(t, expected, rooms)
	assert.Empty(t, f.hook.AllEntries())
}

func TestGetAvailableRoomsForHotel_RoomMaintenanceDropsCachedListing(t *testing.T) {
	logger, _ := test.NewNullLogger()
	db, redisMock := redismock.NewClientMock()
	t.Cleanup(func() {
		if err := redisMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled redis expectations: %s", err)
		}
	})

	ctx := context.Background()
	roomSvc := services.NewRoomService(memory.NewRoomRepository(), logger)
	for _, id := range []int64{101, 102} {
		_, err := roomSvc.CreateRoom(ctx, services.CreateRoomRequest{
			HotelID: 1, RoomID: id, RoomType: "DOUBLE", PricePerNight: 100, MaxOccupancy: 2,
		})
		require.NoError(t, err)
	}
	roomSvc.WithAvailabilityCache(db)

	provider := services.NewLocalRoomProvider(roomSvc)
	svc := services.NewBookingService(memory.NewBookingRepository(), provider, mocks.NewUserProvider(t), mocks.NewNotifier(t), db, logger).
		WithCacheTTL(10 * time.Minute)

	before, err := provider.GetRoomsForHotel(ctx, 1)
	require.NoError(t, err)
	beforePayload, err := json.Marshal(before)
	require.NoError(t, err)

	redisMock.ExpectHGet(cacheKey, cacheField).RedisNil()
	redisMock.ExpectGet(versionKey).RedisNil()
	redisMock.ExpectEval(storeScript, []string{cacheKey, versionKey}, "0", cacheField, string(beforePayload), cacheTTLms).SetVal(int64(1))

	rooms, err := svc.GetAvailableRoomsForHotel(ctx, 1, stayIn, stayOut)
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	redisMock.ExpectIncr(versionKey).SetVal(1)
	redisMock.ExpectDel(cacheKey).SetVal(1)

	_, err = roomSvc.MarkUnderMaintenance(ctx, 1, 101)
	require.NoError(t, err)

	after := before[1:]
	afterPayload, err := json.Marshal(after)
	require.NoError(t, err)

	redisMock.ExpectHGet(cacheKey, cacheField).RedisNil()
	redisMock.ExpectGet(versionKey).SetVal("1")
	redisMock.ExpectEval(storeScript, []string{cacheKey, versionKey}, "1", cacheField, string(afterPayload), cacheTTLms).SetVal(int64(1))

	rooms, err = svc.GetAvailableRoomsForHotel(ctx, 1, stayIn, stayOut)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, int64(102), rooms[0].RoomID)
}
