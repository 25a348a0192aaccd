package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// GetAvailableRoomsForHotel lists the hotel's rooms that have no live booking
// overlapping the stay and are not under maintenance.
func (s *BookingService) GetAvailableRoomsForHotel(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]domain.RoomInfo, error) {
	if hotelID <= 0 {
		return nil, domain.Validationf("hotel id is required")
	}
	if err := domain.ValidateStay(checkIn, checkOut); err != nil {
		return nil, err
	}

	checkIn, checkOut = domain.DateOnly(checkIn), domain.DateOnly(checkOut)

	if rooms, ok := s.cache.get(ctx, hotelID, checkIn, checkOut); ok {
		return rooms, nil
	}

	version, storable := s.cache.version(ctx, hotelID)

	rooms, err := s.rooms.GetRoomsForHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	bookedIDs, err := s.bookingRepo.FindBookedRoomIDs(ctx, hotelID, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked rooms for hotel %d: %w", hotelID, err)
	}

	booked := make(map[int64]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	available := make([]domain.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		if _, taken := booked[r.RoomID]; taken {
			continue
		}
		if r.Status == domain.RoomUnderMaintenance {
			continue
		}
		available = append(available, r)
	}

	sort.Slice(available, func(i, j int) bool { return available[i].RoomID < available[j].RoomID })

	if storable {
		s.cache.store(ctx, hotelID, version, checkIn, checkOut, available)
	}

	return available, nil
}

// storeIfCurrent writes a listing only while the hotel's version still
// matches the one read before the listing was computed.
var storeIfCurrent = `if (redis.call('GET', KEYS[2]) or '0') ~= ARGV[1] then return 0 end
redis.call('HSET', KEYS[1], ARGV[2], ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1`

// availabilityCache keeps one Redis hash per hotel, one field per stay.
// Every room or booking mutation bumps the hotel's version and drops the
// hash, so a listing computed before the mutation is never stored after it.
type availabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func availabilityCacheKey(hotelID int64) string {
	return fmt.Sprintf("availability:%d", hotelID)
}

func availabilityVersionKey(hotelID int64) string {
	return fmt.Sprintf("availability:%d:version", hotelID)
}

func availabilityCacheField(checkIn, checkOut time.Time) string {
	return domain.FormatDate(checkIn) + ":" + domain.FormatDate(checkOut)
}

func (c *availabilityCache) get(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]domain.RoomInfo, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.HGet(ctx, availabilityCacheKey(hotelID), availabilityCacheField(checkIn, checkOut)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithField("hotel_id", hotelID).WithError(err).Warn("availability cache read failed")
		}
		return nil, false
	}

	var rooms []domain.RoomInfo
	if err := json.Unmarshal(raw, &rooms); err != nil {
		c.log.WithField("hotel_id", hotelID).WithError(err).Warn("availability cache entry is corrupt")
		return nil, false
	}

	return rooms, true
}

// version returns the hotel's current version, or ok=false when the cache
// cannot be trusted for a later store.
func (c *availabilityCache) version(ctx context.Context, hotelID int64) (string, bool) {
	if c.client == nil {
		return "", false
	}

	v, err := c.client.Get(ctx, availabilityVersionKey(hotelID)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "0", true
	case err != nil:
		c.log.WithField("hotel_id", hotelID).WithError(err).Warn("availability cache version read failed")
		return "", false
	}
	return v, true
}

func (c *availabilityCache) store(ctx context.Context, hotelID int64, version string, checkIn, checkOut time.Time, rooms []domain.RoomInfo) {
	if c.client == nil {
		return
	}

	payload, err := json.Marshal(rooms)
	if err != nil {
		return
	}

	keys := []string{availabilityCacheKey(hotelID), availabilityVersionKey(hotelID)}
	stored, err := c.client.Eval(ctx, storeIfCurrent, keys,
		version, availabilityCacheField(checkIn, checkOut), string(payload), c.ttl.Milliseconds()).Int()
	if err != nil {
		c.log.WithField("hotel_id", hotelID).WithError(err).Warn("availability cache write failed")
		return
	}

	if stored == 0 {
		c.log.WithField("hotel_id", hotelID).Debug("availability changed during load, listing not cached")
	}
}

// invalidate drops every cached stay for the hotel.
func (c *availabilityCache) invalidate(ctx context.Context, hotelID int64) {
	if c.client == nil {
		return
	}

	fields := logrus.Fields{"hotel_id": hotelID}
	if err := c.client.Incr(ctx, availabilityVersionKey(hotelID)).Err(); err != nil {
		c.log.WithFields(fields).WithError(err).Warn("availability cache version bump failed")
	}
	if err := c.client.Del(ctx, availabilityCacheKey(hotelID)).Err(); err != nil {
		c.log.WithFields(fields).WithError(err).Warn("availability cache invalidation failed")
	}
}
