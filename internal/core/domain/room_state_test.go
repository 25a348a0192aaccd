package domain_test

import (
	"testing"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNextRoomState(t *testing.T) {
	tests := []struct {
		name    string
		current domain.RoomStatus
		event   domain.RoomEvent
		want    domain.RoomStatus
		errMsg  string
	}{
		{"available book", domain.RoomAvailable, domain.EventBook, domain.RoomBooked, ""},
		{"available checkout", domain.RoomAvailable, domain.EventCheckOut, domain.RoomAvailable, "already available"},
		{"available maintain", domain.RoomAvailable, domain.EventMarkMaintenance, domain.RoomUnderMaintenance, ""},
		{"booked book", domain.RoomBooked, domain.EventBook, domain.RoomBooked, "already booked"},
		{"booked checkout", domain.RoomBooked, domain.EventCheckOut, domain.RoomAvailable, ""},
		{"booked maintain", domain.RoomBooked, domain.EventMarkMaintenance, domain.RoomBooked, "cannot put a booked room under maintenance"},
		{"maintenance book", domain.RoomUnderMaintenance, domain.EventBook, domain.RoomUnderMaintenance, "under maintenance"},
		{"maintenance checkout", domain.RoomUnderMaintenance, domain.EventCheckOut, domain.RoomUnderMaintenance, "not occupied"},
		{"maintenance maintain", domain.RoomUnderMaintenance, domain.EventMarkMaintenance, domain.RoomUnderMaintenance, "already under maintenance"},
		{"maintenance complete", domain.RoomUnderMaintenance, domain.EventCompleteMaintenance, domain.RoomAvailable, ""},
		{"available complete", domain.RoomAvailable, domain.EventCompleteMaintenance, domain.RoomAvailable, "not under maintenance"},
		{"empty is available", "", domain.EventBook, domain.RoomBooked, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NextRoomState(tt.current, tt.event)
			assert.Equal(t, tt.want, got)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.True(t, domain.IsConflict(err))
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestNextRoomState_BookTwiceFails(t *testing.T) {
	s, err := domain.NextRoomState(domain.RoomAvailable, domain.EventBook)
	assert.NoError(t, err)

	_, err = domain.NextRoomState(s, domain.EventBook)
	assert.True(t, domain.IsConflict(err))

	s, err = domain.NextRoomState(s, domain.EventCheckOut)
	assert.NoError(t, err)
	s, err = domain.NextRoomState(s, domain.EventBook)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoomBooked, s)
}

func TestNextRoomState_UnknownInputs(t *testing.T) {
	_, err := domain.NextRoomState("CLOSED", domain.EventBook)
	assert.True(t, domain.IsValidation(err))

	_, err = domain.NextRoomState(domain.RoomAvailable, "demolish")
	assert.True(t, domain.IsValidation(err))
}

func TestEventFor(t *testing.T) {
	ev, err := domain.EventFor(domain.RoomBooked, domain.RoomAvailable)
	assert.NoError(t, err)
	assert.Equal(t, domain.EventCheckOut, ev)

	ev, err = domain.EventFor(domain.RoomUnderMaintenance, domain.RoomAvailable)
	assert.NoError(t, err)
	assert.Equal(t, domain.EventCompleteMaintenance, ev)

	ev, err = domain.EventFor(domain.RoomAvailable, domain.RoomBooked)
	assert.NoError(t, err)
	assert.Equal(t, domain.EventBook, ev)

	_, err = domain.EventFor(domain.RoomAvailable, "GONE")
	assert.True(t, domain.IsValidation(err))
}
