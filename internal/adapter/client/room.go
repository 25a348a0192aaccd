package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// RoomClient talks to a remote room service exposing the same
// /hotels/{hotelId}/rooms routes as this API.
type RoomClient struct {
	base *baseClient
}

func NewRoomClient(baseURL string, timeout time.Duration) *RoomClient {
	return &RoomClient{base: newBaseClient("room service", baseURL, timeout)}
}

func (c *RoomClient) GetRoom(ctx context.Context, hotelID, roomID int64) (*domain.RoomInfo, error) {
	res, err := c.base.send(ctx, http.MethodGet, fmt.Sprintf("/hotels/%d/rooms/%d", hotelID, roomID), nil,
		domain.NotFoundf("room %d not found in hotel %d", roomID, hotelID))
	if err != nil {
		return nil, err
	}

	if !res.IsObject() {
		return nil, domain.Unavailable("room service", fmt.Errorf("unexpected room payload %q", res.Raw))
	}

	info := roomFromJSON(res, hotelID)
	if info.RoomID == 0 {
		info.RoomID = roomID
	}

	return &info, nil
}

func (c *RoomClient) GetRoomsForHotel(ctx context.Context, hotelID int64) ([]domain.RoomInfo, error) {
	res, err := c.base.send(ctx, http.MethodGet, fmt.Sprintf("/hotels/%d/rooms", hotelID), nil, nil)
	if err != nil {
		return nil, err
	}

	if !res.IsArray() {
		return nil, domain.Unavailable("room service", fmt.Errorf("unexpected rooms payload %q", res.Raw))
	}

	items := res.Array()
	rooms := make([]domain.RoomInfo, 0, len(items))
	for _, item := range items {
		rooms = append(rooms, roomFromJSON(item, hotelID))
	}

	return rooms, nil
}

func (c *RoomClient) SetRoomStatus(ctx context.Context, hotelID, roomID int64, status domain.RoomStatus) error {
	_, err := c.base.send(ctx, http.MethodPut, fmt.Sprintf("/hotels/%d/rooms/%d/status", hotelID, roomID),
		map[string]string{"status": string(status)},
		domain.NotFoundf("room %d not found in hotel %d", roomID, hotelID))
	return err
}

func roomFromJSON(r gjson.Result, hotelID int64) domain.RoomInfo {
	roomType := r.Get("roomType")
	if !roomType.Exists() {
		roomType = r.Get("room_type")
	}

	info := domain.RoomInfo{
		HotelID:       hotelID,
		RoomID:        r.Get("roomId").Int(),
		RoomType:      roomType.String(),
		PricePerNight: r.Get("pricePerNight").Float(),
		Status:        domain.RoomStatus(r.Get("status").String()),
	}
	if h := r.Get("hotelId"); h.Exists() {
		info.HotelID = h.Int()
	}
	return info
}
