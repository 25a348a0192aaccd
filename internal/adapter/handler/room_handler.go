package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/services"
)

type RoomHandler struct {
	svc *services.RoomService
	log *logrus.Logger
}

func NewRoomHandler(svc *services.RoomService, logger *logrus.Logger) *RoomHandler {
	return &RoomHandler{svc: svc, log: logger}
}

func (h *RoomHandler) Register(r gin.IRouter) {
	r.POST("/rooms", h.CreateRoom)
	r.GET("/hotels/:hotelId/rooms", h.ListRooms)
	r.GET("/hotels/:hotelId/rooms/:roomId", h.GetRoom)
	r.PUT("/hotels/:hotelId/rooms/:roomId/status", h.SetStatus)

	r.POST("/hotels/:hotelId/rooms/:roomId/book", h.transition(h.svc.Book))
	r.POST("/hotels/:hotelId/rooms/:roomId/checkout", h.transition(h.svc.CheckOut))
	r.POST("/hotels/:hotelId/rooms/:roomId/maintenance", h.transition(h.svc.MarkUnderMaintenance))
	r.POST("/hotels/:hotelId/rooms/:roomId/restore", h.transition(h.svc.CompleteMaintenance))
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req services.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	room, err := h.svc.CreateRoom(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	hotelID, err := idParam(c, "hotelId")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	rooms, err := h.svc.ListRooms(c.Request.Context(), hotelID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	hotelID, roomID, err := roomKey(c)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	room, err := h.svc.GetRoom(c.Request.Context(), hotelID, roomID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) SetStatus(c *gin.Context) {
	hotelID, roomID, err := roomKey(c)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	room, err := h.svc.SetStatus(c.Request.Context(), hotelID, roomID, domain.RoomStatus(req.Status))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

type roomTransition func(ctx context.Context, hotelID, roomID int64) (*domain.Room, error)

func (h *RoomHandler) transition(fn roomTransition) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, roomID, err := roomKey(c)
		if err != nil {
			writeError(c, h.log, err)
			return
		}

		room, err := fn(c.Request.Context(), hotelID, roomID)
		if err != nil {
			writeError(c, h.log, err)
			return
		}

		c.JSON(http.StatusOK, room)
	}
}

func roomKey(c *gin.Context) (int64, int64, error) {
	hotelID, err := idParam(c, "hotelId")
	if err != nil {
		return 0, 0, err
	}
	roomID, err := idParam(c, "roomId")
	if err != nil {
		return 0, 0, err
	}
	return hotelID, roomID, nil
}
