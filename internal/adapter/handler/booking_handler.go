package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/services"
)

type BookingHandler struct {
	svc *services.BookingService
	log *logrus.Logger
}

func NewBookingHandler(svc *services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: logger}
}

func (h *BookingHandler) Register(r gin.IRouter) {
	r.POST("/bookings", h.CreateBooking)
	r.GET("/bookings", h.ListBookings)
	r.GET("/bookings/:id", h.GetBooking)
	r.DELETE("/bookings/:id", h.CancelBooking)
	r.PATCH("/bookings/:id/status", h.UpdateStatus)

	r.GET("/hotels/:hotelId/bookings", h.BookingsByHotel)
	r.GET("/hotels/:hotelId/availability", h.RoomAvailability)
	r.GET("/hotels/:hotelId/available-rooms", h.AvailableRooms)
	r.GET("/users/:userId/bookings", h.BookingsByUser)
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	resp, err := h.svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListBookings returns every booking, or the live bookings touching
// [start, end] when both query parameters are given. An end that is not
// after start yields an empty list.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	if c.Query("start") == "" && c.Query("end") == "" {
		bookings, err := h.svc.ListAllBookings(c.Request.Context())
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	start, end, err := dateQuery(c, "start", "end")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	views, err := h.svc.GetBookingsByDateRange(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := bookingIDParam(c)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	b, err := h.svc.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := bookingIDParam(c)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	b, err := h.svc.CancelBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := bookingIDParam(c)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	b, err := h.svc.UpdateBookingStatus(c.Request.Context(), id, domain.BookingStatus(req.Status))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) BookingsByHotel(c *gin.Context) {
	hotelID, err := idParam(c, "hotelId")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	views, err := h.svc.GetBookingsByHotel(c.Request.Context(), hotelID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *BookingHandler) BookingsByUser(c *gin.Context) {
	userID, err := idParam(c, "userId")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	views, err := h.svc.GetBookingsByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

type availabilityResponse struct {
	HotelID   int64  `json:"hotelId"`
	RoomID    int64  `json:"roomId"`
	CheckIn   string `json:"checkInDate"`
	CheckOut  string `json:"checkOutDate"`
	Available bool   `json:"available"`
}

func (h *BookingHandler) RoomAvailability(c *gin.Context) {
	hotelID, err := idParam(c, "hotelId")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	roomID, err := queryID(c, "roomId")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	checkIn, checkOut, err := dateQuery(c, "checkIn", "checkOut")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	ok, err := h.svc.IsRoomAvailable(c.Request.Context(), hotelID, roomID, checkIn, checkOut)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, availabilityResponse{
		HotelID:   hotelID,
		RoomID:    roomID,
		CheckIn:   domain.FormatDate(checkIn),
		CheckOut:  domain.FormatDate(checkOut),
		Available: ok,
	})
}

func (h *BookingHandler) AvailableRooms(c *gin.Context) {
	hotelID, err := idParam(c, "hotelId")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	checkIn, checkOut, err := dateQuery(c, "checkIn", "checkOut")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	rooms, err := h.svc.GetAvailableRoomsForHotel(c.Request.Context(), hotelID, checkIn, checkOut)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}
