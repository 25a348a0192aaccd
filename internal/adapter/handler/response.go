package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

func statusFor(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsConflict(err):
		return http.StatusConflict
	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, log *logrus.Logger, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).WithError(err).Error("request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func idParam(c *gin.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, domain.Validationf("invalid %s %q", name, c.Param(name))
	}
	return v, nil
}

func queryID(c *gin.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, domain.Validationf("invalid %s %q", name, c.Query(name))
	}
	return v, nil
}

func bookingIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domain.Validationf("invalid booking id %q", c.Param("id"))
	}
	return id, nil
}

// dateQuery parses two YYYY-MM-DD query parameters that must both be set.
func dateQuery(c *gin.Context, fromKey, toKey string) (time.Time, time.Time, error) {
	from, to := c.Query(fromKey), c.Query(toKey)
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, domain.Validationf("%s and %s are required", fromKey, toKey)
	}

	fromDate, err := domain.ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	toDate, err := domain.ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return fromDate, toDate, nil
}
