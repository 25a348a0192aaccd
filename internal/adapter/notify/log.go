package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// LogSink writes notifications to the application log. It is the only sink
// when no notification service or broker is configured.
type LogSink struct {
	log *logrus.Logger
}

func NewLogSink(logger *logrus.Logger) *LogSink {
	return &LogSink{log: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Send(_ context.Context, n domain.Notification) error {
	s.log.WithFields(logrus.Fields{
		"event":       n.Kind,
		"user_id":     n.UserID,
		"type":        n.Type,
		"booking_ids": n.BookingIDs,
	}).Info(n.Message)
	return nil
}
