package client

import (
	"context"
	"net/http"
	"time"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// NotificationClient delivers in-app notifications to the notification
// service. It is used as a notify.Sink.
type NotificationClient struct {
	base *baseClient
}

func NewNotificationClient(baseURL string, timeout time.Duration) *NotificationClient {
	return &NotificationClient{base: newBaseClient("notification service", baseURL, timeout)}
}

type notificationRequest struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (c *NotificationClient) Name() string { return "notification-service" }

func (c *NotificationClient) Send(ctx context.Context, n domain.Notification) error {
	_, err := c.base.send(ctx, http.MethodPost, "/notifications", notificationRequest{
		UserID:  n.UserID,
		Message: n.Message,
		Type:    n.Type,
	}, nil)
	return err
}
