package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type UserClient struct {
	base *baseClient
}

func NewUserClient(baseURL string, timeout time.Duration) *UserClient {
	return &UserClient{base: newBaseClient("user service", baseURL, timeout)}
}

func (c *UserClient) GetUserContact(ctx context.Context, userID int64) (*domain.UserContact, error) {
	res, err := c.base.send(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil,
		domain.NotFoundf("user %d not found", userID))
	if err != nil {
		return nil, err
	}

	phone := res.Get("phoneNumber")
	if !phone.Exists() {
		phone = res.Get("phone")
	}

	return &domain.UserContact{
		FirstName: res.Get("firstName").String(),
		LastName:  res.Get("lastName").String(),
		Email:     res.Get("email").String(),
		Phone:     phone.String(),
	}, nil
}
