package services

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages maps struct fields to the message returned when they fail.
var fieldMessages = map[string]string{
	"HotelID":       "hotel id is required",
	"UserID":        "user id is required",
	"RoomID":        "room id is required",
	"RoomIDs":       "at least one room must be selected",
	"CheckInDate":   "check-in and check-out dates are required",
	"CheckOutDate":  "check-in and check-out dates are required",
	"RoomType":      "room type must be one of SINGLE, DOUBLE, SUITE, DELUXE",
	"PricePerNight": "price per night must be positive",
	"MaxOccupancy":  "max occupancy must be positive",
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.Validationf("invalid request: %v", err)
	}

	fe := verrs[0]
	field := fe.StructField()
	if strings.HasPrefix(field, "RoomIDs[") {
		return domain.Validationf("room id list contains invalid values")
	}
	if msg, ok := fieldMessages[field]; ok {
		return domain.Validationf("%s", msg)
	}

	return domain.Validationf("invalid %s", strings.ToLower(fe.Field()))
}
