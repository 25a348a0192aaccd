package domain

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Nights counts calendar nights between two dates.
func Nights(checkIn, checkOut time.Time) int {
	in := DateOnly(checkIn)
	out := DateOnly(checkOut)
	return int(out.Sub(in).Hours() / 24)
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, Validationf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ValidateStay checks that both dates are set and check-out is strictly after check-in.
func ValidateStay(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Validationf("check-in and check-out dates are required")
	}
	if !DateOnly(checkOut).After(DateOnly(checkIn)) {
		return Validationf("check-out date must be after check-in date")
	}
	return nil
}
