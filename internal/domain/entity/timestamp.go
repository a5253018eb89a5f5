package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
)

// epoch is the reference for partial inputs such as "13:12"
var epoch = time.Unix(0, 0).UTC()

// Timestamp resolves a human readable date/time, or a bare number of seconds,
// to seconds since the epoch. Dates are read as UTC.
func Timestamp(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidTimestamp)
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	t, err := calendar.With(epoch).Parse(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidTimestamp, s)
	}
	return SecondsOf(t), nil
}

// MustTimestamp is like Timestamp but panics on invalid input. Meant for tests.
func MustTimestamp(s string) float64 {
	t, err := Timestamp(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Timespan builds the interval between two timestamps; exactly one end is open
func Timespan(start, end string, startOpen bool) (Interval, error) {
	lo, err := Timestamp(start)
	if err != nil {
		return Interval{}, err
	}
	hi, err := Timestamp(end)
	if err != nil {
		return Interval{}, err
	}
	return newSpan(lo, hi, startOpen), nil
}
