package entity

import (
	"math"
	"time"

	"github.com/jinzhu/now"
)

// calendar fixes the rules every boundary computation uses: UTC, ISO weeks
// starting on Monday
var calendar = &now.Config{
	WeekStartDay: time.Monday,
	TimeLocation: time.UTC,
	TimeFormats:  now.TimeFormats,
}

// alignment selects how a duration's boundaries are anchored
type alignment int

const (
	// alignEpoch: multiples of the exact length counted from the Unix epoch
	alignEpoch alignment = iota
	// alignParentDay: multiples counted from the start of the UTC day, last one clamped
	alignParentDay
	// alignCalendar: whole calendar units counted from the year (or ISO year) start
	alignCalendar
)

func (d Duration) alignment() alignment {
	switch {
	case d.IsCalendarRequired():
		return alignCalendar
	case d.IsUniform():
		return alignEpoch
	default:
		return alignParentDay
	}
}

// TimeOf converts seconds since the epoch to a UTC time
func TimeOf(t float64) time.Time {
	sec := math.Floor(t)
	nsec := math.Round((t - sec) * 1e9)
	return time.Unix(int64(sec), int64(nsec)).UTC()
}

// SecondsOf converts a time to seconds since the epoch
func SecondsOf(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// floorMultiple returns the greatest multiple of size not above t
func floorMultiple(t, size float64) float64 {
	q := math.Floor(t / size)
	if (q+1)*size <= t {
		q++
	} else if q*size > t {
		q--
	}
	return q * size
}

// epochGrid locates the boundaries of an epoch-aligned duration. Positions are
// counted in whole microseconds, so neighbouring boundaries stay distinct
// at real timestamps where a float second has no room for 1e-6 steps.
type epochGrid struct {
	size float64 // span length in microseconds, integer valued
}

func (d Duration) grid() epochGrid {
	if d.unit == Microsecond {
		return epochGrid{size: float64(d.magnitude)}
	}
	return epochGrid{size: math.Round(d.fixedSeconds() * microsecondsPerSecond)}
}

// micros resolves t to the microsecond
func micros(t float64) float64 {
	return math.Round(t * microsecondsPerSecond)
}

// index returns the number of the span holding t
func (g epochGrid) index(t float64) float64 {
	u := micros(t)
	q := math.Floor(u / g.size)
	if (q+1)*g.size <= u {
		q++
	} else if q*g.size > u {
		q--
	}
	return q
}

// boundary returns the start of span q in seconds
func (g epochGrid) boundary(q float64) float64 {
	return q * g.size / microsecondsPerSecond
}

// onBoundary reports whether t is the start of span q
func (g epochGrid) onBoundary(t, q float64) bool {
	return q*g.size == micros(t)
}

// isoYearBounds returns the Monday starting the ISO year that contains t and
// the Monday starting the following one
func isoYearBounds(t time.Time) (time.Time, time.Time) {
	year, _ := t.ISOWeek()
	return isoYearStart(year), isoYearStart(year + 1)
}

// isoYearStart is the Monday of the week holding January 4th
func isoYearStart(year int) time.Time {
	return calendar.With(time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)).BeginningOfWeek()
}

// calendarBucket returns the calendar-aligned span of d holding tm, start inclusive
func (d Duration) calendarBucket(tm time.Time) (time.Time, time.Time) {
	n := d.calendarMagnitude()
	switch d.unit {
	case Year:
		k := floorDiv(tm.Year(), n)
		return yearStart(k * n), yearStart((k + 1) * n)
	case Month:
		start := calendar.With(tm).BeginningOfYear()
		k := (int(tm.Month()) - 1) / n
		return clampTo(start.AddDate(0, k*n, 0), start.AddDate(0, (k+1)*n, 0), start.AddDate(1, 0, 0))
	case Week:
		start, end := isoYearBounds(tm)
		k := int(tm.Sub(start)/(7*24*time.Hour)) / n
		return clampTo(start.AddDate(0, 0, 7*k*n), start.AddDate(0, 0, 7*(k+1)*n), end)
	default:
		start := calendar.With(tm).BeginningOfYear()
		k := int(tm.Sub(start)/(24*time.Hour)) / n
		return clampTo(start.AddDate(0, 0, k*n), start.AddDate(0, 0, (k+1)*n), start.AddDate(1, 0, 0))
	}
}

func clampTo(lo, hi, limit time.Time) (time.Time, time.Time) {
	if hi.After(limit) {
		hi = limit
	}
	return lo, hi
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
