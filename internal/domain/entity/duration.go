package entity

import (
	"fmt"
	"math"
	"time"

	errs "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
)

// Duration is a calendar-aware length of time: a positive magnitude of one Unit.
// Values are immutable and only built through validated construction, so the
// zero value is never returned by a successful constructor.
type Duration struct {
	magnitude int64
	unit      Unit
}

// maxYears bounds year magnitudes: a span boundary must stay within the
// four-digit years a timestamp can be written in
const maxYears = 10_000

// Of creates a duration of magnitude units
func Of(magnitude int64, unit Unit) (Duration, error) {
	if !unit.Valid() {
		return Duration{}, errs.NewDurationError(fmt.Sprintf("%d %s", magnitude, unit), "unknown unit", errs.ErrInvalidInput)
	}
	if magnitude <= 0 {
		return Duration{}, errs.NewDurationError(fmt.Sprintf("%d%s", magnitude, unit.Token()), "magnitude must be positive", errs.ErrInvalidMagnitude)
	}
	if unit == Year && magnitude > maxYears {
		return Duration{}, errs.NewDurationError(fmt.Sprintf("%d%s", magnitude, unit.Token()), "magnitude out of range", errs.ErrInvalidMagnitude)
	}
	return Duration{magnitude: magnitude, unit: unit}, nil
}

// Magnitude returns how many units the duration spans
func (d Duration) Magnitude() int64 {
	return d.magnitude
}

// Unit returns the duration's unit
func (d Duration) Unit() Unit {
	return d.unit
}

// IsZero reports whether d is the invalid zero value
func (d Duration) IsZero() bool {
	return d.magnitude <= 0
}

// String returns the canonical form, e.g. "1d", "23h", "2M", "123μs"
func (d Duration) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d%s", d.magnitude, d.unit.Token())
}

// Equal reports whether both magnitude and unit match. 60s and 1m are not equal.
func (d Duration) Equal(other Duration) bool {
	return d == other
}

// WithDegree returns a duration of the same unit with magnitude n
func (d Duration) WithDegree(n int64) (Duration, error) {
	return Of(n, d.unit)
}

// Parent returns the next coarser duration whose boundaries this one aligns to.
// A year has no parent.
func (d Duration) Parent() (Duration, bool) {
	switch d.unit {
	case Microsecond:
		return Duration{magnitude: 1, unit: Second}, true
	case Second, Minute, Hour:
		return Duration{magnitude: 1, unit: Day}, true
	case Day, Week, Month:
		return Duration{magnitude: 1, unit: Year}, true
	default:
		return Duration{}, false
	}
}

// IsCalendarRequired reports whether anchoring a span needs calendar boundaries
// rather than plain elapsed-seconds arithmetic
func (d Duration) IsCalendarRequired() bool {
	switch d.unit {
	case Day:
		return d.magnitude >= 2
	case Week, Month, Year:
		return true
	default:
		return false
	}
}

// IsUniform reports whether every instance has the same elapsed length and
// tiles its enclosing calendar period without remainder
func (d Duration) IsUniform() bool {
	switch d.unit {
	case Microsecond, Second:
		return true
	case Minute:
		return (secondsPerDay/secondsPerMinute)%d.magnitude == 0
	case Hour:
		return (secondsPerDay/secondsPerHour)%d.magnitude == 0
	case Day, Week:
		return d.magnitude == 1
	default:
		return false
	}
}

// MinSeconds returns the elapsed length of the shortest span this duration produces
func (d Duration) MinSeconds() float64 {
	lo, _ := d.secondsRange()
	return lo
}

// MaxSeconds returns the elapsed length of the longest span this duration produces
func (d Duration) MaxSeconds() float64 {
	_, hi := d.secondsRange()
	return hi
}

// HasExactSeconds reports whether every span of d has the same elapsed length
func (d Duration) HasExactSeconds() bool {
	lo, hi := d.secondsRange()
	return lo == hi
}

// calendarMagnitude is the magnitude used for date arithmetic. Spans never
// cross the year (or ISO year) they start in, so day, week and month counts
// beyond one such year all behave like a whole year.
func (d Duration) calendarMagnitude() int {
	limit := int64(math.MaxInt32)
	switch d.unit {
	case Day:
		limit = 366
	case Week:
		limit = 53
	case Month:
		limit = 12
	}
	return int(min(d.magnitude, limit))
}

// fixedSeconds is magnitude times the unit length; zero for month and year
func (d Duration) fixedSeconds() float64 {
	s, ok := d.unit.Seconds()
	if !ok {
		return 0
	}
	if d.unit == Microsecond {
		return float64(d.magnitude) / microsecondsPerSecond
	}
	return float64(d.magnitude) * s
}

func (d Duration) secondsRange() (float64, float64) {
	switch d.alignment() {
	case alignEpoch:
		s := d.fixedSeconds()
		return s, s
	case alignParentDay:
		return tileRange(d.fixedSeconds(), secondsPerDay)
	}

	n := float64(d.magnitude)
	switch d.unit {
	case Day:
		lo1, hi1 := tileRange(n, 365)
		lo2, hi2 := tileRange(n, 366)
		return math.Min(lo1, lo2) * secondsPerDay, math.Max(hi1, hi2) * secondsPerDay
	case Week:
		lo1, hi1 := tileRange(n, 52)
		lo2, hi2 := tileRange(n, 53)
		return math.Min(lo1, lo2) * secondsPerWeek, math.Max(hi1, hi2) * secondsPerWeek
	case Month:
		return monthSpanRange(d.calendarMagnitude())
	default:
		return yearSpanRange(d.calendarMagnitude())
	}
}

// tileRange gives the shortest and longest pieces when period is cut into
// consecutive size-long pieces, the last one clamped
func tileRange(size, period float64) (float64, float64) {
	if size >= period {
		return period, period
	}
	lo := size
	if r := math.Mod(period, size); r != 0 {
		lo = r
	}
	return lo, size
}

// monthSpanRange measures every n-month bucket of a common and a leap year
func monthSpanRange(n int) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, year := range []int{2001, 2004} {
		start := yearStart(year)
		end := yearStart(year + 1)
		for k := 0; k*n < 12; k++ {
			from := start.AddDate(0, k*n, 0)
			to := start.AddDate(0, (k+1)*n, 0)
			if to.After(end) {
				to = end
			}
			length := to.Sub(from).Seconds()
			lo = math.Min(lo, length)
			hi = math.Max(hi, length)
		}
	}
	return lo, hi
}

// yearSpanRange measures n-year buckets over one full 400-year Gregorian cycle
func yearSpanRange(n int) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	buckets := 400 / gcd(n, 400)
	for k := 0; k < buckets; k++ {
		from := yearStart(k * n)
		to := yearStart((k + 1) * n)
		length := float64(to.Unix() - from.Unix())
		lo = math.Min(lo, length)
		hi = math.Max(hi, length)
	}
	return lo, hi
}

func yearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
