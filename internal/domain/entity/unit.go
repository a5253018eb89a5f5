package entity

import (
	"fmt"
	"strings"
)

// Unit is one rung of the calendar unit ladder, ordered from finest to coarsest
type Unit int

const (
	Microsecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

// Exact lengths of the fixed units, in seconds
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerWeek   = 7 * secondsPerDay

	microsecondsPerSecond = 1_000_000
)

var unitTokens = [...]string{
	Microsecond: "μs",
	Second:      "s",
	Minute:      "m",
	Hour:        "h",
	Day:         "d",
	Week:        "w",
	Month:       "M",
	Year:        "y",
}

var unitNames = [...]string{
	Microsecond: "microsecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Week:        "week",
	Month:       "month",
	Year:        "year",
}

// shortTokens are matched case-sensitively: "m" is a minute, "M" a month
var shortTokens = map[string]Unit{
	"μs": Microsecond,
	"µs": Microsecond, // micro sign U+00B5
	"us": Microsecond,
	"S":  Microsecond,
	"s":  Second,
	"m":  Minute,
	"h":  Hour,
	"d":  Day,
	"w":  Week,
	"M":  Month,
	"y":  Year,
	"Y":  Year,
}

// longNames are matched after lower-casing
var longNames = map[string]Unit{
	"microsecond":  Microsecond,
	"microseconds": Microsecond,
	"sec":          Second,
	"secs":         Second,
	"second":       Second,
	"seconds":      Second,
	"min":          Minute,
	"mins":         Minute,
	"minute":       Minute,
	"minutes":      Minute,
	"hr":           Hour,
	"hrs":          Hour,
	"hour":         Hour,
	"hours":        Hour,
	"day":          Day,
	"days":         Day,
	"wk":           Week,
	"wks":          Week,
	"week":         Week,
	"weeks":        Week,
	"mo":           Month,
	"month":        Month,
	"months":       Month,
	"yr":           Year,
	"yrs":          Year,
	"year":         Year,
	"years":        Year,
}

// ParseUnit resolves a unit token or name to its Unit
func ParseUnit(token string) (Unit, bool) {
	token = strings.TrimSpace(token)
	if u, ok := shortTokens[token]; ok {
		return u, true
	}
	if len([]rune(token)) < 2 {
		return 0, false
	}
	u, ok := longNames[strings.ToLower(token)]
	return u, ok
}

// Valid reports whether u is one of the defined units
func (u Unit) Valid() bool {
	return u >= Microsecond && u <= Year
}

// Token returns the canonical token used in the textual form of a duration
func (u Unit) Token() string {
	if !u.Valid() {
		return ""
	}
	return unitTokens[u]
}

// String returns the unit's singular name
func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// IsFixed reports whether every instance of the unit has the same length in seconds
func (u Unit) IsFixed() bool {
	return u.Valid() && u <= Week
}

// Seconds returns the exact length of one unit in seconds.
// Month and year have no single length and report false.
func (u Unit) Seconds() (float64, bool) {
	switch u {
	case Microsecond:
		return 1.0 / microsecondsPerSecond, true
	case Second:
		return 1, true
	case Minute:
		return secondsPerMinute, true
	case Hour:
		return secondsPerHour, true
	case Day:
		return secondsPerDay, true
	case Week:
		return secondsPerWeek, true
	default:
		return 0, false
	}
}

// finer returns the next finer fixed unit and how many of it make one u
func (u Unit) finer() (Unit, int64, bool) {
	switch u {
	case Second:
		return Microsecond, microsecondsPerSecond, true
	case Minute:
		return Second, 60, true
	case Hour:
		return Minute, 60, true
	case Day:
		return Hour, 24, true
	case Week:
		return Day, 7, true
	default:
		return 0, 0, false
	}
}
