package entity

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
)

// Input is one of the shapes a Duration can be built from: Seconds, Text,
// Pair, Mapping, Elapsed, or another Duration.
type Input interface {
	toDuration() (Duration, error)
}

// Seconds is a plain number of seconds; fractions become microseconds
type Seconds float64

// Text is a canonical or loosely formatted duration such as "1m", "2 months" or "1Y"
type Text string

// Pair is a magnitude with a unit token, e.g. Pair{2, "min"}
type Pair struct {
	Magnitude float64
	Unit      string
}

// Mapping holds exactly one unit name mapped to its magnitude, e.g. Mapping{"min": 4}
type Mapping map[string]float64

// Elapsed is an elapsed time value, split into whole seconds plus leftover microseconds
type Elapsed time.Duration

var (
	textPattern     = regexp.MustCompile(`^([+-]?(?:\d+(?:\.\d*)?|\.\d+))\s*(\pL+)$`)
	unitOnlyPattern = regexp.MustCompile(`^\pL+$`)
	maxMagnitude    = decimal.NewFromInt(math.MaxInt64)
)

// New builds a validated Duration from any supported input shape
func New(in Input) (Duration, error) {
	if in == nil {
		return Duration{}, errs.NewDurationError("", "no input", errs.ErrInvalidMagnitude)
	}
	return in.toDuration()
}

// Parse builds a Duration from its textual form
func Parse(s string) (Duration, error) {
	return New(Text(s))
}

// MustParse is like Parse but panics on invalid input. Meant for constants and tests.
func MustParse(s string) Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromSeconds builds a Duration from a number of seconds
func FromSeconds(seconds float64) (Duration, error) {
	return New(Seconds(seconds))
}

// FromElapsed builds a Duration from a time.Duration
func FromElapsed(elapsed time.Duration) (Duration, error) {
	return New(Elapsed(elapsed))
}

func (s Seconds) toDuration() (Duration, error) {
	v := float64(s)
	input := fmt.Sprintf("%g", v)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Duration{}, errs.NewDurationError(input, "not a finite number", errs.ErrInvalidInput)
	}
	return fromSecondsDecimal(input, decimal.NewFromFloat(v))
}

func (t Text) toDuration() (Duration, error) {
	input := string(t)
	s := strings.TrimSpace(input)
	if s == "" {
		return Duration{}, errs.NewDurationError(input, "empty input", errs.ErrInvalidInput)
	}
	if unitOnlyPattern.MatchString(s) {
		if _, ok := ParseUnit(s); ok {
			return Duration{}, errs.NewDurationError(input, "missing magnitude", errs.ErrInvalidMagnitude)
		}
		return Duration{}, errs.NewDurationError(input, fmt.Sprintf("unknown unit %q", s), errs.ErrInvalidInput)
	}

	m := textPattern.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, errs.NewDurationError(input, "expected a single <magnitude><unit> token", errs.ErrInvalidInput)
	}
	magnitude, err := decimal.NewFromString(m[1])
	if err != nil {
		return Duration{}, errs.NewDurationError(input, "malformed magnitude", errs.ErrInvalidInput)
	}
	unit, ok := ParseUnit(m[2])
	if !ok {
		return Duration{}, errs.NewDurationError(input, fmt.Sprintf("unknown unit %q", m[2]), errs.ErrInvalidInput)
	}
	return normalize(input, magnitude, unit)
}

func (p Pair) toDuration() (Duration, error) {
	input := fmt.Sprintf("%g %s", p.Magnitude, p.Unit)
	if math.IsNaN(p.Magnitude) || math.IsInf(p.Magnitude, 0) {
		return Duration{}, errs.NewDurationError(input, "not a finite number", errs.ErrInvalidInput)
	}
	unit, ok := ParseUnit(p.Unit)
	if !ok {
		return Duration{}, errs.NewDurationError(input, fmt.Sprintf("unknown unit %q", p.Unit), errs.ErrInvalidInput)
	}
	return normalize(input, decimal.NewFromFloat(p.Magnitude), unit)
}

func (m Mapping) toDuration() (Duration, error) {
	input := fmt.Sprintf("%v", map[string]float64(m))
	if len(m) != 1 {
		return Duration{}, errs.NewDurationError(input, "expected exactly one unit", errs.ErrInvalidInput)
	}
	for name, magnitude := range m {
		return Pair{Magnitude: magnitude, Unit: name}.toDuration()
	}
	return Duration{}, errs.NewDurationError(input, "expected exactly one unit", errs.ErrInvalidInput)
}

func (e Elapsed) toDuration() (Duration, error) {
	elapsed := time.Duration(e)
	input := elapsed.String()
	if elapsed <= 0 {
		return Duration{}, errs.NewDurationError(input, "magnitude must be positive", errs.ErrInvalidMagnitude)
	}
	if elapsed%time.Microsecond != 0 {
		return Duration{}, errs.NewDurationError(input, "finer than one microsecond", errs.ErrInvalidInput)
	}
	micros := int64(elapsed / time.Microsecond)
	return fromSecondsDecimal(input, decimal.New(micros, -6))
}

func (d Duration) toDuration() (Duration, error) {
	return Of(d.magnitude, d.unit)
}

// fromSecondsDecimal picks the coarsest fixed unit up to a day that represents
// secs exactly; fractional seconds fall back to microseconds
func fromSecondsDecimal(input string, secs decimal.Decimal) (Duration, error) {
	if !secs.IsPositive() {
		return Duration{}, errs.NewDurationError(input, "magnitude must be positive", errs.ErrInvalidMagnitude)
	}
	if !secs.IsInteger() {
		micros := secs.Shift(6)
		if !micros.IsInteger() {
			return Duration{}, errs.NewDurationError(input, "finer than one microsecond", errs.ErrInvalidInput)
		}
		return checkedOf(input, micros, Microsecond)
	}

	for _, u := range []Unit{Day, Hour, Minute} {
		size, _ := u.Seconds()
		factor := decimal.NewFromFloat(size)
		if secs.Mod(factor).IsZero() {
			return checkedOf(input, secs.Div(factor), u)
		}
	}
	return checkedOf(input, secs, Second)
}

// normalize steps a fractional magnitude down the ladder until it is whole
func normalize(input string, magnitude decimal.Decimal, unit Unit) (Duration, error) {
	if !magnitude.IsPositive() {
		return Duration{}, errs.NewDurationError(input, "magnitude must be positive", errs.ErrInvalidMagnitude)
	}
	for !magnitude.IsInteger() {
		finer, factor, ok := unit.finer()
		if !ok {
			return Duration{}, errs.NewDurationError(input, fmt.Sprintf("fractional %s magnitude", unit), errs.ErrInvalidMagnitude)
		}
		magnitude = magnitude.Mul(decimal.NewFromInt(factor))
		unit = finer
	}
	return checkedOf(input, magnitude, unit)
}

func checkedOf(input string, magnitude decimal.Decimal, unit Unit) (Duration, error) {
	if magnitude.GreaterThan(maxMagnitude) {
		return Duration{}, errs.NewDurationError(input, "magnitude out of range", errs.ErrInvalidMagnitude)
	}
	return Of(magnitude.IntPart(), unit)
}
