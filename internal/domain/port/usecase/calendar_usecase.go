package usecase

import (
	"context"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
)

// AlignMode selects which boundary Align resolves
type AlignMode string

const (
	AlignFloor    AlignMode = "floor"
	AlignCeil     AlignMode = "ceil"
	AlignNext     AlignMode = "next"
	AlignPrevious AlignMode = "previous"
)

// ArithmeticOp names a numeric operation between a duration and a plain number
type ArithmeticOp string

const (
	OpSeconds    ArithmeticOp = "seconds"
	OpAdd        ArithmeticOp = "add"
	OpSub        ArithmeticOp = "sub"
	OpMul        ArithmeticOp = "mul"
	OpDiv        ArithmeticOp = "div"
	OpDivideInto ArithmeticOp = "divide-into"
	OpNeg        ArithmeticOp = "neg"
	OpAbs        ArithmeticOp = "abs"
)

// DurationInfo describes a resolved duration and its classification
type DurationInfo struct {
	Duration           entity.Duration
	Preset             string // Preset name the duration was resolved from, if any
	Parent             string // Empty for year-based durations
	IsUniform          bool
	IsCalendarRequired bool
	HasExactSeconds    bool
	MinSeconds         float64
	MaxSeconds         float64
	Seconds            float64
}

// CalendarUseCase runs span and iteration operations for a duration reference.
// A reference is either a duration text such as "20w" or a preset name.
type CalendarUseCase interface {
	// Describe resolves ref and reports its classification
	Describe(ctx context.Context, ref string) (*DurationInfo, error)

	// Span returns the span holding the timestamp at; an empty at means now
	Span(ctx context.Context, ref, at string, startOpen bool) (entity.Interval, error)

	// SpanInterval expands iv to whole spans
	SpanInterval(ctx context.Context, ref string, iv entity.Interval, startOpen bool) (entity.Interval, error)

	// Align returns the floor, ceil, next or previous boundary around at
	Align(ctx context.Context, ref, at string, mode AlignMode) (float64, error)

	// Step moves at across count boundaries
	Step(ctx context.Context, ref, at string, count int, backward bool) (float64, error)

	// Walk collects consecutive spans from at. The limit is capped by configuration.
	Walk(ctx context.Context, ref, at string, opts entity.WalkOptions) ([]entity.Interval, error)

	// Iterate collects the spans tiling iv
	//
	// Possible errors:
	// - ErrInvalidRequest: If iv holds more spans than configuration allows
	Iterate(ctx context.Context, ref string, iv entity.Interval, opts entity.IterateOptions) ([]entity.Interval, error)

	// Count returns how many spans tile iv
	Count(ctx context.Context, ref string, iv entity.Interval, startOpen bool) (int, error)

	// Pad widens iv by whole spans on each side
	Pad(ctx context.Context, ref string, iv entity.Interval, start, end int) (entity.Interval, error)

	// Evaluate applies op to the duration's seconds and operand
	//
	// Possible errors:
	// - ErrIncompatibleOperation: If op is div and the duration has no exact length
	// - ErrInvalidRequest: If op is unknown
	Evaluate(ctx context.Context, ref string, op ArithmeticOp, operand float64) (float64, error)
}
