package entity

import (
	"fmt"
	"math"
)

// Interval is a one-dimensional range over seconds since the epoch; either
// end may be open
type Interval struct {
	Start     float64
	End       float64
	StartOpen bool
	EndOpen   bool
}

// NewInterval creates an interval with explicit end flags
func NewInterval(start, end float64, startOpen, endOpen bool) Interval {
	return Interval{Start: start, End: end, StartOpen: startOpen, EndOpen: endOpen}
}

// OpenInterval creates (start, end)
func OpenInterval(start, end float64) Interval {
	return NewInterval(start, end, true, true)
}

// ClosedInterval creates [start, end]
func ClosedInterval(start, end float64) Interval {
	return NewInterval(start, end, false, false)
}

// Equal reports whether both intervals have the same ends and flags
func (i Interval) Equal(other Interval) bool {
	return i == other
}

// IsEmpty reports whether no point lies in the interval
func (i Interval) IsEmpty() bool {
	if i.Start > i.End {
		return true
	}
	return i.Start == i.End && (i.StartOpen || i.EndOpen)
}

// Contains reports whether t lies in the interval
func (i Interval) Contains(t float64) bool {
	if t < i.Start || t > i.End {
		return false
	}
	if t == i.Start && i.StartOpen {
		return false
	}
	if t == i.End && i.EndOpen {
		return false
	}
	return true
}

// Length returns End - Start, or zero for an empty interval
func (i Interval) Length() float64 {
	if i.IsEmpty() {
		return 0
	}
	return i.End - i.Start
}

// Intersect returns the overlap of both intervals, possibly empty
func (i Interval) Intersect(other Interval) Interval {
	out := i
	switch {
	case other.Start > out.Start:
		out.Start, out.StartOpen = other.Start, other.StartOpen
	case other.Start == out.Start:
		out.StartOpen = out.StartOpen || other.StartOpen
	}
	switch {
	case other.End < out.End:
		out.End, out.EndOpen = other.End, other.EndOpen
	case other.End == out.End:
		out.EndOpen = out.EndOpen || other.EndOpen
	}
	if out.Start > out.End {
		out.End = out.Start
		out.StartOpen, out.EndOpen = true, true
	}
	return out
}

// String formats the interval in bracket notation, e.g. [0, 3600)
func (i Interval) String() string {
	left, right := "[", "]"
	if i.StartOpen {
		left = "("
	}
	if i.EndOpen {
		right = ")"
	}
	return fmt.Sprintf("%s%s, %s%s", left, formatSeconds(i.Start), formatSeconds(i.End), right)
}

func formatSeconds(t float64) string {
	if t == math.Trunc(t) && math.Abs(t) < 1e15 {
		return fmt.Sprintf("%d", int64(t))
	}
	return fmt.Sprintf("%g", t)
}
