package entity

import "math"

// bucket returns the span of d holding t, with lo <= t < hi
func (d Duration) bucket(t float64) (float64, float64) {
	switch d.alignment() {
	case alignEpoch:
		g := d.grid()
		q := g.index(t)
		return g.boundary(q), g.boundary(q + 1)
	case alignParentDay:
		origin := floorMultiple(t, secondsPerDay)
		size := d.fixedSeconds()
		if size >= secondsPerDay {
			return origin, origin + secondsPerDay
		}
		lo := origin + floorMultiple(t-origin, size)
		return lo, math.Min(lo+size, origin+secondsPerDay)
	default:
		lo, hi := d.calendarBucket(TimeOf(t))
		return SecondsOf(lo), SecondsOf(hi)
	}
}

// bucketBefore returns the span of d that ends at boundary b
func (d Duration) bucketBefore(b float64) (float64, float64) {
	var probe float64
	switch d.alignment() {
	case alignEpoch:
		g := d.grid()
		q := g.index(b)
		if g.onBoundary(b, q) {
			q--
		}
		return g.boundary(q), b
	case alignParentDay:
		// every parent-day span is at least MinSeconds long
		probe = b - d.MinSeconds()/2
	default:
		// calendar spans are whole days
		probe = b - secondsPerDay/2
	}
	lo, _ := d.bucket(probe)
	return lo, b
}

// span resolves the bucket holding t under the given open-end convention
func (d Duration) span(t float64, startOpen bool) (float64, float64) {
	lo, hi := d.bucket(t)
	if startOpen && t == lo {
		return d.bucketBefore(lo)
	}
	return lo, hi
}

func newSpan(lo, hi float64, startOpen bool) Interval {
	return NewInterval(lo, hi, startOpen, !startOpen)
}

// SpanDate returns the span of d that contains t, anchored to the unit's
// calendar origin. With startOpen the span is (lo, hi], otherwise [lo, hi),
// so a t lying on a boundary falls into the earlier or the later span.
func (d Duration) SpanDate(t float64, startOpen bool) Interval {
	lo, hi := d.span(t, startOpen)
	return newSpan(lo, hi, startOpen)
}

// SpanInterval expands iv outward to the smallest run of whole spans covering it
func (d Duration) SpanInterval(iv Interval, startOpen bool) Interval {
	if iv.IsEmpty() {
		return d.SpanDate(iv.Start, startOpen)
	}

	var lo, hi float64
	if startOpen {
		if iv.StartOpen {
			lo = d.Floor(iv.Start)
		} else {
			lo = d.Previous(iv.Start)
		}
		hi = d.Ceil(iv.End)
	} else {
		lo = d.Floor(iv.Start)
		if iv.EndOpen {
			hi = d.Ceil(iv.End)
		} else {
			hi = d.Next(iv.End)
		}
	}
	return newSpan(lo, hi, startOpen)
}

// Floor returns the last boundary at or before t
func (d Duration) Floor(t float64) float64 {
	lo, _ := d.bucket(t)
	return lo
}

// Ceil returns t when it is a boundary, otherwise the first boundary after it
func (d Duration) Ceil(t float64) float64 {
	lo, hi := d.bucket(t)
	if lo == t {
		return t
	}
	return hi
}

// Next returns the first boundary strictly after t
func (d Duration) Next(t float64) float64 {
	_, hi := d.bucket(t)
	return hi
}

// Previous returns the last boundary strictly before t
func (d Duration) Previous(t float64) float64 {
	lo, _ := d.bucket(t)
	if lo < t {
		return lo
	}
	lo, _ = d.bucketBefore(lo)
	return lo
}

// Step moves t across count boundaries. A zero count leaves t as is; one step
// forward lands on the next boundary, one step backward on the last boundary
// before t. A negative count steps backward.
func (d Duration) Step(t float64, count int, backward bool) float64 {
	if count < 0 {
		count = -count
		backward = true
	}
	if count == 0 {
		return t
	}

	if d.alignment() == alignEpoch {
		g := d.grid()
		q := g.index(t)
		switch {
		case !backward:
			return g.boundary(q + float64(count))
		case g.onBoundary(t, q):
			return g.boundary(q - float64(count))
		default:
			return g.boundary(q - float64(count-1))
		}
	}

	for range count {
		if backward {
			t = d.Previous(t)
		} else {
			t = d.Next(t)
		}
	}
	return t
}
