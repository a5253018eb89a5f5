package entity

import "iter"

// WalkOptions controls Walk
type WalkOptions struct {
	// Size is the number of units per span; values below 1 mean 1
	Size int
	// Limit caps the number of spans; zero or negative walks without end
	Limit int
	// Backward walks toward earlier spans
	Backward bool
	// StartOpen yields (lo, hi] spans instead of [lo, hi)
	StartOpen bool
}

// IterateOptions controls Iterate
type IterateOptions struct {
	// Size is the number of units per span; values below 1 mean 1
	Size int
	// Backward starts from the far end of the interval
	Backward bool
	// StartOpen yields (lo, hi] spans instead of [lo, hi)
	StartOpen bool
}

func spanSize(size int) int {
	if size < 1 {
		return 1
	}
	return size
}

// Walk lazily yields consecutive spans of opts.Size units, beginning with the
// span that holds start. Each call starts afresh from start.
func (d Duration) Walk(start float64, opts WalkOptions) iter.Seq[Interval] {
	size := spanSize(opts.Size)
	return func(yield func(Interval) bool) {
		first := d.SpanDate(start, opts.StartOpen)
		cursor := first.Start
		if opts.Backward {
			cursor = first.End
		}
		for emitted := 0; opts.Limit <= 0 || emitted < opts.Limit; emitted++ {
			iv, ok := d.advance(&cursor, size, opts.Backward, opts.StartOpen)
			if !ok || !yield(iv) {
				return
			}
		}
	}
}

// Iterate lazily yields consecutive spans of opts.Size units tiling iv. The
// last span may reach past the far edge of iv to a clean boundary.
func (d Duration) Iterate(iv Interval, opts IterateOptions) iter.Seq[Interval] {
	size := spanSize(opts.Size)
	return func(yield func(Interval) bool) {
		cover := d.SpanInterval(iv, opts.StartOpen)
		if opts.Backward {
			for cursor := cover.End; cursor > cover.Start; {
				iv, ok := d.advance(&cursor, size, true, opts.StartOpen)
				if !ok || !yield(iv) {
					return
				}
			}
			return
		}
		for cursor := cover.Start; cursor < cover.End; {
			iv, ok := d.advance(&cursor, size, false, opts.StartOpen)
			if !ok || !yield(iv) {
				return
			}
		}
	}
}

// advance emits the span of size units next to the boundary at cursor and
// moves the cursor to its far end. It reports false once the cursor can no
// longer move, which happens only beyond the range floats resolve.
func (d Duration) advance(cursor *float64, size int, backward, startOpen bool) (Interval, bool) {
	next := d.Step(*cursor, size, backward)
	var iv Interval
	if backward {
		if next >= *cursor {
			return Interval{}, false
		}
		iv = newSpan(next, *cursor, startOpen)
	} else {
		if next <= *cursor {
			return Interval{}, false
		}
		iv = newSpan(*cursor, next, startOpen)
	}
	*cursor = next
	return iv, true
}

// Count returns how many single-unit spans tile iv; it matches the number of
// spans Iterate yields for the same interval with size 1
func (d Duration) Count(iv Interval, startOpen bool) int {
	cover := d.SpanInterval(iv, startOpen)
	if d.alignment() == alignEpoch {
		g := d.grid()
		return int(g.index(cover.End) - g.index(cover.Start))
	}
	n := 0
	for cursor := cover.Start; cursor < cover.End; n++ {
		next := d.Next(cursor)
		if next <= cursor {
			break
		}
		cursor = next
	}
	return n
}

// Pad widens iv by start spans below and end spans above, stepping across
// boundaries rather than adding flat seconds
func (d Duration) Pad(iv Interval, start, end int) Interval {
	lower := d.Step(iv.Start, start, true)
	if start < 0 {
		// a negative pad pulls the lower bound inward
		lower = d.Step(iv.Start, -start, false)
	}
	return NewInterval(
		lower,
		d.Step(iv.End, end, false),
		iv.StartOpen,
		iv.EndOpen,
	)
}
