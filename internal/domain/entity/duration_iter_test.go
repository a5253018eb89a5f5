package entity

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	d := MustParse("1h")

	testCases := []struct {
		name     string
		opts     WalkOptions
		expected []Interval
	}{
		{
			name: "Forward",
			opts: WalkOptions{Limit: 2},
			expected: []Interval{
				spanOf(2*hour, 3*hour, false),
				spanOf(3*hour, 4*hour, false),
			},
		},
		{
			name: "Forward with open start",
			opts: WalkOptions{Limit: 2, StartOpen: true},
			expected: []Interval{
				spanOf(1*hour, 2*hour, true),
				spanOf(2*hour, 3*hour, true),
			},
		},
		{
			name: "Backward",
			opts: WalkOptions{Limit: 2, Backward: true},
			expected: []Interval{
				spanOf(2*hour, 3*hour, false),
				spanOf(1*hour, 2*hour, false),
			},
		},
		{
			name: "Backward with open start",
			opts: WalkOptions{Limit: 2, Backward: true, StartOpen: true},
			expected: []Interval{
				spanOf(1*hour, 2*hour, true),
				spanOf(0, 1*hour, true),
			},
		},
		{
			name: "Sized forward",
			opts: WalkOptions{Size: 2, Limit: 2},
			expected: []Interval{
				spanOf(2*hour, 4*hour, false),
				spanOf(4*hour, 6*hour, false),
			},
		},
		{
			name: "Sized forward with open start",
			opts: WalkOptions{Size: 2, Limit: 2, StartOpen: true},
			expected: []Interval{
				spanOf(1*hour, 3*hour, true),
				spanOf(3*hour, 5*hour, true),
			},
		},
		{
			name: "Sized backward",
			opts: WalkOptions{Size: 2, Limit: 2, Backward: true},
			expected: []Interval{
				spanOf(1*hour, 3*hour, false),
				spanOf(-1*hour, 1*hour, false),
			},
		},
		{
			name: "Sized backward with open start",
			opts: WalkOptions{Size: 2, Limit: 2, Backward: true, StartOpen: true},
			expected: []Interval{
				spanOf(0, 2*hour, true),
				spanOf(-2*hour, 0, true),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, slices.Collect(d.Walk(2*hour, tc.opts)))
		})
	}
}

func TestWalkRestartsOnEachRange(t *testing.T) {
	walk := MustParse("1h").Walk(2*hour, WalkOptions{Limit: 10})

	for range 2 {
		for s := range walk {
			assert.Equal(t, spanOf(2*hour, 3*hour, false), s)
			break
		}
	}
}

func TestWalkUnbounded(t *testing.T) {
	var spans []Interval
	for s := range MustParse("1M").Walk(at("2018-11-15"), WalkOptions{}) {
		spans = append(spans, s)
		if len(spans) == 4 {
			break
		}
	}

	require.Len(t, spans, 4)
	assert.Equal(t, dateSpan("2018-11-01", "2018-12-01"), spans[0])
	assert.Equal(t, dateSpan("2019-02-01", "2019-03-01"), spans[3])
}

func TestIterateUniform(t *testing.T) {
	d := MustParse("1h")
	iv := ClosedInterval(2*hour, 4*hour)

	spans := slices.Collect(d.Iterate(iv, IterateOptions{}))
	assert.Equal(t, []Interval{
		spanOf(2*hour, 3*hour, false),
		spanOf(3*hour, 4*hour, false),
		spanOf(4*hour, 5*hour, false),
	}, spans)

	spans = slices.Collect(d.Iterate(iv, IterateOptions{Backward: true}))
	assert.Equal(t, []Interval{
		spanOf(4*hour, 5*hour, false),
		spanOf(3*hour, 4*hour, false),
		spanOf(2*hour, 3*hour, false),
	}, spans)
}

func TestIterateNonUniform(t *testing.T) {
	d := MustParse("1M")
	iv, err := Timespan("2018-05-02", "2018-06-03", false)
	require.NoError(t, err)

	spans := slices.Collect(d.Iterate(iv, IterateOptions{}))
	assert.Equal(t, []Interval{
		dateSpan("2018-05-01", "2018-06-01"),
		dateSpan("2018-06-01", "2018-07-01"),
	}, spans)

	spans = slices.Collect(d.Iterate(iv, IterateOptions{Backward: true}))
	assert.Equal(t, []Interval{
		dateSpan("2018-06-01", "2018-07-01"),
		dateSpan("2018-05-01", "2018-06-01"),
	}, spans)
}

func TestIterateLargeSize(t *testing.T) {
	t.Run("Days forward", func(t *testing.T) {
		d := MustParse("1d")
		spans := slices.Collect(d.Iterate(dateSpan("2018-05-01", "2018-05-10"), IterateOptions{Size: 8}))

		require.Len(t, spans, 2)
		assert.Equal(t, 8, d.Count(spans[0], false))
		assert.Equal(t, 8, d.Count(spans[1], false))
		assert.Equal(t, dateSpan("2018-05-01", "2018-05-09"), spans[0])
		assert.Equal(t, dateSpan("2018-05-09", "2018-05-17"), spans[1])
	})

	t.Run("Days backward", func(t *testing.T) {
		d := MustParse("1d")
		spans := slices.Collect(d.Iterate(dateSpan("2018-05-20", "2018-05-30"), IterateOptions{Size: 8, Backward: true}))

		require.Len(t, spans, 2)
		assert.Equal(t, 8, d.Count(spans[0], false))
		assert.Equal(t, 8, d.Count(spans[1], false))
		assert.Equal(t, dateSpan("2018-05-22", "2018-05-30"), spans[0])
		assert.Equal(t, dateSpan("2018-05-14", "2018-05-22"), spans[1])
	})

	t.Run("Months forward", func(t *testing.T) {
		d := MustParse("1M")
		spans := slices.Collect(d.Iterate(dateSpan("2018-05-02", "2018-08-10"), IterateOptions{Size: 2}))

		require.Len(t, spans, 2)
		assert.Equal(t, 2, d.Count(spans[0], false))
		assert.Equal(t, 2, d.Count(spans[1], false))
		assert.Equal(t, dateSpan("2018-05-01", "2018-07-01"), spans[0])
		assert.Equal(t, dateSpan("2018-07-01", "2018-09-01"), spans[1])
	})

	t.Run("Months backward", func(t *testing.T) {
		d := MustParse("1M")
		spans := slices.Collect(d.Iterate(dateSpan("2018-05-02", "2018-08-10"), IterateOptions{Size: 2, Backward: true}))

		require.Len(t, spans, 2)
		assert.Equal(t, 2, d.Count(spans[0], false))
		assert.Equal(t, 2, d.Count(spans[1], false))
		assert.Equal(t, dateSpan("2018-07-01", "2018-09-01"), spans[0])
		assert.Equal(t, dateSpan("2018-05-01", "2018-07-01"), spans[1])
	})
}

func TestIterateStopsEarly(t *testing.T) {
	n := 0
	for range MustParse("1d").Iterate(dateSpan("2018-01-01", "2019-01-01"), IterateOptions{}) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 2, MustParse("1h").Count(OpenInterval(2*hour, 4*hour), false))
	assert.Equal(t, 3, MustParse("1h").Count(ClosedInterval(2*hour, 4*hour), false))
	assert.Equal(t, 12, MustParse("1M").Count(dateSpan("2018-01-01", "2019-01-01"), false))
	assert.Equal(t, 3, MustParse("20h").Count(dateSpan("2018-12-07 13:00", "2018-12-08 13:00"), false))

	t.Run("Matches the number of iterated spans", func(t *testing.T) {
		iv := dateSpan("2018-02-10", "2018-09-03")
		for _, s := range []string{"1d", "3d", "1w", "20w", "1M", "5h"} {
			d := MustParse(s)
			assert.Equal(t, len(slices.Collect(d.Iterate(iv, IterateOptions{}))), d.Count(iv, false), s)
		}
	})
}

func TestMicrosecondsAtRealTimestamps(t *testing.T) {
	ts := at("2018-12-07 13:12")
	iv := ClosedInterval(ts, ts+0.001)

	testCases := []struct {
		duration string
		count    int
	}{
		{"1μs", 1001},
		{"7μs", 144},
		{"250μs", 5},
	}

	for _, tc := range testCases {
		t.Run(tc.duration, func(t *testing.T) {
			d := MustParse(tc.duration)
			assert.Equal(t, tc.count, d.Count(iv, false))

			var spans []Interval
			for span := range d.Iterate(iv, IterateOptions{}) {
				spans = append(spans, span)
				if len(spans) > 2*tc.count {
					break
				}
			}
			require.Len(t, spans, tc.count)
			for i, span := range spans {
				require.Less(t, span.Start, span.End, "span %d", i)
				if i > 0 {
					require.Equal(t, spans[i-1].End, span.Start, "span %d", i)
				}
			}
		})
	}

	t.Run("Stepping keeps moving", func(t *testing.T) {
		d := MustParse("1μs")
		cursor := ts
		for i := range 50 {
			next := d.Step(cursor, 1, false)
			require.Greater(t, next, cursor, "step %d", i)
			cursor = next
		}
		assert.InDelta(t, ts+50e-6, cursor, 1e-7)
		assert.Equal(t, ts, d.Step(cursor, 50, true))
	})

	t.Run("Walk yields distinct spans", func(t *testing.T) {
		spans := slices.Collect(MustParse("1μs").Walk(ts, WalkOptions{Limit: 20}))
		require.Len(t, spans, 20)
		for _, span := range spans {
			assert.Less(t, span.Start, span.End)
		}
	})
}

func TestPad(t *testing.T) {
	d := MustParse("1d")

	assert.Equal(t,
		dateSpan("2018-03-08", "2019-03-23"),
		d.Pad(dateSpan("2018-03-10", "2019-03-20"), 2, 3),
	)

	t.Run("Zero pads keep the interval", func(t *testing.T) {
		iv := dateSpan("2018-03-10", "2018-03-20")
		assert.Equal(t, iv, d.Pad(iv, 0, 0))
	})

	t.Run("Negative pads shrink the interval", func(t *testing.T) {
		assert.Equal(t,
			dateSpan("2018-03-11", "2018-03-19"),
			d.Pad(dateSpan("2018-03-10", "2018-03-20"), -1, -1),
		)
	})

	t.Run("Months", func(t *testing.T) {
		assert.Equal(t,
			dateSpan("2017-12-01", "2018-04-01"),
			MustParse("1M").Pad(dateSpan("2018-01-01", "2018-03-01"), 1, 1),
		)
	})
}
