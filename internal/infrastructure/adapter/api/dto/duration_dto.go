package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
)

// TimeRef is a timestamp reference in a request body. It accepts a JSON
// string ("2018-12-07 13:12") or a JSON number of epoch seconds.
type TimeRef string

// UnmarshalJSON implements json.Unmarshaler
func (r *TimeRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = TimeRef(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("timestamp must be a string or a number: %w", err)
	}
	*r = TimeRef(n.String())
	return nil
}

// IntervalRequest is an interval given by its two timestamp references
type IntervalRequest struct {
	Start     TimeRef `json:"start" binding:"required"`
	End       TimeRef `json:"end" binding:"required"`
	StartOpen bool    `json:"startOpen"`
	EndOpen   bool    `json:"endOpen"`
}

// ToInterval resolves both references
func (r IntervalRequest) ToInterval() (entity.Interval, error) {
	start, err := entity.Timestamp(string(r.Start))
	if err != nil {
		return entity.Interval{}, err
	}
	end, err := entity.Timestamp(string(r.End))
	if err != nil {
		return entity.Interval{}, err
	}
	return entity.NewInterval(start, end, r.StartOpen, r.EndOpen), nil
}

// SpanIntervalRequest is the body of POST /durations/:duration/span-interval
type SpanIntervalRequest struct {
	Interval  IntervalRequest `json:"interval" binding:"required"`
	StartOpen bool            `json:"startOpen"`
}

// IterateRequest is the body of POST /durations/:duration/iterate
type IterateRequest struct {
	Interval  IntervalRequest `json:"interval" binding:"required"`
	Size      int             `json:"size"`
	Backward  bool            `json:"backward"`
	StartOpen bool            `json:"startOpen"`
}

// CountRequest is the body of POST /durations/:duration/count
type CountRequest struct {
	Interval  IntervalRequest `json:"interval" binding:"required"`
	StartOpen bool            `json:"startOpen"`
}

// PadRequest is the body of POST /durations/:duration/pad
type PadRequest struct {
	Interval IntervalRequest `json:"interval" binding:"required"`
	Start    int             `json:"start"`
	End      int             `json:"end"`
}

// IntervalResponse carries an interval as epoch seconds and as UTC times
type IntervalResponse struct {
	Start     float64   `json:"start" yaml:"start"`
	End       float64   `json:"end" yaml:"end"`
	StartOpen bool      `json:"startOpen" yaml:"startOpen"`
	EndOpen   bool      `json:"endOpen" yaml:"endOpen"`
	StartTime time.Time `json:"startTime" yaml:"startTime"`
	EndTime   time.Time `json:"endTime" yaml:"endTime"`
	Notation  string    `json:"notation" yaml:"notation"`
}

// NewIntervalResponse converts an interval for the wire
func NewIntervalResponse(iv entity.Interval) IntervalResponse {
	return IntervalResponse{
		Start:     iv.Start,
		End:       iv.End,
		StartOpen: iv.StartOpen,
		EndOpen:   iv.EndOpen,
		StartTime: entity.TimeOf(iv.Start),
		EndTime:   entity.TimeOf(iv.End),
		Notation:  iv.String(),
	}
}

// SpanResponse is returned by span and span-interval
type SpanResponse struct {
	Duration string           `json:"duration" yaml:"duration"`
	Span     IntervalResponse `json:"span" yaml:"span"`
}

// SpansResponse is returned by walk and iterate
type SpansResponse struct {
	Duration string             `json:"duration" yaml:"duration"`
	Count    int                `json:"count" yaml:"count"`
	Spans    []IntervalResponse `json:"spans" yaml:"spans"`
}

// NewSpansResponse converts a list of spans for the wire
func NewSpansResponse(duration string, spans []entity.Interval) SpansResponse {
	out := make([]IntervalResponse, len(spans))
	for i, s := range spans {
		out[i] = NewIntervalResponse(s)
	}
	return SpansResponse{Duration: duration, Count: len(out), Spans: out}
}

// PointResponse is returned by floor, ceil, next, previous and step
type PointResponse struct {
	Duration string    `json:"duration" yaml:"duration"`
	Seconds  float64   `json:"seconds" yaml:"seconds"`
	Time     time.Time `json:"time" yaml:"time"`
}

// NewPointResponse converts a boundary for the wire
func NewPointResponse(duration string, t float64) PointResponse {
	return PointResponse{Duration: duration, Seconds: t, Time: entity.TimeOf(t)}
}

// CountResponse is returned by count
type CountResponse struct {
	Duration string `json:"duration" yaml:"duration"`
	Count    int    `json:"count" yaml:"count"`
}

// ArithmeticResponse is returned by arithmetic
type ArithmeticResponse struct {
	Duration string  `json:"duration" yaml:"duration"`
	Op       string  `json:"op" yaml:"op"`
	Operand  float64 `json:"operand" yaml:"operand"`
	Result   float64 `json:"result" yaml:"result"`
}

// DurationResponse is returned by describe
type DurationResponse struct {
	Duration           string  `json:"duration" yaml:"duration"`
	Magnitude          int64   `json:"magnitude" yaml:"magnitude"`
	Unit               string  `json:"unit" yaml:"unit"`
	Preset             string  `json:"preset,omitempty" yaml:"preset,omitempty"`
	Parent             string  `json:"parent,omitempty" yaml:"parent,omitempty"`
	IsUniform          bool    `json:"isUniform" yaml:"isUniform"`
	IsCalendarRequired bool    `json:"isCalendarRequired" yaml:"isCalendarRequired"`
	HasExactSeconds    bool    `json:"hasExactSeconds" yaml:"hasExactSeconds"`
	MinSeconds         float64 `json:"minSeconds" yaml:"minSeconds"`
	MaxSeconds         float64 `json:"maxSeconds" yaml:"maxSeconds"`
	Seconds            float64 `json:"seconds" yaml:"seconds"`
}

// NewDurationResponse converts a description for the wire
func NewDurationResponse(info *usecase.DurationInfo) DurationResponse {
	return DurationResponse{
		Duration:           info.Duration.String(),
		Magnitude:          info.Duration.Magnitude(),
		Unit:               info.Duration.Unit().String(),
		Preset:             info.Preset,
		Parent:             info.Parent,
		IsUniform:          info.IsUniform,
		IsCalendarRequired: info.IsCalendarRequired,
		HasExactSeconds:    info.HasExactSeconds,
		MinSeconds:         info.MinSeconds,
		MaxSeconds:         info.MaxSeconds,
		Seconds:            info.Seconds,
	}
}
