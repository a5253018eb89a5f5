package dto

import (
	"errors"

	domainerr "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
)

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Code      int           `json:"code"`
	Message   string        `json:"message"`
	RequestID string        `json:"requestId,omitempty"`
	Details   *ErrorDetails `json:"details,omitempty"`
}

// ErrorDetails carries what the caller needs to fix a rejected duration
type ErrorDetails struct {
	Input      string   `json:"input,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Operation  string   `json:"operation,omitempty"`
	MinSeconds *float64 `json:"minSeconds,omitempty"`
	MaxSeconds *float64 `json:"maxSeconds,omitempty"`
}

// NewErrorResponse builds the response for err, attaching details when err
// is a duration parse failure or a refused arithmetic operation
func NewErrorResponse(err error, message, requestID string) ErrorResponse {
	resp := ErrorResponse{
		Code:      domainerr.ErrorCode(err),
		Message:   message,
		RequestID: requestID,
	}

	var parseErr *domainerr.DurationError
	var opErr *domainerr.IncompatibleOperationError
	switch {
	case errors.As(err, &parseErr):
		resp.Details = &ErrorDetails{Input: parseErr.Input, Reason: parseErr.Reason}
	case errors.As(err, &opErr):
		resp.Details = &ErrorDetails{
			Input:      opErr.Duration,
			Operation:  opErr.Operation,
			MinSeconds: &opErr.MinSeconds,
			MaxSeconds: &opErr.MaxSeconds,
		}
	}
	return resp
}
