package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest        = 4000
	CodeInvalidInput          = 4101
	CodeInvalidMagnitude      = 4102
	CodeIncompatibleOperation = 4103
	CodeInvalidTimestamp      = 4104
	CodeInvalidPresetName     = 4105
	CodePresetNotFound        = 4040
	CodeDuplicatePreset       = 4090

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidInput is returned when a duration cannot be parsed: unknown unit,
	// missing unit, several tokens or a structured input of the wrong shape
	ErrInvalidInput = errors.New("invalid duration input")

	// ErrInvalidMagnitude is returned when the magnitude is zero, negative or missing
	ErrInvalidMagnitude = errors.New("duration magnitude must be positive")

	// ErrIncompatibleOperation is returned when arithmetic needs an exact elapsed
	// length and the duration has a calendar-variable one
	ErrIncompatibleOperation = errors.New("operation requires a fixed-length duration")

	// ErrInvalidTimestamp is returned when a timestamp reference cannot be resolved
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidPresetName is returned when a preset name is empty or malformed
	ErrInvalidPresetName = errors.New("invalid preset name")

	// ErrPresetNotFound is returned when the requested preset doesn't exist
	ErrPresetNotFound = errors.New("preset not found")

	// ErrDuplicatePreset is returned when a preset with the same name already exists
	ErrDuplicatePreset = errors.New("preset already exists")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrInvalidMagnitude):
		return CodeInvalidMagnitude
	case errors.Is(err, ErrIncompatibleOperation):
		return CodeIncompatibleOperation
	case errors.Is(err, ErrInvalidTimestamp):
		return CodeInvalidTimestamp
	case errors.Is(err, ErrInvalidPresetName):
		return CodeInvalidPresetName
	case errors.Is(err, ErrPresetNotFound):
		return CodePresetNotFound
	case errors.Is(err, ErrDuplicatePreset):
		return CodeDuplicatePreset
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	default:
		return CodeInternalServer
	}
}

// DurationError represents a failure to build a duration from some input
type DurationError struct {
	Input  string
	Reason string
	Err    error
}

// Error implements the error interface for DurationError
func (e *DurationError) Error() string {
	return fmt.Sprintf("cannot build duration from %q: %s: %v", e.Input, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *DurationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *DurationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "duration_error",
		"input":      e.Input,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewDurationError creates a detailed duration construction error
func NewDurationError(input, reason string, err error) error {
	return &DurationError{
		Input:  input,
		Reason: reason,
		Err:    err,
	}
}

// IncompatibleOperationError provides detail about arithmetic refused on a variable-length duration
type IncompatibleOperationError struct {
	Duration   string
	Operation  string
	MinSeconds float64
	MaxSeconds float64
}

// Error implements the error interface
func (e *IncompatibleOperationError) Error() string {
	return fmt.Sprintf("cannot %s %s: elapsed length varies between %gs and %gs",
		e.Operation, e.Duration, e.MinSeconds, e.MaxSeconds)
}

// Is checks if the target error is an ErrIncompatibleOperation
func (e *IncompatibleOperationError) Is(target error) bool {
	return target == ErrIncompatibleOperation
}

// LogFields returns a map of fields for structured logging
func (e *IncompatibleOperationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "incompatible_operation",
		"duration":    e.Duration,
		"operation":   e.Operation,
		"min_seconds": e.MinSeconds,
		"max_seconds": e.MaxSeconds,
		"error_code":  CodeIncompatibleOperation,
	}
}

// NewIncompatibleOperationError creates a new detailed incompatible operation error
func NewIncompatibleOperationError(duration, operation string, minSeconds, maxSeconds float64) error {
	return &IncompatibleOperationError{
		Duration:   duration,
		Operation:  operation,
		MinSeconds: minSeconds,
		MaxSeconds: maxSeconds,
	}
}

// IsInvalidDurationError checks if the error comes from parsing or validating a duration
func IsInvalidDurationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidMagnitude)
}

// IsIncompatibleOperationError checks if the error is an arithmetic refusal
func IsIncompatibleOperationError(err error) bool {
	return errors.Is(err, ErrIncompatibleOperation)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrPresetNotFound)
}
