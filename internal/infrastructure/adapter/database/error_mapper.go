package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
	"gorm.io/gorm"
)

// uniqueViolations are the driver messages for a duplicate preset name.
// Postgres reports "duplicate key value violates unique constraint", SQLite
// "UNIQUE constraint failed".
var uniqueViolations = []string{"duplicate key", "unique constraint"}

// transientFailures mark errors worth retrying
var transientFailures = []string{
	"connection reset",
	"connection refused",
	"no connection",
	"timeout",
	"too many connections",
	"server closed",
	"broken pipe",
	"database is locked",
	"eof",
}

// ErrorMapper translates gorm and driver errors into the preset store's domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error. operation names the
// store call in the wrapped message.
func (m *ErrorMapper) MapError(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainErr.ErrPresetNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), containsAny(err, uniqueViolations):
		return domainErr.ErrDuplicatePreset
	case IsTransientError(err):
		return fmt.Errorf("%w: %s: %s", domainErr.ErrDatabaseConnection, operation, err.Error())
	default:
		return fmt.Errorf("%w: %s: %s", domainErr.ErrInternalServer, operation, err.Error())
	}
}

// IsTransientError reports whether the call may succeed if repeated
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return containsAny(err, transientFailures)
}

func containsAny(err error, fragments []string) bool {
	msg := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}
