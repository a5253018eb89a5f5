package logger

import (
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"go.uber.org/zap/zapcore"
)

// NewNoopLogger creates a logger that discards every entry while still
// tracking its level. Used by the CLI and in tests.
func NewNoopLogger() core.Logger {
	return NewFromCore(zapcore.NewNopCore(), core.LogLevelInfo)
}
