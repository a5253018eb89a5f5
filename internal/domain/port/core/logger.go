package core

// LogLevel orders log entries by severity; a logger drops entries below its level.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

// String returns the lower-case level name used in configuration
func (l LogLevel) String() string {
	if l < LogLevelDebug || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// Logger writes structured entries. fields may be nil.
type Logger interface {
	Debug(message string, fields map[string]any)
	Info(message string, fields map[string]any)
	Warn(message string, fields map[string]any)
	Error(message string, fields map[string]any)

	SetLevel(level LogLevel)
	GetLevel() LogLevel

	// Flush writes out buffered entries
	Flush() error
}
