package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const slowQueryThreshold = 200 * time.Millisecond

var gormLevels = map[string]logger.LogLevel{
	"silent":  logger.Silent,
	"error":   logger.Error,
	"warn":    logger.Warn,
	"warning": logger.Warn,
	"info":    logger.Info,
	"debug":   logger.Info,
}

// DatabaseLogger routes gorm output into the core logger. Statements are
// logged at debug, slow ones at warn and failures at error.
type DatabaseLogger struct {
	core          coreport.Logger
	timeProvider  coreport.TimeProvider
	level         logger.LogLevel
	slowThreshold time.Duration
}

// NewDatabaseLogger creates a gorm logger. level is an application log level
// or "silent"; unknown values fall back to info.
func NewDatabaseLogger(core coreport.Logger, timeProvider coreport.TimeProvider, level string) logger.Interface {
	gormLevel, ok := gormLevels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		gormLevel = logger.Info
	}
	return &DatabaseLogger{
		core:          core,
		timeProvider:  timeProvider,
		level:         gormLevel,
		slowThreshold: slowQueryThreshold,
	}
}

// LogMode returns a copy at the given level
func (l *DatabaseLogger) LogMode(level logger.LogLevel) logger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *DatabaseLogger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		l.core.Info(fmt.Sprintf(msg, data...), l.fields())
	}
}

func (l *DatabaseLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		l.core.Warn(fmt.Sprintf(msg, data...), l.fields())
	}
}

func (l *DatabaseLogger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		l.core.Error(fmt.Sprintf(msg, data...), l.fields())
	}
}

// Trace logs one executed statement
func (l *DatabaseLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := l.timeProvider.Since(begin)
	sql, rows := fc()

	fields := l.fields()
	fields["elapsed"] = elapsed.String()
	fields["rows"] = rows
	fields["sql"] = sql
	fields["caller"] = utils.FileWithLineNum()
	if verb := statementVerb(sql); verb != "" {
		fields["type"] = verb
	}

	switch {
	// a missing preset is an answer, not a failure
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		if l.level >= logger.Error {
			fields["error"] = err.Error()
			l.core.Error("SQL Error", fields)
		}
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		if l.level >= logger.Warn {
			fields["threshold"] = l.slowThreshold.String()
			l.core.Warn("Slow SQL Query", fields)
		}
	case l.level >= logger.Info:
		l.core.Debug("SQL Query", fields)
	}
}

func (l *DatabaseLogger) fields() map[string]any {
	return map[string]any{"source": "database"}
}

// statementVerb returns the leading SQL keyword of a data or schema statement
func statementVerb(sql string) string {
	verb, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	switch verb = strings.ToUpper(verb); verb {
	case "SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "ALTER", "DROP":
		return verb
	}
	return ""
}
