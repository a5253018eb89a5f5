package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
)

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Calendar    CalendarConfig `mapstructure:"calendar"`
	Presets     PresetsConfig  `mapstructure:"presets"`
}

// ServerConfig contains HTTP server settings. Timeouts are Go durations such as "15s".
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	Mode              string        `mapstructure:"mode"` // gin mode: debug, release or test
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
}

// DatabaseConfig contains preset store connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or sqlite
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	Path            string        `mapstructure:"path"` // sqlite file, ":memory:" for a private in-memory store
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"`
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// CalendarConfig bounds the work of a single request
type CalendarConfig struct {
	MaxWalkLimit    int `mapstructure:"maxWalkLimit"`
	MaxIterateItems int `mapstructure:"maxIterateItems"`
}

// PresetsConfig controls the presets created at startup
type PresetsConfig struct {
	SeedDefaults bool           `mapstructure:"seedDefaults"`
	Defaults     []PresetConfig `mapstructure:"defaults"`
}

// PresetConfig is one named duration; Duration accepts any text entity.Parse does
type PresetConfig struct {
	Name        string          `mapstructure:"name"`
	Duration    entity.Duration `mapstructure:"duration"`
	Description string          `mapstructure:"description"`
}

// Validate reports every missing or inconsistent setting at once
func (c *Config) Validate() error {
	var problems []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}

	switch strings.ToLower(c.Database.Driver) {
	case "postgres":
		if c.Database.Host == "" {
			problems = append(problems, errors.New("database.host is required for postgres"))
		}
		if c.Database.Database == "" {
			problems = append(problems, errors.New("database.database is required for postgres"))
		}
	case "sqlite":
		if c.Database.Path == "" {
			problems = append(problems, errors.New("database.path is required for sqlite"))
		}
	default:
		problems = append(problems, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Errorf("logger.level %q is not supported", c.Logger.Level))
	}

	if c.Calendar.MaxWalkLimit <= 0 {
		problems = append(problems, errors.New("calendar.maxWalkLimit must be positive"))
	}
	if c.Calendar.MaxIterateItems <= 0 {
		problems = append(problems, errors.New("calendar.maxIterateItems must be positive"))
	}

	seen := make(map[string]bool, len(c.Presets.Defaults))
	for i, p := range c.Presets.Defaults {
		name := strings.ToLower(p.Name)
		if err := entity.ValidatePresetName(name); err != nil {
			problems = append(problems, fmt.Errorf("presets.defaults[%d]: %w: %q", i, err, p.Name))
		}
		if p.Duration.IsZero() {
			problems = append(problems, fmt.Errorf("presets.defaults[%d]: duration is required", i))
		}
		if seen[name] {
			problems = append(problems, fmt.Errorf("presets.defaults[%d]: duplicate name %q", i, p.Name))
		}
		seen[name] = true
	}

	return errors.Join(problems...)
}

// IsProduction reports whether the production environment is active
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
