package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	domainErr "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	mapper := NewErrorMapper()

	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{"Record not found", gorm.ErrRecordNotFound, domainErr.ErrPresetNotFound},
		{"Wrapped record not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), domainErr.ErrPresetNotFound},
		{"Translated duplicate", gorm.ErrDuplicatedKey, domainErr.ErrDuplicatePreset},
		{"Postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "idx_presets_name"`), domainErr.ErrDuplicatePreset},
		{"SQLite duplicate", errors.New("UNIQUE constraint failed: presets.name"), domainErr.ErrDuplicatePreset},
		{"Connection refused", errors.New("dial tcp: connection refused"), domainErr.ErrDatabaseConnection},
		{"Anything else", errors.New("syntax error"), domainErr.ErrInternalServer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapper.MapError(tc.err, "test"), tc.expected)
		})
	}

	assert.NoError(t, mapper.MapError(nil, "test"))
}

func TestRetry(t *testing.T) {
	policy := RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
	log := logger.NewNoopLogger()

	t.Run("Succeeds after transient failures", func(t *testing.T) {
		calls := 0
		n, err := Retry(context.Background(), policy, log, func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("connection reset by peer")
			}
			return 42, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 42, n)
		assert.Equal(t, 3, calls)
	})

	t.Run("Stops on a permanent failure", func(t *testing.T) {
		calls := 0
		_, err := Retry(context.Background(), policy, log, func(context.Context) (int, error) {
			calls++
			return 7, errors.New("syntax error")
		})

		assert.EqualError(t, err, "syntax error")
		assert.Equal(t, 1, calls)
	})

	t.Run("Gives up after the last attempt", func(t *testing.T) {
		calls := 0
		n, err := Retry(context.Background(), policy, log, func(context.Context) (int, error) {
			calls++
			return 7, errors.New("i/o timeout")
		})

		assert.Error(t, err)
		assert.Zero(t, n)
		assert.Equal(t, 3, calls)
	})

	t.Run("Canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Retry(ctx, RetryPolicy{Attempts: 3, BaseDelay: time.Hour}, log, func(context.Context) (int, error) {
			return 0, errors.New("connection refused")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryPolicy(t *testing.T) {
	p := RetryPolicyFor(&Config{RetryAttempts: 0})
	assert.Equal(t, 1, p.Attempts)

	p = RetryPolicyFor(&Config{RetryAttempts: 4, RetryDelay: time.Second})
	assert.Equal(t, 4, p.Attempts)
	assert.Equal(t, 8*time.Second, p.MaxDelay)

	p.Jitter = 0
	assert.Equal(t, time.Second, p.delay(0))
	assert.Equal(t, 4*time.Second, p.delay(2))
	assert.Equal(t, 8*time.Second, p.delay(10))
	assert.Equal(t, 8*time.Second, p.delay(80))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, MemoryConfig().Validate())

	assert.Error(t, (&Config{Driver: "mysql"}).Validate())
	assert.Error(t, (&Config{Driver: DriverSQLite}).Validate())
	assert.Error(t, (&Config{Driver: DriverPostgres, Database: "presets", SSLMode: "disable"}).Validate())
	assert.Error(t, (&Config{Driver: DriverPostgres, Host: "db", Database: "presets", SSLMode: "sometimes"}).Validate())

	pg := &Config{Driver: DriverPostgres, Host: "db", Port: "5432", Username: "u", Password: "p", Database: "presets", SSLMode: "disable"}
	require.NoError(t, pg.Validate())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=presets sslmode=disable", pg.DSN())
	assert.NotContains(t, pg.Redacted(), "password")
}

func TestManagerLifecycle(t *testing.T) {
	testDB := NewTestDBManager(t, logger.NewNoopLogger())
	ctx := context.Background()

	require.NoError(t, testDB.Manager.Ping(ctx))

	version, err := migration.NewMigrationManager(testDB.Manager.DB(), testDB.Logger, testDB.TimeProvider).GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, migration.CurrentSchemaVersion, version)

	t.Run("Migrating twice is a no-op", func(t *testing.T) {
		require.NoError(t, testDB.Manager.Migrate(ctx))

		var count int64
		require.NoError(t, testDB.Manager.DB().Table("migration_versions").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Pool statistics collector", func(t *testing.T) {
		collector, err := testDB.Manager.StatsCollector()
		require.NoError(t, err)

		registry := prometheus.NewRegistry()
		require.NoError(t, registry.Register(collector))
		families, err := registry.Gather()
		require.NoError(t, err)
		assert.NotEmpty(t, families)
	})
}

func TestManagerRejectsInvalidConfig(t *testing.T) {
	m := NewManager(&Config{Driver: "oracle"}, logger.NewNoopLogger(), nil)
	_, err := m.Connect(context.Background())
	assert.ErrorContains(t, err, "unsupported database driver")
	assert.Error(t, m.Ping(context.Background()))
}
