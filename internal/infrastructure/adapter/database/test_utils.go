package database

import (
	"context"
	"testing"

	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	timeprovider "github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/time"
	"github.com/google/uuid"
)

// TestDBManager provides a migrated in-memory preset store for tests
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager connects to a fresh in-memory SQLite database, migrates it,
// and closes it when the test ends
func NewTestDBManager(t testing.TB, logger coreport.Logger) *TestDBManager {
	t.Helper()

	timeProvider := timeprovider.NewRealTimeProvider()

	config := MemoryConfig()
	// named so two managers in one process never share a database
	config.Path = "file:" + uuid.NewString() + "?mode=memory"

	manager := NewManager(config, logger, timeProvider)
	if _, err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	if err := manager.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &TestDBManager{
		Manager:      manager,
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}
}

// TruncatePresets removes every stored preset
func (m *TestDBManager) TruncatePresets(t testing.TB) {
	t.Helper()

	if err := m.Manager.DB().Exec("DELETE FROM presets").Error; err != nil {
		t.Fatalf("Failed to truncate presets: %v", err)
	}
}
