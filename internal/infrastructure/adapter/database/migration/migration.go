package migration

import (
	"context"
	"errors"
	"fmt"

	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CurrentSchemaVersion is the version of the last schema step
const CurrentSchemaVersion = "1.0.0"

// step is one schema change. Steps run in order, each in its own transaction.
type step struct {
	version string
	details string
	apply   func(tx *gorm.DB) error
}

var steps = []step{
	{
		version: "1.0.0",
		details: "Preset schema",
		apply: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&model.Preset{})
		},
	},
}

// MigrationManager brings the preset store schema up to CurrentSchemaVersion
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll applies every step newer than the recorded version
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	db := m.db.WithContext(ctx)

	if err := db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	current, err := m.GetCurrentVersion(ctx)
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	pending, err := pendingSteps(current)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		m.logger.Info("Database schema is up to date", map[string]any{
			"version": current,
		})
		return nil
	}

	for _, s := range pending {
		m.logger.Info("Applying schema step", map[string]any{
			"from": current,
			"to":   s.version,
		})

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := s.apply(tx); err != nil {
				return err
			}
			return tx.Create(&model.MigrationVersion{
				Version:   s.version,
				AppliedAt: m.timeProvider.Now(),
				Details:   s.details,
			}).Error
		})
		if err != nil {
			m.logger.Error("Schema step failed", map[string]any{
				"version": s.version,
				"error":   err.Error(),
			})
			return fmt.Errorf("schema step %s: %w", s.version, err)
		}
		current = s.version
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": current,
	})
	return nil
}

// pendingSteps returns the steps after version; "" means a new database
func pendingSteps(version string) ([]step, error) {
	if version == "" {
		return steps, nil
	}
	for i, s := range steps {
		if s.version == version {
			return steps[i+1:], nil
		}
	}
	return nil, fmt.Errorf("database schema version %q is not known to this build", version)
}

// GetCurrentVersion returns the last applied schema version, or "" for a new database
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var version model.MigrationVersion
	err := m.db.WithContext(ctx).Order("applied_at desc, id desc").First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return version.Version, nil
}
