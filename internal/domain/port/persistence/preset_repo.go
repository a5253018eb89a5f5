package persistence

import (
	"context"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
)

// PresetRepository defines the methods to store and look up named durations
type PresetRepository interface {
	// GetByName retrieves a preset by its name
	//
	// Possible errors:
	// - ErrPresetNotFound: If no preset has that name
	// - ErrDatabaseConnection: If database connection fails
	GetByName(ctx context.Context, name string) (*entity.Preset, error)

	// List returns all presets ordered by name
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	List(ctx context.Context) ([]*entity.Preset, error)

	// Create stores a new preset
	//
	// Possible errors:
	// - ErrDuplicatePreset: If a preset with the same name already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, preset *entity.Preset) error

	// Update replaces the duration and description of an existing preset
	//
	// Possible errors:
	// - ErrPresetNotFound: If the preset doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, preset *entity.Preset) error

	// Delete removes a preset by name
	//
	// Possible errors:
	// - ErrPresetNotFound: If the preset doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Delete(ctx context.Context, name string) error
}
