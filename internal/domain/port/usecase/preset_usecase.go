package usecase

import (
	"context"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
)

// PresetDefinition describes a preset to create at startup
type PresetDefinition struct {
	Name        string
	Duration    entity.Duration
	Description string
}

// PresetUseCase defines the operations on named durations
type PresetUseCase interface {
	// Create stores a new preset; duration is any text Parse accepts
	Create(ctx context.Context, name, duration, description string) (*entity.Preset, error)

	// Get retrieves a preset by name
	Get(ctx context.Context, name string) (*entity.Preset, error)

	// List returns all presets
	List(ctx context.Context) ([]*entity.Preset, error)

	// Update changes the duration and description of an existing preset
	Update(ctx context.Context, name, duration, description string) (*entity.Preset, error)

	// Delete removes a preset
	Delete(ctx context.Context, name string) error

	// SeedDefaults creates every definition that does not exist yet
	SeedDefaults(ctx context.Context, definitions []PresetDefinition) error
}
