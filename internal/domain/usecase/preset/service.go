package preset

import (
	"context"
	"errors"
	"strings"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
	errs "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
)

// Service handles preset business logic
type Service struct {
	presetRepo   persistence.PresetRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new preset service
func NewService(
	presetRepo persistence.PresetRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		presetRepo:   presetRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.PresetUseCase = (*Service)(nil)

// Create stores a new preset
func (s *Service) Create(ctx context.Context, name, duration, description string) (*entity.Preset, error) {
	d, err := entity.Parse(duration)
	if err != nil {
		return nil, err
	}

	preset, err := entity.NewPreset(name, d, description, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.presetRepo.Create(ctx, preset); err != nil {
		s.logger.Error("Failed to create preset", map[string]any{
			"name":  preset.Name,
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Preset created", map[string]any{
		"name":     preset.Name,
		"duration": preset.Duration.String(),
	})
	return preset, nil
}

// Get retrieves a preset by name
func (s *Service) Get(ctx context.Context, name string) (*entity.Preset, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	return s.presetRepo.GetByName(ctx, name)
}

// List returns all presets
func (s *Service) List(ctx context.Context) ([]*entity.Preset, error) {
	return s.presetRepo.List(ctx)
}

// Update changes the duration and description of an existing preset
func (s *Service) Update(ctx context.Context, name, duration, description string) (*entity.Preset, error) {
	d, err := entity.Parse(duration)
	if err != nil {
		return nil, err
	}

	preset, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	previous := preset.Duration
	if err := preset.Redefine(d, description, s.timeProvider); err != nil {
		return nil, err
	}
	if err := s.presetRepo.Update(ctx, preset); err != nil {
		s.logger.Error("Failed to update preset", map[string]any{
			"name":  preset.Name,
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Preset updated", map[string]any{
		"name":     preset.Name,
		"previous": previous.String(),
		"duration": preset.Duration.String(),
	})
	return preset, nil
}

// Delete removes a preset
func (s *Service) Delete(ctx context.Context, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	if err := s.presetRepo.Delete(ctx, name); err != nil {
		return err
	}

	s.logger.Info("Preset deleted", map[string]any{"name": name})
	return nil
}

// SeedDefaults creates every definition whose name is not taken yet
func (s *Service) SeedDefaults(ctx context.Context, definitions []usecase.PresetDefinition) error {
	created := 0
	for _, def := range definitions {
		preset, err := entity.NewPreset(def.Name, def.Duration, def.Description, s.timeProvider)
		if err != nil {
			return err
		}

		err = s.presetRepo.Create(ctx, preset)
		switch {
		case err == nil:
			created++
		case errors.Is(err, errs.ErrDuplicatePreset):
			s.logger.Debug("Default preset already exists", map[string]any{"name": preset.Name})
		default:
			return err
		}
	}

	s.logger.Info("Default presets created or verified", map[string]any{
		"created": created,
		"total":   len(definitions),
	})
	return nil
}

func normalizeName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if err := entity.ValidatePresetName(name); err != nil {
		return "", err
	}
	return name, nil
}
