package repository

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
	errs "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// PresetRepository implements the PresetRepository port using GORM
type PresetRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errorMapper  *database.ErrorMapper
}

var _ persistence.PresetRepository = (*PresetRepository)(nil)

// NewPresetRepository creates a new PresetRepository instance
func NewPresetRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *PresetRepository {
	return &PresetRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		errorMapper:  database.NewErrorMapper(),
	}
}

// handleDatabaseError standardizes database error handling
func (r *PresetRepository) handleDatabaseError(operation string, err error, name string) error {
	mapped := r.errorMapper.MapError(err, operation)

	switch {
	case errors.Is(mapped, errs.ErrPresetNotFound):
		r.logger.Debug("Preset not found", map[string]any{"name": name})
	case errors.Is(mapped, errs.ErrDuplicatePreset):
		r.logger.Warn("Duplicate preset", map[string]any{"name": name})
	default:
		r.logger.Error("Database error on preset "+operation, map[string]any{
			"name":  name,
			"error": err.Error(),
		})
	}
	return mapped
}

// GetByName retrieves a preset by name
func (r *PresetRepository) GetByName(ctx context.Context, name string) (*entity.Preset, error) {
	var presetModel model.Preset
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&presetModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("lookup", result.Error, name)
	}
	return presetModel.ToEntity(), nil
}

// List returns all presets ordered by name
func (r *PresetRepository) List(ctx context.Context) ([]*entity.Preset, error) {
	var presetModels []model.Preset
	if err := r.db.WithContext(ctx).Order("name").Find(&presetModels).Error; err != nil {
		return nil, r.handleDatabaseError("list", err, "")
	}

	presets := make([]*entity.Preset, 0, len(presetModels))
	for i := range presetModels {
		presets = append(presets, presetModels[i].ToEntity())
	}
	return presets, nil
}

// Create stores a new preset
func (r *PresetRepository) Create(ctx context.Context, preset *entity.Preset) error {
	presetModel := model.NewPresetModel(preset)
	if err := r.db.WithContext(ctx).Create(presetModel).Error; err != nil {
		return r.handleDatabaseError("create", err, preset.Name)
	}

	r.logger.Debug("Preset stored", map[string]any{
		"name":     preset.Name,
		"duration": preset.Duration.String(),
	})
	return nil
}

// Update replaces the duration and description of an existing preset
func (r *PresetRepository) Update(ctx context.Context, preset *entity.Preset) error {
	updatedAt := preset.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = r.timeProvider.Now()
	}

	result := r.db.WithContext(ctx).
		Model(&model.Preset{}).
		Where("name = ?", preset.Name).
		Updates(map[string]any{
			"duration":    preset.Duration,
			"description": preset.Description,
			"updated_at":  updatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("update", result.Error, preset.Name)
	}
	if result.RowsAffected == 0 {
		return errs.ErrPresetNotFound
	}
	return nil
}

// Delete removes a preset by name
func (r *PresetRepository) Delete(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.Preset{})
	if result.Error != nil {
		return r.handleDatabaseError("delete", result.Error, name)
	}
	if result.RowsAffected == 0 {
		return errs.ErrPresetNotFound
	}
	return nil
}
