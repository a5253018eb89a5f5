package model

import (
	"time"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
)

// Preset is the stored form of a named duration. Duration is kept as its
// canonical text, e.g. "3M".
type Preset struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"type:varchar(63);not null;uniqueIndex:idx_presets_name"`
	Duration    entity.Duration `gorm:"type:varchar(32);not null"`
	Description string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName specifies the table name for the preset model
func (Preset) TableName() string {
	return "presets"
}

// NewPresetModel converts a preset entity to its stored form
func NewPresetModel(preset *entity.Preset) *Preset {
	return &Preset{
		Name:        preset.Name,
		Duration:    preset.Duration,
		Description: preset.Description,
		CreatedAt:   preset.CreatedAt,
		UpdatedAt:   preset.UpdatedAt,
	}
}

// ToEntity converts the stored form back to a preset entity
func (p *Preset) ToEntity() *entity.Preset {
	return &entity.Preset{
		Name:        p.Name,
		Duration:    p.Duration,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
