package dto

import (
	"time"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
)

// PresetRequest is the body of POST /presets and PUT /presets/:name.
// Name is ignored on PUT.
type PresetRequest struct {
	Name        string `json:"name"`
	Duration    string `json:"duration" binding:"required"`
	Description string `json:"description"`
}

// PresetResponse represents a stored preset
type PresetResponse struct {
	Name        string    `json:"name"`
	Duration    string    `json:"duration"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewPresetResponse converts a preset for the wire
func NewPresetResponse(p *entity.Preset) PresetResponse {
	return PresetResponse{
		Name:        p.Name,
		Duration:    p.Duration.String(),
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PresetListResponse is returned by GET /presets
type PresetListResponse struct {
	Presets []PresetResponse `json:"presets"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
