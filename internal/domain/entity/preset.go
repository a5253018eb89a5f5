package entity

import (
	"regexp"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
)

var presetNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// Preset is a named duration kept in the preset store, e.g. "hourly" -> 1h
type Preset struct {
	Name        string    // Unique lower-case name
	Duration    Duration  // Duration the name stands for
	Description string    // Free text shown in listings
	CreatedAt   time.Time // When the preset was created
	UpdatedAt   time.Time // When the preset was last updated
}

// ValidatePresetName checks that name is usable as a preset name
func ValidatePresetName(name string) error {
	if !presetNamePattern.MatchString(name) {
		return errs.ErrInvalidPresetName
	}
	return nil
}

// NewPreset creates a preset; the name is lower-cased before validation
func NewPreset(name string, duration Duration, description string, timeProvider coreport.TimeProvider) (*Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if err := ValidatePresetName(name); err != nil {
		return nil, err
	}
	if duration.IsZero() {
		return nil, errs.NewDurationError("", "preset duration is required", errs.ErrInvalidMagnitude)
	}

	now := timeProvider.Now()
	return &Preset{
		Name:        name,
		Duration:    duration,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Redefine points the preset at another duration and description
func (p *Preset) Redefine(duration Duration, description string, timeProvider coreport.TimeProvider) error {
	if duration.IsZero() {
		return errs.NewDurationError("", "preset duration is required", errs.ErrInvalidMagnitude)
	}
	p.Duration = duration
	p.Description = strings.TrimSpace(description)
	p.UpdatedAt = timeProvider.Now()
	return nil
}
