package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
	errs "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
)

// Limits bound how many spans a single call may produce
type Limits struct {
	MaxWalkLimit    int
	MaxIterateItems int
}

// DefaultLimits are used when configuration leaves a limit unset
func DefaultLimits() Limits {
	return Limits{MaxWalkLimit: 1000, MaxIterateItems: 10000}
}

// Service implements the calendar use case over the duration engine
type Service struct {
	presetRepo   persistence.PresetRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	limits       Limits
}

// NewService creates a new calendar service. presetRepo may be nil, in which
// case references must be duration texts.
func NewService(
	presetRepo persistence.PresetRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	limits Limits,
) *Service {
	defaults := DefaultLimits()
	if limits.MaxWalkLimit <= 0 {
		limits.MaxWalkLimit = defaults.MaxWalkLimit
	}
	if limits.MaxIterateItems <= 0 {
		limits.MaxIterateItems = defaults.MaxIterateItems
	}
	return &Service{
		presetRepo:   presetRepo,
		timeProvider: timeProvider,
		logger:       logger,
		limits:       limits,
	}
}

var _ usecase.CalendarUseCase = (*Service)(nil)

// resolve turns a reference into a duration. Duration text wins over a preset
// of the same name; when neither matches the parse error is returned.
func (s *Service) resolve(ctx context.Context, ref string) (entity.Duration, string, error) {
	d, parseErr := entity.Parse(ref)
	if parseErr == nil {
		return d, "", nil
	}
	if s.presetRepo == nil {
		return entity.Duration{}, "", parseErr
	}

	name := strings.ToLower(strings.TrimSpace(ref))
	if entity.ValidatePresetName(name) != nil {
		return entity.Duration{}, "", parseErr
	}
	preset, err := s.presetRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, errs.ErrPresetNotFound) {
			return entity.Duration{}, "", parseErr
		}
		return entity.Duration{}, "", err
	}

	s.logger.Debug("Duration resolved from preset", map[string]any{
		"preset":   preset.Name,
		"duration": preset.Duration.String(),
	})
	return preset.Duration, preset.Name, nil
}

// resolveTime reads a timestamp reference; an empty one means now
func (s *Service) resolveTime(at string) (float64, error) {
	if strings.TrimSpace(at) == "" {
		return entity.SecondsOf(s.timeProvider.Now()), nil
	}
	return entity.Timestamp(at)
}

// Describe resolves ref and reports its classification
func (s *Service) Describe(ctx context.Context, ref string) (*usecase.DurationInfo, error) {
	d, preset, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	info := &usecase.DurationInfo{
		Duration:           d,
		Preset:             preset,
		IsUniform:          d.IsUniform(),
		IsCalendarRequired: d.IsCalendarRequired(),
		HasExactSeconds:    d.HasExactSeconds(),
		MinSeconds:         d.MinSeconds(),
		MaxSeconds:         d.MaxSeconds(),
		Seconds:            d.Seconds(),
	}
	if parent, ok := d.Parent(); ok {
		info.Parent = parent.String()
	}
	return info, nil
}

// Span returns the span holding at
func (s *Service) Span(ctx context.Context, ref, at string, startOpen bool) (entity.Interval, error) {
	d, _, err := s.resolve(ctx, ref)
	if err != nil {
		return entity.Interval{}, err
	}
	t, err := s.resolveTime(at)
	if err != nil {
		return entity.Interval{}, err
	}

	span := d.SpanDate(t, startOpen)
	s.logger.Info("Span resolved", map[string]any{
		"duration": d.String(),
		"at":       t,
		"span":     span.String(),
	})
	return span, nil
}

// SpanInterval expands iv to whole spans
func (s *Service) SpanInterval(ctx context.Context, ref string, iv entity.Interval, startOpen bool) (entity.Interval, error) {
	d, _, err := s.resolve(ctx, ref)
	if err != nil {
		return entity.Interval{}, err
	}

	span := d.SpanInterval(iv, startOpen)
	s.logger.Info("Interval spanned", map[string]any{
		"duration": d.String(),
		"interval": iv.String(),
		"span":     span.String(),
	})
	return span, nil
}

// Align returns the boundary selected by mode
func (s *Service) Align(ctx context.Context, ref, at string, mode usecase.AlignMode) (float64, error) {
	d, _, err := s.resolve(ctx, ref)
	if err != nil {
		return 0, err
	}
	t, err := s.resolveTime(at)
	if err != nil {
		return 0, err
	}

	var boundary float64
	switch mode {
	case usecase.AlignFloor:
		boundary = d.Floor(t)
	case usecase.AlignCeil:
		boundary = d.Ceil(t)
	case usecase.AlignNext:
		boundary = d.Next(t)
	case usecase.AlignPrevious:
		boundary = d.Previous(t)
	default:
		return 0, fmt.Errorf("%w: unknown align mode %q", errs.ErrInvalidRequest, mode)
	}

	s.logger.Info("Boundary aligned", map[string]any{
		"duration": d.String(),
		"mode":     string(mode),
		"at":       t,
		"boundary": boundary,
	})
	return boundary, nil
}

// Step moves at across count boundaries
func (s *Service) Step(ctx context.Context, ref, at string, count int, backward bool) (float64, error) {
	d, _, err := s.resolve(ctx, ref)
	if err != nil {
		return 0, err
	}
	t, err := s.resolveTime(at)
	if err != nil {
		return 0, err
	}

	result := d.Step(t, count, backward)
	s.logger.Info("Stepped", map[string]any{
		"duration": d.String(),
		"at":       t,
		"count":    count,
		"backward": backward,
		"result":   result,
	})
	return result, nil
}
