package calendar

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
	errs "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
)

// Walk collects consecutive spans from at. A missing or oversized limit is
// replaced by the configured maximum.
func (s *Service) Walk(ctx context.Context, ref, at string, opts entity.WalkOptions) ([]entity.Interval, error) {
	d, _, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	t, err := s.resolveTime(at)
	if err != nil {
		return nil, err
	}

	if opts.Limit <= 0 || opts.Limit > s.limits.MaxWalkLimit {
		opts.Limit = s.limits.MaxWalkLimit
	}

	spans := make([]entity.Interval, 0, opts.Limit)
	for span := range d.Walk(t, opts) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}

	s.logger.Info("Walk completed", map[string]any{
		"duration": d.String(),
		"at":       t,
		"spans":    len(spans),
		"backward": opts.Backward,
	})
	return spans, nil
}

// Iterate collects the spans tiling iv
func (s *Service) Iterate(ctx context.Context, ref string, iv entity.Interval, opts entity.IterateOptions) ([]entity.Interval, error) {
	d, _, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	var spans []entity.Interval
	for span := range d.Iterate(iv, opts) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(spans) == s.limits.MaxIterateItems {
			s.logger.Warn("Iteration exceeds limit", map[string]any{
				"duration": d.String(),
				"interval": iv.String(),
				"limit":    s.limits.MaxIterateItems,
			})
			return nil, fmt.Errorf("%w: interval %s holds more than %d spans of %s",
				errs.ErrInvalidRequest, iv, s.limits.MaxIterateItems, d)
		}
		spans = append(spans, span)
	}

	s.logger.Info("Iteration completed", map[string]any{
		"duration": d.String(),
		"interval": iv.String(),
		"spans":    len(spans),
	})
	return spans, nil
}

// Count returns how many spans tile iv
func (s *Service) Count(ctx context.Context, ref string, iv entity.Interval, startOpen bool) (int, error) {
	d, _, err := s.resolve(ctx, ref)
	if err != nil {
		return 0, err
	}

	n := d.Count(iv, startOpen)
	s.logger.Info("Spans counted", map[string]any{
		"duration": d.String(),
		"interval": iv.String(),
		"count":    n,
	})
	return n, nil
}

// Pad widens iv by whole spans on each side
func (s *Service) Pad(ctx context.Context, ref string, iv entity.Interval, start, end int) (entity.Interval, error) {
	d, _, err := s.resolve(ctx, ref)
	if err != nil {
		return entity.Interval{}, err
	}

	padded := d.Pad(iv, start, end)
	s.logger.Info("Interval padded", map[string]any{
		"duration": d.String(),
		"interval": iv.String(),
		"padded":   padded.String(),
	})
	return padded, nil
}
