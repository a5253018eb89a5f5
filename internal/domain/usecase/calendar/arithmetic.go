package calendar

import (
	"context"
	"fmt"

	errs "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
)

// Evaluate applies op to the duration's seconds and operand
func (s *Service) Evaluate(ctx context.Context, ref string, op usecase.ArithmeticOp, operand float64) (float64, error) {
	d, _, err := s.resolve(ctx, ref)
	if err != nil {
		return 0, err
	}

	var result float64
	switch op {
	case usecase.OpSeconds:
		result = d.Seconds()
	case usecase.OpAdd:
		result = d.Add(operand)
	case usecase.OpSub:
		result = d.Sub(operand)
	case usecase.OpMul:
		result = d.Mul(operand)
	case usecase.OpDivideInto:
		result = d.DivideInto(operand)
	case usecase.OpNeg:
		result = d.Neg()
	case usecase.OpAbs:
		result = d.Abs()
	case usecase.OpDiv:
		result, err = d.Div(operand)
		if err != nil {
			s.logger.Warn("Division refused", map[string]any{
				"duration": d.String(),
				"operand":  operand,
				"error":    err.Error(),
			})
			return 0, err
		}
	default:
		return 0, fmt.Errorf("%w: unknown arithmetic operation %q", errs.ErrInvalidRequest, op)
	}

	if !d.HasExactSeconds() {
		s.logger.Warn("Arithmetic on a variable-length duration uses its longest span", map[string]any{
			"duration":    d.String(),
			"operation":   string(op),
			"min_seconds": d.MinSeconds(),
			"max_seconds": d.MaxSeconds(),
		})
	}

	s.logger.Info("Arithmetic evaluated", map[string]any{
		"duration":  d.String(),
		"operation": string(op),
		"operand":   operand,
		"result":    result,
	})
	return result, nil
}
