package entity

import (
	errs "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
)

// Seconds returns the duration as elapsed seconds. Month and year based
// durations, and others whose spans vary, report their longest span.
func (d Duration) Seconds() float64 {
	if s := d.fixedSeconds(); s > 0 {
		return s
	}
	return d.MaxSeconds()
}

// Add returns seconds plus x
func (d Duration) Add(x float64) float64 {
	return d.Seconds() + x
}

// Sub returns seconds minus x
func (d Duration) Sub(x float64) float64 {
	return d.Seconds() - x
}

// Mul returns seconds times x
func (d Duration) Mul(x float64) float64 {
	return d.Seconds() * x
}

// Neg returns the negated seconds
func (d Duration) Neg() float64 {
	return -d.Seconds()
}

// Abs returns the absolute seconds; magnitudes are always positive
func (d Duration) Abs() float64 {
	return d.Seconds()
}

// DivideInto returns x divided by the duration's seconds
func (d Duration) DivideInto(x float64) float64 {
	return x / d.Seconds()
}

// Div divides the duration's seconds by x. It refuses durations whose spans
// do not all have the same elapsed length.
func (d Duration) Div(x float64) (float64, error) {
	if !d.HasExactSeconds() {
		return 0, errs.NewIncompatibleOperationError(d.String(), "divide", d.MinSeconds(), d.MaxSeconds())
	}
	if x == 0 {
		return 0, errs.NewDurationError(d.String(), "division by zero", errs.ErrInvalidInput)
	}
	return d.Seconds() / x, nil
}
