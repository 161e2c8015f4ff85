// Package metric expresses how far a derived value sits from a reference
// value, in parts-per-million or percent.
package metric

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrZeroReference indicates a reference value of zero (division by zero).
	ErrZeroReference = errors.New("metric: reference value is zero")

	// ErrInvalidInput indicates a non-finite derived or reference value.
	ErrInvalidInput = errors.New("metric: non-finite input")
)

// Unit tags a metric value for presentation. The unit is a convention,
// not a computed property.
type Unit string

const (
	UnitPPM     Unit = "ppm"
	UnitPercent Unit = "percent"
)

// Metric is a relative-deviation value tagged with its unit.
type Metric struct {
	Value float64
	Unit  Unit
}

func (m Metric) String() string {
	return fmt.Sprintf("%.6g %s", m.Value, m.Unit)
}

func check(derived, reference float64) error {
	if math.IsNaN(derived) || math.IsInf(derived, 0) || math.IsNaN(reference) || math.IsInf(reference, 0) {
		return fmt.Errorf("%w: derived=%v reference=%v", ErrInvalidInput, derived, reference)
	}
	if reference == 0 {
		return ErrZeroReference
	}
	return nil
}

// PPM returns |derived − reference| / |reference| × 1e6. The magnitude
// of the reference keeps the metric non-negative for negative
// references, so threshold comparisons cannot be satisfied vacuously.
func PPM(derived, reference float64) (float64, error) {
	if err := check(derived, reference); err != nil {
		return 0, err
	}
	return math.Abs(derived-reference) / math.Abs(reference) * 1e6, nil
}

// Percent returns |derived − reference| / |reference| × 100.
func Percent(derived, reference float64) (float64, error) {
	if err := check(derived, reference); err != nil {
		return 0, err
	}
	return math.Abs(derived-reference) / math.Abs(reference) * 100, nil
}

// SigmaDeviation returns the deviation in units of the experimental
// uncertainty.
func SigmaDeviation(derived, reference, uncertainty float64) (float64, error) {
	if err := check(derived, reference); err != nil {
		return 0, err
	}
	if uncertainty <= 0 || math.IsNaN(uncertainty) || math.IsInf(uncertainty, 0) {
		return 0, fmt.Errorf("%w: uncertainty must be finite and positive, got %v", ErrInvalidInput, uncertainty)
	}
	return math.Abs(derived-reference) / uncertainty, nil
}
