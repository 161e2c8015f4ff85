// Package config loads the immutable study configuration. All parameters
// live in one explicit value handed to callers — there is no process-wide
// mutable state.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/lemniscate-alpha/internal/reference"
)

// ErrInvalidStudy indicates a study configuration rejected at load time.
var ErrInvalidStudy = errors.New("config: invalid study")

// Study holds the parameters of a verification study: the nominal lattice
// coefficient, the comparison reference, and the look-elsewhere settings.
type Study struct {
	K            float64 `yaml:"k"`
	Reference    float64 `yaml:"reference"`
	Seed         int64   `yaml:"seed"`
	Samples      int     `yaml:"samples"`
	GStarVarPct  float64 `yaml:"gstar_var_pct"`
	KVar         float64 `yaml:"k_var"`
	ThresholdPPM float64 `yaml:"threshold_ppm"`
	Workers      int     `yaml:"workers"`
}

// DefaultStudy returns the manuscript's published study parameters.
func DefaultStudy() Study {
	return Study{
		K:            reference.K,
		Reference:    reference.AlphaInv,
		Seed:         12345,
		Samples:      50000,
		GStarVarPct:  1.0,
		KVar:         2.0,
		ThresholdPPM: 1.26,
		Workers:      1,
	}
}

// LoadStudy reads a YAML study file over the defaults: absent keys keep
// their default values.
func LoadStudy(path string) (Study, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Study{}, fmt.Errorf("read study: %w", err)
	}
	s := DefaultStudy()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Study{}, fmt.Errorf("parse study: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Study{}, err
	}
	return s, nil
}

// Validate rejects out-of-range study parameters.
func (s Study) Validate() error {
	if s.Samples <= 0 {
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidStudy, s.Samples)
	}
	if s.GStarVarPct < 0 || s.GStarVarPct >= 100 || math.IsNaN(s.GStarVarPct) {
		return fmt.Errorf("%w: gstar_var_pct must be in [0, 100), got %v", ErrInvalidStudy, s.GStarVarPct)
	}
	if s.KVar < 0 || math.IsNaN(s.KVar) {
		return fmt.Errorf("%w: k_var must be non-negative, got %v", ErrInvalidStudy, s.KVar)
	}
	if s.ThresholdPPM <= 0 || math.IsNaN(s.ThresholdPPM) {
		return fmt.Errorf("%w: threshold_ppm must be positive, got %v", ErrInvalidStudy, s.ThresholdPPM)
	}
	if s.Reference == 0 || math.IsNaN(s.Reference) || math.IsInf(s.Reference, 0) {
		return fmt.Errorf("%w: reference must be finite and non-zero, got %v", ErrInvalidStudy, s.Reference)
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidStudy, s.Workers)
	}
	return nil
}
