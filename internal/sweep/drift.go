// Correlated drift sweep: instead of independent draws, (G*, k) wander
// along a smooth seeded noise path, modeling slow instrument-style drift
// through the parameter window.
package sweep

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// DriftConfig configures the correlated drift sweep. Deterministic from
// its seed: two independent noise layers drive G* and k.
type DriftConfig struct {
	Seed        int64
	Steps       int
	GStar       float64
	GStarVarPct float64
	KCenter     float64
	KVar        float64
	Reference   float64
}

// driftStride is the parameter-space distance between consecutive noise
// samples; small enough that adjacent steps stay correlated.
const driftStride = 0.05

// Drift walks the perturbation window along two seeded simplex-noise
// paths and evaluates the pipeline at each step. Unlike MonteCarlo,
// consecutive samples are correlated; like it, no-real-root samples are
// retained with PPM = +Inf.
func Drift(cfg DriftConfig) ([]Sample, error) {
	if cfg.Steps < 1 {
		return nil, fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, cfg.Steps)
	}
	if math.IsNaN(cfg.GStar) || math.IsInf(cfg.GStar, 0) || cfg.GStar <= 0 {
		return nil, fmt.Errorf("%w: gStar must be finite and positive, got %v", ErrInvalidConfig, cfg.GStar)
	}
	if cfg.GStarVarPct < 0 || cfg.GStarVarPct >= 100 || math.IsNaN(cfg.GStarVarPct) {
		return nil, fmt.Errorf("%w: gStar variation must be in [0, 100) percent, got %v", ErrInvalidConfig, cfg.GStarVarPct)
	}
	if cfg.KVar < 0 {
		return nil, fmt.Errorf("%w: k variation must be non-negative, got %v", ErrInvalidConfig, cfg.KVar)
	}
	if cfg.Reference == 0 || math.IsNaN(cfg.Reference) || math.IsInf(cfg.Reference, 0) {
		return nil, fmt.Errorf("%w: reference must be finite and non-zero, got %v", ErrInvalidConfig, cfg.Reference)
	}

	// Two independent noise layers with offset seeds, one per parameter.
	gNoise := opensimplex.NewNormalized(cfg.Seed)
	kNoise := opensimplex.NewNormalized(cfg.Seed + 1)

	samples := make([]Sample, cfg.Steps)
	for i := 0; i < cfg.Steps; i++ {
		t := float64(i) * driftStride
		// Normalized noise is in [0, 1]; recenter to [-1, 1].
		gu := 2*gNoise.Eval2(t, 0) - 1
		ku := 2*kNoise.Eval2(t, 0) - 1
		g := cfg.GStar * (1 + gu*cfg.GStarVarPct/100)
		k := cfg.KCenter + ku*cfg.KVar
		s, err := evaluate(g, k, cfg.Reference)
		if err != nil {
			return nil, err
		}
		samples[i] = s
	}
	return samples, nil
}
