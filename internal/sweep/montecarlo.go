// Look-elsewhere Monte Carlo: draw (G*, k) pairs from uniform windows
// around the nominal values and measure how often an unconstrained search
// reproduces the reference as well as the nominal derivation does.
package sweep

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// MonteCarloConfig holds every input of a look-elsewhere run. The seed is
// required and carried into the result so runs are reproducible; there is
// no implicit global generator.
type MonteCarloConfig struct {
	Samples     int     // number of independent draws, must be positive
	Seed        int64   // master seed; per-sample generators derive from it
	GStar       float64 // nominal lemniscatic constant
	GStarVarPct float64 // G* varied uniformly by ±this percent, in [0, 100)
	KCenter     float64 // nominal lattice coefficient
	KVar        float64 // k varied uniformly by ±this absolute delta
	Threshold   float64 // match threshold in ppm, must be positive
	Reference   float64 // experimental comparison value, non-zero
	Workers     int     // 0 or 1 = sequential; >1 shards the index range
}

// Validate rejects a config before any sampling happens.
func (c MonteCarloConfig) Validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidConfig, c.Samples)
	}
	if math.IsNaN(c.GStar) || math.IsInf(c.GStar, 0) || c.GStar <= 0 {
		return fmt.Errorf("%w: gStar must be finite and positive, got %v", ErrInvalidConfig, c.GStar)
	}
	if c.GStarVarPct < 0 || c.GStarVarPct >= 100 || math.IsNaN(c.GStarVarPct) {
		return fmt.Errorf("%w: gStar variation must be in [0, 100) percent, got %v", ErrInvalidConfig, c.GStarVarPct)
	}
	if c.KVar < 0 || math.IsNaN(c.KVar) {
		return fmt.Errorf("%w: k variation must be non-negative, got %v", ErrInvalidConfig, c.KVar)
	}
	if c.Threshold <= 0 || math.IsNaN(c.Threshold) {
		return fmt.Errorf("%w: threshold must be positive, got %v", ErrInvalidConfig, c.Threshold)
	}
	if c.Reference == 0 || math.IsNaN(c.Reference) || math.IsInf(c.Reference, 0) {
		return fmt.Errorf("%w: reference must be finite and non-zero, got %v", ErrInvalidConfig, c.Reference)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Result aggregates one look-elsewhere run. Samples without a real root
// stay in the denominator and count as non-matches; they are tallied in
// NoRealRoots so nothing is dropped silently.
type Result struct {
	Config        MonteCarloConfig
	Samples       []Sample
	Matches       int
	NoRealRoots   int
	MatchFraction float64
}

// P1 is the single-trial match probability estimated by this run.
func (r *Result) P1() float64 { return r.MatchFraction }

// subSeed derives a per-sample seed from the master seed and sample index
// (SplitMix64 finalizer). Every sample owns its generator, so shard
// boundaries cannot perturb the draws: parallel runs are bit-identical to
// sequential ones.
func subSeed(master int64, index uint64) int64 {
	z := uint64(master) + (index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

// draw produces the i-th sample's perturbed inputs.
func (c MonteCarloConfig) draw(i int) (gStar, k float64) {
	rng := rand.New(rand.NewSource(subSeed(c.Seed, uint64(i))))
	gu := 2*rng.Float64() - 1
	ku := 2*rng.Float64() - 1
	gStar = c.GStar * (1 + gu*c.GStarVarPct/100)
	k = c.KCenter + ku*c.KVar
	return gStar, k
}

// MonteCarlo runs the look-elsewhere study. Identical configs produce
// bit-identical results regardless of worker count.
func MonteCarlo(ctx context.Context, cfg MonteCarloConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	samples := make([]Sample, cfg.Samples)

	workers := cfg.Workers
	if workers <= 1 {
		for i := 0; i < cfg.Samples; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			g, k := cfg.draw(i)
			s, err := evaluate(g, k, cfg.Reference)
			if err != nil {
				return nil, err
			}
			samples[i] = s
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		shard := (cfg.Samples + workers - 1) / workers
		for w := 0; w < workers; w++ {
			lo := w * shard
			hi := lo + shard
			if hi > cfg.Samples {
				hi = cfg.Samples
			}
			if lo >= hi {
				break
			}
			g.Go(func() error {
				for i := lo; i < hi; i++ {
					if err := gctx.Err(); err != nil {
						return err
					}
					gs, k := cfg.draw(i)
					s, err := evaluate(gs, k, cfg.Reference)
					if err != nil {
						return err
					}
					samples[i] = s
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	res := &Result{Config: cfg, Samples: samples}
	for _, s := range samples {
		if s.NoRealRoot {
			res.NoRealRoots++
			continue
		}
		if s.PPM <= cfg.Threshold {
			res.Matches++
		}
	}
	res.MatchFraction = float64(res.Matches) / float64(cfg.Samples)
	return res, nil
}

// BestOfN returns 1 − (1−p1)^n: the probability that at least one of n
// independent trials matches, given single-trial probability p1. A
// closed-form amplification, not re-sampled.
func BestOfN(p1 float64, n int) (float64, error) {
	if math.IsNaN(p1) || p1 < 0 || p1 > 1 {
		return 0, fmt.Errorf("%w: p1 must be in [0, 1], got %v", ErrInvalidConfig, p1)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: n must be >= 1, got %d", ErrInvalidConfig, n)
	}
	if n == 1 {
		// 1 − (1−p1) loses an ulp in float arithmetic; a single trial
		// is exactly p1.
		return p1, nil
	}
	return 1 - math.Pow(1-p1, float64(n)), nil
}

// Histogram bins the finite ppm deviations of a sample set into
// fixed-width bins over [min, max]. Samples without a real root are
// excluded from the bins and reported in Excluded.
type Histogram struct {
	Min      float64
	BinWidth float64
	Counts   []int
	Excluded int
}

// MakeHistogram builds a histogram with the given bin count.
func MakeHistogram(samples []Sample, bins int) (*Histogram, error) {
	if bins < 1 {
		return nil, fmt.Errorf("%w: bins must be >= 1, got %d", ErrInvalidConfig, bins)
	}
	min := math.Inf(1)
	max := math.Inf(-1)
	finite := 0
	for _, s := range samples {
		if s.NoRealRoot {
			continue
		}
		finite++
		if s.PPM < min {
			min = s.PPM
		}
		if s.PPM > max {
			max = s.PPM
		}
	}
	if finite == 0 {
		return nil, fmt.Errorf("%w: no samples with real roots to bin", ErrInvalidConfig)
	}
	width := (max - min) / float64(bins)
	if width == 0 {
		width = 1 // all values identical; everything lands in bin 0
	}
	h := &Histogram{Min: min, BinWidth: width, Counts: make([]int, bins)}
	for _, s := range samples {
		if s.NoRealRoot {
			h.Excluded++
			continue
		}
		idx := int((s.PPM - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		h.Counts[idx]++
	}
	return h, nil
}
