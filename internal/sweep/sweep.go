// Package sweep characterizes how robust the match between the master
// quadratic's larger root and the experimental 1/α is under perturbation
// of its inputs: deterministic grid sweeps, a correlated drift sweep, and
// a seeded Monte Carlo look-elsewhere study.
// See manuscript Chapter 14.
package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/talgya/lemniscate-alpha/internal/lemniscate"
	"github.com/talgya/lemniscate-alpha/internal/metric"
	"github.com/talgya/lemniscate-alpha/internal/quadratic"
)

// ErrInvalidConfig indicates sweep parameters rejected before any
// computation runs.
var ErrInvalidConfig = errors.New("sweep: invalid configuration")

// Sample is one perturbed evaluation of the pipeline: the inputs drawn,
// the resulting roots, and the ppm deviation of XPlus from the reference.
// When the perturbed quadratic has no real roots, NoRealRoot is set and
// PPM is +Inf so the sample can never count as a match.
type Sample struct {
	GStar      float64
	K          float64
	Roots      quadratic.RootPair
	PPM        float64
	NoRealRoot bool
}

// evaluate runs solver + comparator for one (gStar, k) input. Only the
// no-real-roots condition is folded into the sample; anything else
// (invalid gStar, zero reference) is a caller error and propagates.
func evaluate(gStar, k, reference float64) (Sample, error) {
	s := Sample{GStar: gStar, K: k}
	roots, err := quadratic.Solve(gStar, k)
	if errors.Is(err, quadratic.ErrNoRealRoots) {
		s.NoRealRoot = true
		s.PPM = math.Inf(1)
		return s, nil
	}
	if err != nil {
		return Sample{}, err
	}
	ppm, err := metric.PPM(roots.XPlus, reference)
	if err != nil {
		return Sample{}, err
	}
	s.Roots = roots
	s.PPM = ppm
	return s, nil
}

// Point is one grid-sweep evaluation keyed by the swept input value.
type Point struct {
	Input      float64
	XPlus      float64
	PPM        float64
	NoRealRoot bool
}

// CoefficientSweep varies k linearly over [kMin, kMax] in the given number
// of steps and reports the larger root's ppm deviation from reference at
// each value. Exactly reproducible: no randomness.
func CoefficientSweep(gStar, kMin, kMax float64, steps int, reference float64) ([]Point, error) {
	if steps < 2 {
		return nil, fmt.Errorf("%w: steps must be >= 2, got %d", ErrInvalidConfig, steps)
	}
	if kMax <= kMin {
		return nil, fmt.Errorf("%w: need kMin < kMax, got [%v, %v]", ErrInvalidConfig, kMin, kMax)
	}
	points := make([]Point, steps)
	width := (kMax - kMin) / float64(steps-1)
	for i := range points {
		k := kMin + float64(i)*width
		s, err := evaluate(gStar, k, reference)
		if err != nil {
			return nil, err
		}
		points[i] = Point{Input: k, XPlus: s.Roots.XPlus, PPM: s.PPM, NoRealRoot: s.NoRealRoot}
	}
	return points, nil
}

// GStarPerturbationSweep perturbs G* by ppm deltas spanning
// [deltaMinPPM, deltaMaxPPM] and reports the propagated effect on the
// larger root at fixed k. Input of each point is the delta in ppm.
func GStarPerturbationSweep(gStar, deltaMinPPM, deltaMaxPPM float64, steps int, k, reference float64) ([]Point, error) {
	if steps < 2 {
		return nil, fmt.Errorf("%w: steps must be >= 2, got %d", ErrInvalidConfig, steps)
	}
	if deltaMaxPPM <= deltaMinPPM {
		return nil, fmt.Errorf("%w: need deltaMin < deltaMax, got [%v, %v]", ErrInvalidConfig, deltaMinPPM, deltaMaxPPM)
	}
	points := make([]Point, steps)
	width := (deltaMaxPPM - deltaMinPPM) / float64(steps-1)
	for i := range points {
		delta := deltaMinPPM + float64(i)*width
		g := gStar * (1 + delta*1e-6)
		s, err := evaluate(g, k, reference)
		if err != nil {
			return nil, err
		}
		points[i] = Point{Input: delta, XPlus: s.Roots.XPlus, PPM: s.PPM, NoRealRoot: s.NoRealRoot}
	}
	return points, nil
}

// Closest returns the point with the smallest ppm deviation. Points
// without real roots never win. ok is false when every point lacks a
// real root or the slice is empty.
func Closest(points []Point) (best Point, ok bool) {
	for _, p := range points {
		if p.NoRealRoot {
			continue
		}
		if !ok || p.PPM < best.PPM {
			best = p
			ok = true
		}
	}
	return best, ok
}

// ConvergencePoint is one arc-length study evaluation: the curve sample
// count, the G* estimate it yields, and the propagated root deviation.
type ConvergencePoint struct {
	Samples  int
	GStarEst float64
	XPlus    float64
	PPM      float64
}

// ArcLengthConvergence estimates G* by polyline arc length at each sample
// count and propagates the estimate through the quadratic, showing how
// the headline match tightens as the discretization refines.
func ArcLengthConvergence(sampleCounts []int, k, reference float64) ([]ConvergencePoint, error) {
	if len(sampleCounts) == 0 {
		return nil, fmt.Errorf("%w: no sample counts given", ErrInvalidConfig)
	}
	points := make([]ConvergencePoint, 0, len(sampleCounts))
	for _, n := range sampleCounts {
		g, err := lemniscate.ArcLengthEstimate(n)
		if err != nil {
			return nil, err
		}
		s, err := evaluate(g, k, reference)
		if err != nil {
			return nil, err
		}
		points = append(points, ConvergencePoint{Samples: n, GStarEst: g, XPlus: s.Roots.XPlus, PPM: s.PPM})
	}
	return points, nil
}
