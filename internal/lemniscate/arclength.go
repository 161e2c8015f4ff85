// Arc-length route to G*: sample the Lemniscate-Alpha harmonic curve,
// sum polyline segment lengths, and scale by T(13)/(8·T(13)+4).
package lemniscate

import (
	"errors"
	"fmt"
	"math"
)

// ErrTooFewSamples indicates an arc-length sample count below 2.
var ErrTooFewSamples = errors.New("lemniscate: arc length needs at least 2 curve samples")

// Harmonic decomposition of the Lemniscate-Alpha curve. Frequencies are
// powers of two; amplitudes come from the framework integer ratios.
var (
	curveFrequencies = []float64{1, 2, 4, 8, 16}
	curveXAmplitudes = []float64{1.0, 0.5, 0.5, 2.0 / 5.0, 1.0 / 16.0}
	curveYAmplitudes = []float64{1.0, -0.5, 0.5, -7.0 / 20.0, 1.0 / 16.0}
)

// arcScaleFactor maps the curve's arc length onto G*: T(13)/(8·T(13)+4).
const arcScaleFactor = 91.0 / 732.0

// CurvePoint returns the Lemniscate-Alpha curve position at parameter t.
func CurvePoint(t float64) (x, y float64) {
	for i, f := range curveFrequencies {
		x += curveXAmplitudes[i] * math.Cos(f*t)
		y += curveYAmplitudes[i] * math.Sin(f*t)
	}
	return x, y
}

// ArcLengthEstimate approximates G* by the scaled polyline arc length of
// the curve sampled at n parameter values over [0, 2π]. The estimate
// converges toward GStar as n grows; it underestimates for coarse n
// because chords are shorter than arcs.
func ArcLengthEstimate(n int) (float64, error) {
	if n < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrTooFewSamples, n)
	}
	step := 2 * math.Pi / float64(n-1)
	length := 0.0
	prevX, prevY := CurvePoint(0)
	for i := 1; i < n; i++ {
		x, y := CurvePoint(float64(i) * step)
		dx := x - prevX
		dy := y - prevY
		length += math.Sqrt(dx*dx + dy*dy)
		prevX, prevY = x, y
	}
	return length * arcScaleFactor, nil
}
