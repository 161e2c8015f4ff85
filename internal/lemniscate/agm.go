// AGM route to G*: the complete elliptic integral K(1/√2) computed by the
// arithmetic–geometric mean, then G* = 2√2·K(1/√2)/√π.
package lemniscate

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonConvergence indicates the AGM iteration exhausted its budget
// before reaching the target tolerance.
var ErrNonConvergence = errors.New("lemniscate: AGM iteration did not converge")

// ErrInvalidModulus indicates a modulus outside [0, 1).
var ErrInvalidModulus = errors.New("lemniscate: elliptic modulus must satisfy 0 <= k < 1")

// agmTolerance stops the iteration once |a−b| <= tol·a. The AGM converges
// quadratically, so a handful of iterations reaches float64 precision.
const agmTolerance = 1e-15

// DefaultAGMIterations is a comfortable budget for float64 convergence.
const DefaultAGMIterations = 32

// EllipticKAGM computes the complete elliptic integral of the first kind
// K(k) by AGM iteration: K(k) = π / (2·AGM(1, √(1−k²))).
// Exceeding maxIter without convergence is an error, never a stale value.
func EllipticKAGM(k float64, maxIter int) (float64, error) {
	if math.IsNaN(k) || k < 0 || k >= 1 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidModulus, k)
	}
	a := 1.0
	b := math.Sqrt(1 - k*k)
	for i := 0; i < maxIter; i++ {
		if math.Abs(a-b) <= agmTolerance*a {
			return math.Pi / (2 * a), nil
		}
		a, b = 0.5*(a+b), math.Sqrt(a*b)
	}
	return 0, fmt.Errorf("%w: budget %d iterations, residual %v", ErrNonConvergence, maxIter, math.Abs(a-b))
}

// GStarAGM derives G* through K(1/√2), which equals Γ(1/4)²/(4√π).
// Agrees with GStar to float64 precision when the budget suffices.
func GStarAGM(maxIter int) (float64, error) {
	k, err := EllipticKAGM(1/math.Sqrt2, maxIter)
	if err != nil {
		return 0, err
	}
	return 2 * math.Sqrt2 * k / math.Sqrt(math.Pi), nil
}
