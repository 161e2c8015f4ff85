// Package quadratic solves the master quadratic x² − k·G*²·x + k·G*³ = 0
// whose larger root the framework identifies with 1/α.
// See manuscript Chapter 14.
package quadratic

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput indicates a non-finite or non-positive G*.
	ErrInvalidInput = errors.New("quadratic: invalid input")

	// ErrNoRealRoots indicates a negative discriminant. Reported
	// explicitly, never as NaN roots.
	ErrNoRealRoots = errors.New("quadratic: negative discriminant, no real roots")
)

// Coefficients of ax² + bx + c = 0. For the master quadratic a is
// always 1 and b, c are fully determined by G* and k.
type Coefficients struct {
	A float64
	B float64
	C float64
}

// ForGStar builds the master-quadratic coefficients b = −k·G*²,
// c = k·G*³. G* must be finite and positive.
func ForGStar(gStar, k float64) (Coefficients, error) {
	if math.IsNaN(gStar) || math.IsInf(gStar, 0) || gStar <= 0 {
		return Coefficients{}, fmt.Errorf("%w: gStar must be finite and positive, got %v", ErrInvalidInput, gStar)
	}
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return Coefficients{}, fmt.Errorf("%w: k must be finite, got %v", ErrInvalidInput, k)
	}
	g2 := gStar * gStar
	return Coefficients{A: 1, B: -k * g2, C: k * g2 * gStar}, nil
}

// Discriminant returns b² − 4ac.
func (c Coefficients) Discriminant() float64 {
	return c.B*c.B - 4*c.A*c.C
}

// RootPair holds the two real roots, labeled: XPlus = (−b+√D)/2a is the
// larger root whenever D > 0; a zero discriminant repeats the value.
type RootPair struct {
	XPlus  float64
	XMinus float64
}

// Roots solves the quadratic. A negative discriminant is ErrNoRealRoots.
func (c Coefficients) Roots() (RootPair, error) {
	d := c.Discriminant()
	if d < 0 {
		return RootPair{}, fmt.Errorf("%w: discriminant %v", ErrNoRealRoots, d)
	}
	sq := math.Sqrt(d)
	return RootPair{
		XPlus:  (-c.B + sq) / (2 * c.A),
		XMinus: (-c.B - sq) / (2 * c.A),
	}, nil
}

// Solve composes ForGStar and Roots.
func Solve(gStar, k float64) (RootPair, error) {
	coef, err := ForGStar(gStar, k)
	if err != nil {
		return RootPair{}, err
	}
	return coef.Roots()
}

// VietaResidual returns the larger of the two relative residuals of
// Vieta's relations (sum = −b/a, product = c/a). Correct roots keep this
// within ~1e-9.
func (r RootPair) VietaResidual(c Coefficients) float64 {
	sumWant := -c.B / c.A
	prodWant := c.C / c.A
	sumRes := relResidual(r.XPlus+r.XMinus, sumWant)
	prodRes := relResidual(r.XPlus*r.XMinus, prodWant)
	return math.Max(sumRes, prodRes)
}

func relResidual(got, want float64) float64 {
	if want == 0 {
		return math.Abs(got)
	}
	return math.Abs(got-want) / math.Abs(want)
}
