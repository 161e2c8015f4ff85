package lemniscate

import (
	"errors"
	"math"
	"testing"
)

func TestGStarValue(t *testing.T) {
	const want = 2.9586751192 // manuscript headline value
	if math.Abs(GStar-want) > 1e-9 {
		t.Fatalf("GStar = %.12f, want %.10f", GStar, want)
	}
}

func TestGStarAGMMatchesGamma(t *testing.T) {
	got, err := GStarAGM(DefaultAGMIterations)
	if err != nil {
		t.Fatalf("GStarAGM: %v", err)
	}
	if rel := math.Abs(got-GStar) / GStar; rel > 1e-12 {
		t.Fatalf("AGM route %.15f disagrees with Gamma route %.15f (rel %g)", got, GStar, rel)
	}
}

func TestEllipticKAGM(t *testing.T) {
	k0, err := EllipticKAGM(0, DefaultAGMIterations)
	if err != nil {
		t.Fatalf("K(0): %v", err)
	}
	if math.Abs(k0-math.Pi/2) > 1e-15 {
		t.Fatalf("K(0) = %.15f, want π/2", k0)
	}

	kLem, err := EllipticKAGM(1/math.Sqrt2, DefaultAGMIterations)
	if err != nil {
		t.Fatalf("K(1/√2): %v", err)
	}
	const want = 1.854074677301372 // Γ(1/4)²/(4√π)
	if math.Abs(kLem-want) > 1e-12 {
		t.Fatalf("K(1/√2) = %.15f, want %.15f", kLem, want)
	}
}

func TestEllipticKAGMNonConvergence(t *testing.T) {
	for _, budget := range []int{0, 1} {
		if _, err := EllipticKAGM(1/math.Sqrt2, budget); !errors.Is(err, ErrNonConvergence) {
			t.Fatalf("budget %d: want ErrNonConvergence, got %v", budget, err)
		}
	}
}

func TestEllipticKAGMInvalidModulus(t *testing.T) {
	for _, k := range []float64{-0.1, 1.0, 1.5, math.NaN()} {
		if _, err := EllipticKAGM(k, DefaultAGMIterations); !errors.Is(err, ErrInvalidModulus) {
			t.Fatalf("k=%v: want ErrInvalidModulus, got %v", k, err)
		}
	}
}

func TestArcLengthEstimate(t *testing.T) {
	est, err := ArcLengthEstimate(5000)
	if err != nil {
		t.Fatalf("ArcLengthEstimate: %v", err)
	}
	if rel := math.Abs(est-GStar) / GStar; rel > 0.01 {
		t.Fatalf("arc estimate %.6f too far from GStar %.6f (rel %g)", est, GStar, rel)
	}
}

func TestArcLengthEstimateConverges(t *testing.T) {
	coarse, err := ArcLengthEstimate(100)
	if err != nil {
		t.Fatalf("coarse: %v", err)
	}
	fine, err := ArcLengthEstimate(20000)
	if err != nil {
		t.Fatalf("fine: %v", err)
	}
	if math.Abs(fine-GStar) >= math.Abs(coarse-GStar) {
		t.Fatalf("refinement did not converge: coarse err %g, fine err %g",
			math.Abs(coarse-GStar), math.Abs(fine-GStar))
	}
}

func TestArcLengthEstimateTooFewSamples(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		if _, err := ArcLengthEstimate(n); !errors.Is(err, ErrTooFewSamples) {
			t.Fatalf("n=%d: want ErrTooFewSamples, got %v", n, err)
		}
	}
}
