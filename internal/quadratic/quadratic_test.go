package quadratic

import (
	"errors"
	"math"
	"testing"
)

func TestVietaInvariant(t *testing.T) {
	cases := []struct {
		name  string
		gStar float64
		k     float64
	}{
		{"nominal", 2.9586751192, 16},
		{"small g", 0.5, 100},
		{"large k", 1.5, 40},
		{"fractional k", 3.0, 7.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			coef, err := ForGStar(tc.gStar, tc.k)
			if err != nil {
				t.Fatalf("ForGStar: %v", err)
			}
			roots, err := coef.Roots()
			if err != nil {
				t.Fatalf("Roots: %v", err)
			}
			if roots.XPlus < roots.XMinus {
				t.Fatalf("root ordering violated: x+ = %v < x− = %v", roots.XPlus, roots.XMinus)
			}
			if res := roots.VietaResidual(coef); res > 1e-9 {
				t.Fatalf("Vieta residual %g exceeds 1e-9", res)
			}
		})
	}
}

func TestRepeatedRoot(t *testing.T) {
	// k·G* = 4 makes the discriminant exactly zero: g=2, k=2.
	coef, err := ForGStar(2, 2)
	if err != nil {
		t.Fatalf("ForGStar: %v", err)
	}
	if d := coef.Discriminant(); d != 0 {
		t.Fatalf("expected zero discriminant, got %v", d)
	}
	roots, err := coef.Roots()
	if err != nil {
		t.Fatalf("zero discriminant must not error, got %v", err)
	}
	if roots.XPlus != roots.XMinus {
		t.Fatalf("repeated root mismatch: x+ = %v, x− = %v", roots.XPlus, roots.XMinus)
	}
	if math.Abs(roots.XPlus-4) > 1e-12 {
		t.Fatalf("repeated root = %v, want 4", roots.XPlus)
	}
}

func TestNoRealRoots(t *testing.T) {
	// 0 < k·G* < 4 forces D = k·G*³·(k·G* − 4) < 0.
	cases := []struct{ gStar, k float64 }{
		{1.0, 1.0},
		{1.0, 3.9},
		{2.9586751192, 1.0},
	}
	for _, tc := range cases {
		_, err := Solve(tc.gStar, tc.k)
		if !errors.Is(err, ErrNoRealRoots) {
			t.Fatalf("g=%v k=%v: want ErrNoRealRoots, got %v", tc.gStar, tc.k, err)
		}
	}
}

func TestInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		gStar float64
		k     float64
	}{
		{"zero gStar", 0, 16},
		{"negative gStar", -2.9, 16},
		{"NaN gStar", math.NaN(), 16},
		{"Inf gStar", math.Inf(1), 16},
		{"NaN k", 2.9, math.NaN()},
		{"Inf k", 2.9, math.Inf(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Solve(tc.gStar, tc.k); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestHeadlineAlphaMatch(t *testing.T) {
	roots, err := Solve(2.9586751192, 16)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	const ref = 137.036
	ppm := math.Abs(roots.XPlus-ref) / ref * 1e6
	if ppm > 2 {
		t.Fatalf("x+ = %.9f deviates %.3f ppm from %v, want <= 2 ppm", roots.XPlus, ppm, ref)
	}
	// The smaller root sits just above the number of colors.
	if math.Floor(roots.XMinus) != 3 {
		t.Fatalf("floor(x−) = %v, want 3 (x− = %.9f)", math.Floor(roots.XMinus), roots.XMinus)
	}
}
