package reference

import "testing"

func TestCoefficientDerivationsAgree(t *testing.T) {
	derivations := CoefficientDerivations()
	if len(derivations) != 4 {
		t.Fatalf("expected 4 derivations, got %d", len(derivations))
	}
	for _, d := range derivations {
		if d.Value != 16 {
			t.Fatalf("%s = %d, want 16", d.Name, d.Value)
		}
	}
}

func TestTriangular(t *testing.T) {
	cases := []struct{ n, want int }{
		{B3, 28},
		{B3 + Nc, 55},
		{NEff, 91},
	}
	for _, tc := range cases {
		if got := Triangular(tc.n); got != tc.want {
			t.Fatalf("Triangular(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
