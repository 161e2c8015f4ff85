// Package reference holds the framework integers and the experimental
// comparison values. No arbitrary magic numbers — every derived integer
// traces back to the four pillars {3, 4, 7, 13}.
// See manuscript Chapter 14.
package reference

// Framework integers (the four pillars).
const (
	// Nc is the number of colors — the first FLT-forbidden exponent.
	Nc = 3

	// NBase is the base dimension — the second FLT-forbidden exponent.
	NBase = 4

	// B3 is the QCD beta function coefficient.
	B3 = 7

	// NEff is the effective degrees of freedom (Fibonacci F₇).
	NEff = 13
)

// K is the lattice degrees-of-freedom coefficient of the master
// quadratic, nominally 16.
const K = 16.0

// Experimental values from CODATA 2022 / PDG 2024 used for comparison.
const (
	AlphaInv            = 137.035999177 // 1/α
	AlphaInvUncertainty = 0.000000021
	AlphaS              = 0.1179 // at M_Z
	Sin2ThetaW          = 0.23122
	MElectron           = 0.51099895 // MeV
	MMuon               = 105.6583755
	MProton             = 938.27208816
	MPionCharged        = 139.57039
	MW                  = 80.3692 // GeV
	MZ                  = 91.1876
	MHiggs              = 125.25
)

// CoefficientDerivation is one independent integer derivation of the
// lattice coefficient.
type CoefficientDerivation struct {
	Name  string
	Value int
}

// CoefficientDerivations returns the four routes to 16: Fermat squared,
// binary power, lattice degrees of freedom after Gauss constraints, and
// lemniscate conductor halving.
func CoefficientDerivations() []CoefficientDerivation {
	return []CoefficientDerivation{
		{Name: "Fermat squared: N_base²", Value: NBase * NBase},
		{Name: "binary power: 2^N_base", Value: 1 << NBase},
		// 3 components × 8 vertices, minus one Gauss constraint per vertex.
		{Name: "lattice DoF: 24 − 8", Value: 3*8 - 8},
		// The lemniscate curve has conductor 32.
		{Name: "conductor halving: 32/2", Value: 32 / 2},
	}
}

// Triangular returns the nth triangular number T(n) = n(n+1)/2.
func Triangular(n int) int {
	return n * (n + 1) / 2
}
