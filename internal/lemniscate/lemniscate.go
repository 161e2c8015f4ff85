// Package lemniscate derives the lemniscatic constant G* that seeds the
// master quadratic. Three independent routes are provided: the closed-form
// Gamma identity, the elliptic-integral identity via the AGM iteration,
// and a polyline arc-length estimate of the Lemniscate-Alpha curve.
// See manuscript Chapter 14.
package lemniscate

import "math"

// GammaQuarter is Γ(1/4).
var GammaQuarter = math.Gamma(0.25)

// GStar is the lemniscatic constant √2·Γ(1/4)²/(2π) ≈ 2.9586751192.
var GStar = math.Sqrt2 * GammaQuarter * GammaQuarter / (2 * math.Pi)

// Varpi is the alternative notation ϖ used in the manuscript text.
var Varpi = GStar
