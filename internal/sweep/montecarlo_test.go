package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/lemniscate-alpha/internal/lemniscate"
	"github.com/talgya/lemniscate-alpha/internal/reference"
)

func nominalConfig(samples int) MonteCarloConfig {
	return MonteCarloConfig{
		Samples:     samples,
		Seed:        12345,
		GStar:       lemniscate.GStar,
		GStarVarPct: 1.0,
		KCenter:     16,
		KVar:        2.0,
		Threshold:   1.26,
		Reference:   reference.AlphaInv,
	}
}

func TestMonteCarloDeterminism(t *testing.T) {
	ctx := context.Background()
	cfg := nominalConfig(2000)

	first, err := MonteCarlo(ctx, cfg)
	require.NoError(t, err)
	second, err := MonteCarlo(ctx, cfg)
	require.NoError(t, err)

	require.Equal(t, first.MatchFraction, second.MatchFraction)
	require.Equal(t, first.Matches, second.Matches)
	require.Equal(t, first.NoRealRoots, second.NoRealRoots)
	require.Equal(t, first.Samples, second.Samples, "sample sequences must be bit-identical")
}

func TestMonteCarloParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	seq := nominalConfig(3000)
	par := seq
	par.Workers = 4

	seqRes, err := MonteCarlo(ctx, seq)
	require.NoError(t, err)
	parRes, err := MonteCarlo(ctx, par)
	require.NoError(t, err)

	require.Equal(t, seqRes.MatchFraction, parRes.MatchFraction)
	require.Equal(t, seqRes.Samples, parRes.Samples, "worker count must not perturb the draws")
}

func TestMonteCarloValidation(t *testing.T) {
	base := nominalConfig(100)
	mutate := []func(*MonteCarloConfig){
		func(c *MonteCarloConfig) { c.Samples = 0 },
		func(c *MonteCarloConfig) { c.Samples = -5 },
		func(c *MonteCarloConfig) { c.GStar = 0 },
		func(c *MonteCarloConfig) { c.GStar = math.NaN() },
		func(c *MonteCarloConfig) { c.GStarVarPct = -1 },
		func(c *MonteCarloConfig) { c.GStarVarPct = 100 },
		func(c *MonteCarloConfig) { c.KVar = -0.5 },
		func(c *MonteCarloConfig) { c.Threshold = 0 },
		func(c *MonteCarloConfig) { c.Reference = 0 },
		func(c *MonteCarloConfig) { c.Workers = -1 },
	}
	for i, m := range mutate {
		cfg := base
		m(&cfg)
		_, err := MonteCarlo(context.Background(), cfg)
		require.ErrorIs(t, err, ErrInvalidConfig, "case %d", i)
	}
}

// Samples landing in the negative-discriminant region stay in the
// denominator as non-matches; nothing is resampled or dropped.
func TestMatchFractionNoRealRootPolicy(t *testing.T) {
	// k·G* stays below 4 for every draw, so no sample has real roots.
	cfg := MonteCarloConfig{
		Samples:     500,
		Seed:        7,
		GStar:       1.0,
		GStarVarPct: 1.0,
		KCenter:     2.0,
		KVar:        1.0,
		Threshold:   1000,
		Reference:   reference.AlphaInv,
	}
	res, err := MonteCarlo(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, res.Samples, cfg.Samples)
	require.Equal(t, cfg.Samples, res.NoRealRoots)
	require.Equal(t, 0, res.Matches)
	require.Equal(t, 0.0, res.MatchFraction)
	for _, s := range res.Samples {
		require.True(t, s.NoRealRoot)
		require.True(t, math.IsInf(s.PPM, 1))
	}
}

func TestMonteCarloAllMatchUnderLooseThreshold(t *testing.T) {
	cfg := nominalConfig(1000)
	cfg.GStarVarPct = 0.1
	cfg.KVar = 0.1
	cfg.Threshold = 1e9
	res, err := MonteCarlo(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 0, res.NoRealRoots)
	require.Equal(t, 1.0, res.MatchFraction)
}

func TestBestOfN(t *testing.T) {
	// A single trial is exactly p1, including values where
	// 1−(1−p1) rounds away from p1.
	for _, p1 := range []float64{0.3, 0.1, 1.26e-4} {
		p, err := BestOfN(p1, 1)
		if err != nil {
			t.Fatalf("BestOfN(%v, 1): %v", p1, err)
		}
		if p != p1 {
			t.Fatalf("BestOfN(%v, 1) = %v, want exactly p1", p1, p)
		}
	}

	prev := 0.0
	for _, n := range []int{1, 2, 5, 10, 100, 1000} {
		pn, err := BestOfN(0.05, n)
		if err != nil {
			t.Fatalf("BestOfN(0.05, %d): %v", n, err)
		}
		if pn <= prev {
			t.Fatalf("BestOfN not strictly increasing at n=%d: %v <= %v", n, pn, prev)
		}
		prev = pn
	}

	limit, err := BestOfN(0.01, 2000)
	if err != nil {
		t.Fatalf("BestOfN limit: %v", err)
	}
	if limit < 0.9999 {
		t.Fatalf("BestOfN(0.01, 2000) = %v, want near 1", limit)
	}
}

func TestBestOfNDomain(t *testing.T) {
	cases := []struct {
		p1 float64
		n  int
	}{
		{-0.1, 10},
		{1.1, 10},
		{math.NaN(), 10},
		{0.5, 0},
		{0.5, -3},
	}
	for _, tc := range cases {
		if _, err := BestOfN(tc.p1, tc.n); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("BestOfN(%v, %d): want ErrInvalidConfig, got %v", tc.p1, tc.n, err)
		}
	}
}

func TestMakeHistogram(t *testing.T) {
	samples := []Sample{
		{PPM: 1.0},
		{PPM: 2.0},
		{PPM: 3.0},
		{PPM: 10.0},
		{NoRealRoot: true, PPM: math.Inf(1)},
	}
	h, err := MakeHistogram(samples, 3)
	require.NoError(t, err)
	require.Equal(t, 1, h.Excluded)

	total := 0
	for _, c := range h.Counts {
		total += c
	}
	require.Equal(t, 4, total, "every real-root sample lands in exactly one bin")

	_, err = MakeHistogram([]Sample{{NoRealRoot: true}}, 3)
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = MakeHistogram(samples, 0)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestHeatmapStudy(t *testing.T) {
	cfg := HeatmapConfig{
		GStar:          lemniscate.GStar,
		KCenter:        16,
		GVarsPct:       []float64{0.1, 1.0},
		KVars:          []float64{0.5, 2.0},
		SamplesPerCell: 500,
		BaseSeed:       24680,
		Threshold:      1.26,
		Reference:      reference.AlphaInv,
	}
	first, err := HeatmapStudy(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, first.Fractions, 2)
	for _, row := range first.Fractions {
		require.Len(t, row, 2)
		for _, f := range row {
			require.GreaterOrEqual(t, f, 0.0)
			require.LessOrEqual(t, f, 1.0)
		}
	}

	second, err := HeatmapStudy(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, first.Fractions, second.Fractions)
}
