// Match-fraction heatmap: the look-elsewhere study repeated over a grid
// of variation windows, one Monte Carlo run per cell.
package sweep

import (
	"context"
	"fmt"
)

// HeatmapConfig spans a grid of (G* variation %, k variation) windows.
// Cell (i, j) runs with seed BaseSeed + i·100 + j so the whole study is
// reproducible from one base seed.
type HeatmapConfig struct {
	GStar          float64
	KCenter        float64
	GVarsPct       []float64
	KVars          []float64
	SamplesPerCell int
	BaseSeed       int64
	Threshold      float64
	Reference      float64
	Workers        int
}

// Heatmap holds the match fraction for each (G* variation, k variation)
// cell, indexed Fractions[i][j] with i over GVarsPct and j over KVars.
type Heatmap struct {
	GVarsPct  []float64
	KVars     []float64
	Fractions [][]float64
}

// HeatmapStudy runs one Monte Carlo per grid cell. Per-cell sample slices
// are discarded; only the aggregate fraction is kept.
func HeatmapStudy(ctx context.Context, cfg HeatmapConfig) (*Heatmap, error) {
	if len(cfg.GVarsPct) == 0 || len(cfg.KVars) == 0 {
		return nil, fmt.Errorf("%w: heatmap axes must be non-empty", ErrInvalidConfig)
	}
	hm := &Heatmap{
		GVarsPct:  cfg.GVarsPct,
		KVars:     cfg.KVars,
		Fractions: make([][]float64, len(cfg.GVarsPct)),
	}
	for i, gv := range cfg.GVarsPct {
		hm.Fractions[i] = make([]float64, len(cfg.KVars))
		for j, kv := range cfg.KVars {
			res, err := MonteCarlo(ctx, MonteCarloConfig{
				Samples:     cfg.SamplesPerCell,
				Seed:        cfg.BaseSeed + int64(i)*100 + int64(j),
				GStar:       cfg.GStar,
				GStarVarPct: gv,
				KCenter:     cfg.KCenter,
				KVar:        kv,
				Threshold:   cfg.Threshold,
				Reference:   cfg.Reference,
				Workers:     cfg.Workers,
			})
			if err != nil {
				return nil, fmt.Errorf("heatmap cell (%v%%, ±%v): %w", gv, kv, err)
			}
			res.Samples = nil
			hm.Fractions[i][j] = res.MatchFraction
		}
	}
	return hm, nil
}
