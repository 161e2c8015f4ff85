// Look-elsewhere subcommands: the Monte Carlo run itself, best-of-N
// amplification, and the persisted run registry.
package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/lemniscate-alpha/internal/lemniscate"
	"github.com/talgya/lemniscate-alpha/internal/store"
	"github.com/talgya/lemniscate-alpha/internal/sweep"
)

// bestOfTrials is the fixed trial ladder reported by the bestof command.
var bestOfTrials = []int{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000}

func studyMonteCarloConfig() sweep.MonteCarloConfig {
	return sweep.MonteCarloConfig{
		Samples:     study.Samples,
		Seed:        study.Seed,
		GStar:       lemniscate.GStar,
		GStarVarPct: study.GStarVarPct,
		KCenter:     study.K,
		KVar:        study.KVar,
		Threshold:   study.ThresholdPPM,
		Reference:   study.Reference,
		Workers:     study.Workers,
	}
}

func newMonteCarloCmd() *cobra.Command {
	var (
		dbPath      string
		keepSamples int
		bins        int
		seed        int64
		samples     int
		workers     int
	)
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Look-elsewhere Monte Carlo estimate of the match probability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := studyMonteCarloConfig()
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cmd.Flags().Changed("samples") {
				cfg.Samples = samples
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}

			slog.Info("look-elsewhere run",
				"seed", cfg.Seed,
				"samples", cfg.Samples,
				"gstar_var_pct", cfg.GStarVarPct,
				"k_var", cfg.KVar,
				"threshold_ppm", cfg.Threshold,
				"workers", cfg.Workers,
			)

			res, err := sweep.MonteCarlo(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			fmt.Printf("samples:        %s\n", humanize.Comma(int64(cfg.Samples)))
			fmt.Printf("matches ≤ %.2f ppm: %s\n", cfg.Threshold, humanize.Comma(int64(res.Matches)))
			fmt.Printf("no real roots:  %s (counted as non-matches)\n", humanize.Comma(int64(res.NoRealRoots)))
			fmt.Printf("match fraction: %.3e\n", res.MatchFraction)

			if bins > 0 {
				h, err := sweep.MakeHistogram(res.Samples, bins)
				if err != nil {
					return err
				}
				printHistogram(h)
			}

			if dbPath != "" {
				db, err := store.Open(dbPath)
				if err != nil {
					return err
				}
				defer db.Close()
				id, err := db.SaveRun(res, keepSamples)
				if err != nil {
					return err
				}
				fmt.Printf("run saved: %s\n", id)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "override study seed")
	cmd.Flags().IntVar(&samples, "samples", 0, "override study sample count")
	cmd.Flags().IntVar(&workers, "workers", 0, "override worker count (results are seed-deterministic either way)")
	cmd.Flags().IntVar(&bins, "bins", 0, "print a ppm histogram with this many bins")
	cmd.Flags().StringVar(&dbPath, "db", "", "persist the run to this SQLite database")
	cmd.Flags().IntVar(&keepSamples, "keep", 1000, "samples to retain when persisting (-1 keeps all)")
	return cmd
}

func newBestOfCmd() *cobra.Command {
	var p1 float64
	cmd := &cobra.Command{
		Use:   "bestof",
		Short: "Best-of-N amplification of the single-trial match probability",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("p1") {
				cfg := studyMonteCarloConfig()
				slog.Info("estimating p1 from a fresh run", "seed", cfg.Seed, "samples", cfg.Samples)
				res, err := sweep.MonteCarlo(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				p1 = res.P1()
			}

			fmt.Printf("single-trial p1 = %.3e\n", p1)
			fmt.Printf("%8s  %s\n", "N", "P(at least one match)")
			for _, n := range bestOfTrials {
				pn, err := sweep.BestOfN(p1, n)
				if err != nil {
					return err
				}
				fmt.Printf("%8d  %.6f\n", n, pn)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&p1, "p1", 0, "single-trial match probability (default: estimate from a fresh run)")
	return cmd
}

func newRunsCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List persisted look-elsewhere runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.ListRuns()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs recorded")
				return nil
			}
			for _, r := range runs {
				fmt.Printf("%s  %s  seed=%d samples=%s ±%.2f%% G*, ±%.2f k  ≤%.2f ppm  fraction=%.3e (no-root %d)\n",
					r.ID, r.CreatedAt, r.Seed, humanize.Comma(int64(r.Samples)),
					r.GStarVarPct, r.KVar, r.ThresholdPPM, r.MatchFraction, r.NoRealRoots)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "runs.db", "SQLite database of persisted runs")
	return cmd
}

// printHistogram renders fixed-width bins as scaled bar rows.
func printHistogram(h *sweep.Histogram) {
	maxCount := 0
	for _, c := range h.Counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		return
	}
	const barWidth = 50
	for i, c := range h.Counts {
		lo := h.Min + float64(i)*h.BinWidth
		bar := strings.Repeat("#", c*barWidth/maxCount)
		fmt.Printf("%10.2f ppm | %-50s %d\n", lo, bar, c)
	}
	if h.Excluded > 0 {
		fmt.Printf("excluded (no real root): %d\n", h.Excluded)
	}
}
