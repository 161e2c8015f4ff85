// Grid-sweep subcommands: coefficient, G*-perturbation, arc-length
// convergence, and correlated drift.
package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talgya/lemniscate-alpha/internal/lemniscate"
	"github.com/talgya/lemniscate-alpha/internal/sweep"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Deterministic sensitivity sweeps",
	}
	cmd.AddCommand(newCoeffSweepCmd(), newGStarSweepCmd(), newArcSweepCmd(), newDriftSweepCmd())
	return cmd
}

func newCoeffSweepCmd() *cobra.Command {
	var (
		kMin, kMax float64
		steps      int
	)
	cmd := &cobra.Command{
		Use:   "coeff",
		Short: "Vary the lattice coefficient k and track x+",
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := sweep.CoefficientSweep(lemniscate.GStar, kMin, kMax, steps, study.Reference)
			if err != nil {
				return err
			}
			printPoints("k", points)
			if best, ok := sweep.Closest(points); ok {
				fmt.Printf("closest match: k = %.4f  (x+ = %.9f, %.3g ppm)\n", best.Input, best.XPlus, best.PPM)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&kMin, "min", 8, "lower bound for k")
	cmd.Flags().Float64Var(&kMax, "max", 30, "upper bound for k")
	cmd.Flags().IntVar(&steps, "steps", 800, "grid steps")
	return cmd
}

func newGStarSweepCmd() *cobra.Command {
	var (
		deltaMin, deltaMax float64
		steps              int
	)
	cmd := &cobra.Command{
		Use:   "gstar",
		Short: "Perturb G* by ppm deltas and track the propagated x+",
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := sweep.GStarPerturbationSweep(lemniscate.GStar, deltaMin, deltaMax, steps, study.K, study.Reference)
			if err != nil {
				return err
			}
			printPoints("ΔG* (ppm)", points)
			if best, ok := sweep.Closest(points); ok {
				fmt.Printf("closest match: ΔG* = %.2f ppm  (x+ = %.9f, %.3g ppm)\n", best.Input, best.XPlus, best.PPM)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&deltaMin, "min", -200, "lower ppm delta")
	cmd.Flags().Float64Var(&deltaMax, "max", 200, "upper ppm delta")
	cmd.Flags().IntVar(&steps, "steps", 1001, "grid steps")
	return cmd
}

func newArcSweepCmd() *cobra.Command {
	var countsArg string
	cmd := &cobra.Command{
		Use:   "arclength",
		Short: "Arc-length G* estimates and their propagated root error",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := parseIntList(countsArg)
			if err != nil {
				return err
			}
			points, err := sweep.ArcLengthConvergence(counts, study.K, study.Reference)
			if err != nil {
				return err
			}
			fmt.Printf("%12s  %14s  %14s  %12s\n", "samples", "G* estimate", "x+", "ppm")
			for _, p := range points {
				fmt.Printf("%12d  %14.10f  %14.9f  %12.4g\n", p.Samples, p.GStarEst, p.XPlus, p.PPM)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&countsArg, "counts", "100,1000,10000,100000", "comma-separated curve sample counts")
	return cmd
}

func newDriftSweepCmd() *cobra.Command {
	var cfg sweep.DriftConfig
	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Correlated drift of (G*, k) along a seeded noise path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.GStar = lemniscate.GStar
			cfg.GStarVarPct = study.GStarVarPct
			cfg.KCenter = study.K
			cfg.KVar = study.KVar
			cfg.Reference = study.Reference
			slog.Info("drift sweep", "seed", cfg.Seed, "steps", cfg.Steps)

			samples, err := sweep.Drift(cfg)
			if err != nil {
				return err
			}
			matches := 0
			noRoots := 0
			for _, s := range samples {
				if s.NoRealRoot {
					noRoots++
					continue
				}
				if s.PPM <= study.ThresholdPPM {
					matches++
				}
			}
			fmt.Printf("drift steps: %d  matches ≤ %.2f ppm: %d  no real roots: %d\n",
				len(samples), study.ThresholdPPM, matches, noRoots)
			if best := closestSample(samples); best != nil {
				fmt.Printf("closest: G* = %.8f, k = %.4f  (x+ = %.9f, %.3g ppm)\n",
					best.GStar, best.K, best.Roots.XPlus, best.PPM)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&cfg.Seed, "seed", 42, "drift noise seed")
	cmd.Flags().IntVar(&cfg.Steps, "steps", 2000, "drift steps")
	return cmd
}

func closestSample(samples []sweep.Sample) *sweep.Sample {
	var best *sweep.Sample
	for i := range samples {
		s := &samples[i]
		if s.NoRealRoot {
			continue
		}
		if best == nil || s.PPM < best.PPM {
			best = s
		}
	}
	return best
}

// printPoints shows the endpoints and a thinned middle of a sweep so a
// long grid stays readable in a terminal.
func printPoints(inputLabel string, points []sweep.Point) {
	fmt.Printf("%14s  %14s  %12s\n", inputLabel, "x+", "ppm")
	stride := len(points) / 20
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < len(points); i += stride {
		p := points[i]
		if p.NoRealRoot {
			fmt.Printf("%14.4f  %14s  %12s\n", p.Input, "—", "no real root")
			continue
		}
		fmt.Printf("%14.4f  %14.9f  %12.4g\n", p.Input, p.XPlus, p.PPM)
	}
}

func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse count %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
