// Command lemverify runs the Lemniscate-Alpha numeric verification
// pipeline: derive G*, solve the master quadratic, compare the larger
// root against the experimental fine-structure constant, and probe the
// match's robustness with sweeps and the look-elsewhere Monte Carlo.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/lemniscate-alpha/internal/config"
	"github.com/talgya/lemniscate-alpha/internal/lemniscate"
	"github.com/talgya/lemniscate-alpha/internal/metric"
	"github.com/talgya/lemniscate-alpha/internal/quadratic"
	"github.com/talgya/lemniscate-alpha/internal/reference"
)

const vietaTolerance = 1e-9

var (
	verbose   bool
	studyPath string
	study     config.Study
)

var rootCmd = &cobra.Command{
	Use:   "lemverify",
	Short: "Numeric verification for the Lemniscate-Alpha framework",
	Long: `lemverify evaluates the quantitative claims behind the Foundational
Ternary Dynamics manuscript: the lemniscatic constant G*, the master
quadratic x² − k·G*²·x + k·G*³ = 0, the ppm agreement of its larger root
with CODATA 1/α, and the look-elsewhere statistics of that agreement.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		study = config.DefaultStudy()
		if studyPath != "" {
			s, err := config.LoadStudy(studyPath)
			if err != nil {
				return err
			}
			study = s
			slog.Debug("study loaded", "path", studyPath)
		}
		return nil
	},
}

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive G* by all three routes and report their agreement",
	RunE: func(cmd *cobra.Command, args []string) error {
		arcSamples, _ := cmd.Flags().GetInt("arc-samples")

		gGamma := lemniscate.GStar
		gAGM, err := lemniscate.GStarAGM(lemniscate.DefaultAGMIterations)
		if err != nil {
			return err
		}
		gArc, err := lemniscate.ArcLengthEstimate(arcSamples)
		if err != nil {
			return err
		}

		fmt.Printf("G* = √2·Γ(1/4)²/(2π)\n")
		fmt.Printf("  Γ(1/4)            = %.12f\n", lemniscate.GammaQuarter)
		fmt.Printf("  Gamma route       = %.12f\n", gGamma)
		fmt.Printf("  AGM route         = %.12f\n", gAGM)
		fmt.Printf("  arc-length route  = %.12f  (%d curve samples)\n", gArc, arcSamples)

		agmPPM, err := metric.PPM(gAGM, gGamma)
		if err != nil {
			return err
		}
		arcPPM, err := metric.PPM(gArc, gGamma)
		if err != nil {
			return err
		}
		fmt.Printf("  AGM vs Gamma      = %.3g ppm\n", agmPPM)
		fmt.Printf("  arc vs Gamma      = %.3g ppm\n", arcPPM)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the master quadratic, Vieta's relations, and the alpha match",
	RunE: func(cmd *cobra.Command, args []string) error {
		gStar := lemniscate.GStar
		k := study.K

		coef, err := quadratic.ForGStar(gStar, k)
		if err != nil {
			return err
		}
		roots, err := coef.Roots()
		if err != nil {
			return err
		}

		fmt.Printf("Master quadratic: x² − %g·G*²·x + %g·G*³ = 0, G* = %.10f\n", k, k, gStar)
		fmt.Printf("  b = %.10f\n", coef.B)
		fmt.Printf("  c = %.10f\n", coef.C)
		fmt.Printf("  discriminant = %.10f\n", coef.Discriminant())
		fmt.Printf("  x+ = %.10f\n", roots.XPlus)
		fmt.Printf("  x− = %.10f\n", roots.XMinus)

		residual := roots.VietaResidual(coef)
		fmt.Printf("Vieta residual = %.3g (tolerance %.0e)\n", residual, vietaTolerance)
		if residual > vietaTolerance {
			return fmt.Errorf("vieta residual %v exceeds tolerance %v", residual, vietaTolerance)
		}

		ppm, err := metric.PPM(roots.XPlus, study.Reference)
		if err != nil {
			return err
		}
		fmt.Printf("x+ vs 1/α (%.9f): %s\n", study.Reference, metric.Metric{Value: ppm, Unit: metric.UnitPPM})

		pct, err := metric.Percent(roots.XMinus, float64(reference.Nc))
		if err != nil {
			return err
		}
		fmt.Printf("x− vs N_c (%d): %s,  floor(x−) = %d\n",
			reference.Nc, metric.Metric{Value: pct, Unit: metric.UnitPercent}, int(math.Floor(roots.XMinus)))

		fmt.Println("Coefficient 16 derivations:")
		var bad []string
		for _, d := range reference.CoefficientDerivations() {
			status := "ok"
			if d.Value != 16 {
				status = "MISMATCH"
				bad = append(bad, d.Name)
			}
			fmt.Printf("  [%s] %s = %d\n", status, d.Name, d.Value)
		}
		if len(bad) > 0 {
			return fmt.Errorf("coefficient derivations disagree: %v", bad)
		}
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&studyPath, "study", "", "YAML study configuration (defaults to manuscript parameters)")

	deriveCmd.Flags().Int("arc-samples", 200000, "curve samples for the arc-length route")

	rootCmd.AddCommand(deriveCmd, verifyCmd, newSweepCmd(), newMonteCarloCmd(), newBestOfCmd(), newRunsCmd())

	if err := rootCmd.Execute(); err != nil {
		kind := "error"
		switch {
		case errors.Is(err, quadratic.ErrNoRealRoots):
			kind = "no-real-roots"
		case errors.Is(err, quadratic.ErrInvalidInput), errors.Is(err, metric.ErrInvalidInput):
			kind = "invalid-input"
		case errors.Is(err, metric.ErrZeroReference):
			kind = "zero-reference"
		case errors.Is(err, lemniscate.ErrNonConvergence):
			kind = "non-convergence"
		}
		fmt.Fprintf(os.Stderr, "lemverify: %s: %v\n", kind, err)
		os.Exit(1)
	}
}
