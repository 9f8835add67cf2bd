package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"crooksbayes/adapters/excel"
	"crooksbayes/app"
	"crooksbayes/domain/estimator"
	"crooksbayes/internal/config"
	"crooksbayes/internal/testkit"
	"crooksbayes/ports"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "crooksbayes",
		Short: "Sequential Bayesian free-energy estimation from forward/backward work samples",
	}

	rootCmd.AddCommand(
		newEstimateCmd(),
		newSynthCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runFlags struct {
	beta       float64
	gridMin    float64
	gridMax    float64
	gridStep   float64
	exportPath string
	asJSON     bool
}

func (f *runFlags) register(cmd *cobra.Command, defaults config.EstimationConfig) {
	cmd.Flags().Float64Var(&f.beta, "beta", defaults.Beta, "Inverse temperature")
	cmd.Flags().Float64Var(&f.gridMin, "grid-min", defaults.GridMin, "Lower hypothesis bound for delta G")
	cmd.Flags().Float64Var(&f.gridMax, "grid-max", defaults.GridMax, "Upper hypothesis bound for delta G")
	cmd.Flags().Float64Var(&f.gridStep, "grid-step", defaults.GridStep, "Hypothesis grid step (precision knob)")
	cmd.Flags().StringVar(&f.exportPath, "export", "", "Write trace and posterior to this .xlsx file")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the full run result as JSON")
}

func (f *runFlags) params() estimator.Params {
	return estimator.Params{
		Beta:     f.beta,
		GridMin:  f.gridMin,
		GridMax:  f.gridMax,
		GridStep: f.gridStep,
	}
}

func newEstimateCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "estimate [work-pairs.csv]",
		Short: "Estimate delta G from a CSV of forward,backward work pairs",
		Long: `Estimate the free-energy difference from paired work measurements.

The CSV has one sample per row: forward work in column 1, backward work in
column 2. A non-numeric first row is treated as a header.

Example: crooksbayes estimate pulls.csv --beta 1.0 --grid-min -20 --grid-max 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := readWorkCSV(args[0])
			if err != nil {
				return err
			}
			return runAndReport(cmd.Context(), series, flags)
		},
	}

	flags.register(cmd, mustDefaults())
	return cmd
}

func newSynthCmd() *cobra.Command {
	var flags runFlags
	var trueDeltaG, workStdDev float64
	var samples int
	var seed int64

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Run the estimator on synthetic Crooks-consistent work pairs",
		Long: `Generate Gaussian work pairs satisfying the Crooks fluctuation theorem
for a known delta G, then estimate it back. Useful for precision checks and
for choosing a grid step.

Example: crooksbayes synth --true-dg 2.5 --samples 500 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sampler, err := testkit.NewCrooksSampler(testkit.CrooksSamplerConfig{
				TrueDeltaG: trueDeltaG,
				Beta:       flags.beta,
				WorkStdDev: workStdDev,
				Seed:       seed,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Generating %d pairs for true dG=%g (beta=%g, sigma=%g, seed=%d)\n",
				samples, trueDeltaG, flags.beta, workStdDev, seed)
			return runSyntheticAndReport(cmd.Context(), sampler, samples, flags)
		},
	}

	flags.register(cmd, mustDefaults())
	cmd.Flags().Float64Var(&trueDeltaG, "true-dg", 2.5, "True free-energy difference to recover")
	cmd.Flags().Float64Var(&workStdDev, "noise", 2.0, "Work distribution standard deviation")
	cmd.Flags().IntVar(&samples, "samples", 200, "Number of work pairs to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic generation")
	return cmd
}

func runAndReport(ctx context.Context, series estimator.WorkSeries, flags runFlags) error {
	service := app.NewEstimationService()
	result, err := service.Run(ctx, app.EstimateRequest{
		Series: series,
		Params: flags.params(),
	})
	if err != nil {
		return err
	}
	return report(ctx, result, flags)
}

func runSyntheticAndReport(ctx context.Context, sampler ports.WorkSamplerPort, samples int, flags runFlags) error {
	service := app.NewEstimationService()
	result, err := service.RunSynthetic(ctx, sampler, samples, flags.params())
	if err != nil {
		return err
	}
	return report(ctx, result, flags)
}

func report(ctx context.Context, result *app.RunResult, flags runFlags) error {
	if flags.asJSON {
		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(payload))
	} else {
		printSummary(result)
	}

	if flags.exportPath != "" {
		var exporter ports.TraceExporterPort = excel.NewTraceExporter()
		if err := exporter.Export(ctx, flags.exportPath, result.RunID, result.Result); err != nil {
			return err
		}
		fmt.Printf("Trace exported to %s\n", flags.exportPath)
	}
	return nil
}

func printSummary(result *app.RunResult) {
	trace := result.Result.MeanTrace
	stddev := result.Result.StdDevTrace

	fmt.Printf("Run %s (%d samples, %dms)\n", result.RunID, len(trace), result.RuntimeMs)

	// Last few trace points show whether the estimate has settled.
	start := len(trace) - 5
	if start < 0 {
		start = 0
	}
	for i := start; i < len(trace); i++ {
		fmt.Printf("  sample %4d: dG = %+.4f +/- %.4f\n", i+1, trace[i], stddev[i])
	}

	fmt.Printf("Final estimate: dG = %+.4f +/- %.4f\n", result.Result.FinalMean, result.Result.FinalStdDev)
	fmt.Printf("95%% interval:   [%+.4f, %+.4f]\n", result.Report.CI95Low, result.Report.CI95High)
	fmt.Printf("Convergence:    %s (converged=%v, stddev drop %.3f)\n",
		result.Report.Quality, result.Report.Converged, result.Report.StdDevDropRatio)
}

func readWorkCSV(path string) (estimator.WorkSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return estimator.WorkSeries{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return estimator.WorkSeries{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var series estimator.WorkSeries
	for i, record := range records {
		wf, errF := strconv.ParseFloat(record[0], 64)
		wb, errB := strconv.ParseFloat(record[1], 64)
		if errF != nil || errB != nil {
			if i == 0 {
				continue // header row
			}
			return estimator.WorkSeries{}, fmt.Errorf("%s line %d: non-numeric work value", path, i+1)
		}
		series.Forward = append(series.Forward, wf)
		series.Backward = append(series.Backward, wb)
	}
	return series, nil
}

func mustDefaults() config.EstimationConfig {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg.Estimation
}
