package bench

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/mediaser/cmd/util"
	"github.com/ValentinKolb/mediaser/lib/bench"
	"github.com/ValentinKolb/mediaser/lib/common"
	"github.com/ValentinKolb/mediaser/lib/media/fixtures"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

var (
	// BenchCmd runs the serializer benchmarks
	BenchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the serializers against each other",
		Long: `Benchmark the serializers against each other.

Every serializer is first checked with a round trip of all items, a serializer
that fails the check is reported as skipped. Then each configured mode is
measured with the go benchmark tooling.`,
		PreRunE: processBenchConfig,
		RunE:    run,
	}

	benchConfig common.BenchConfig
)

func init() {
	defaults := fixtures.DefaultGenerateOptions()

	// add flags
	key := "serializers"
	BenchCmd.Flags().String(key, strings.Join(bench.DefaultRegistry().Names(), ","), util.WrapString("Serializers to benchmark (comma separated - e.g. json/manual,gob)"))
	key = "modes"
	BenchCmd.Flags().String(key, strings.Join(common.BenchModes, ","), util.WrapString(fmt.Sprintf("Modes to benchmark (comma separated - %s)", strings.Join(common.BenchModes, ", "))))
	key = "max-pod-depth"
	BenchCmd.Flags().Int(key, 0, util.WrapString("The maximum length of a pod chain (0 uses the codec default)"))
	key = "seed"
	BenchCmd.Flags().Int64(key, 1, util.WrapString("Seed for the generated items"))
	key = "items"
	BenchCmd.Flags().Int(key, 100, util.WrapString("Number of items, the first one is always the standard item"))
	key = "images"
	BenchCmd.Flags().Int(key, defaults.Images, util.WrapString("Number of images per generated item"))
	key = "persons"
	BenchCmd.Flags().Int(key, defaults.Persons, util.WrapString("Number of persons per generated item"))
	key = "pods"
	BenchCmd.Flags().Int(key, defaults.Pods, util.WrapString("Number of pod chains per generated item"))
	key = "pod-depth"
	BenchCmd.Flags().Int(key, defaults.PodDepth, util.WrapString("Maximum length of a generated pod chain"))
	key = "optional-rate"
	BenchCmd.Flags().Float64(key, defaults.OptionalRate, util.WrapString("Probability that an optional field of a generated item is present"))
	key = "parallelism"
	BenchCmd.Flags().Int(key, 10, util.WrapString("Number of goroutines used by the parallel mode"))
	key = "csv"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processBenchConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	benchConfig = common.BenchConfig{
		Serializers:  splitList(viper.GetString("serializers")),
		Modes:        splitList(viper.GetString("modes")),
		MaxPodDepth:  viper.GetInt("max-pod-depth"),
		Seed:         viper.GetInt64("seed"),
		Items:        viper.GetInt("items"),
		Images:       viper.GetInt("images"),
		Persons:      viper.GetInt("persons"),
		Pods:         viper.GetInt("pods"),
		PodDepth:     viper.GetInt("pod-depth"),
		OptionalRate: viper.GetFloat64("optional-rate"),
		Parallelism:  viper.GetInt("parallelism"),
		CSVPath:      viper.GetString("csv"),
		LogLevel:     viper.GetString("log-level"),
	}

	if err := benchConfig.Validate(bench.DefaultRegistry().Names()); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func run(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := bench.NewRunner(benchConfig, bench.DefaultRegistry())
	if err != nil {
		return err
	}

	fmt.Println("Benchmark of the media content serializers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Print(benchConfig.String())
	fmt.Printf("  %-22s: %s\n", "Run ID", runner.RunID())
	fmt.Println()

	fmt.Println("starting benchmarks...")

	results, err := runner.Run(ctx, func(res bench.Result) {
		bench.PrintResult(os.Stdout, res)
	})
	if err != nil {
		util.Logger.Warningf("benchmark interrupted after %d results: %v", len(results), err)
	}

	// Write results to csv is specified
	if csvPath := benchConfig.CSVPath; csvPath != "" && len(results) > 0 {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := bench.WriteResultsToCSV(csvPath, results, &benchConfig); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return err
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// splitList splits a comma separated flag value and drops empty entries
func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
