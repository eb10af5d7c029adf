package cmd

import (
	"fmt"
	"github.com/ValentinKolb/mediaser/cmd/bench"
	"github.com/ValentinKolb/mediaser/cmd/codec"
	"github.com/ValentinKolb/mediaser/cmd/util"
	libbench "github.com/ValentinKolb/mediaser/lib/bench"
	"github.com/ValentinKolb/mediaser/lib/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"text/tabwriter"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "mediaser",
		Short: "media content serializers and benchmarks",
		Long: fmt.Sprintf(`mediaser (v%s)

Hand written streaming codecs for the media content object graph,
with a JSON and a binary token format, reference serializers and a
benchmark harness to compare them.`, Version),
		SilenceUsage:       true,
		PersistentPreRunE:  initLogging,
		PersistentPostRunE: writeMetrics,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mediaser",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mediaser v%s\n", Version)
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List all available serializers",
		Run: func(cmd *cobra.Command, args []string) {
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tFORMAT\tGRAPH\tCLASS")
			for _, e := range libbench.DefaultRegistry().Entries() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Features.Format, e.Features.Graph, e.Features.Class)
			}
			_ = tw.Flush()
		},
	}
)

func init() {
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(codec.CodecCommands)
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(listCmd)

	// Add Flags
	RootCmd.PersistentFlags().StringVar(&util.ConfigFile, "config", "", util.WrapString("Optional config file (yaml, json or toml), flags and MEDIASER_* environment variables take precedence"))
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("Log level (debug, info, warn, error)"))
	key = "metrics"
	RootCmd.PersistentFlags().String(key, "", util.WrapString("Optional path to write the codec metrics to in Prometheus format after the command finished (- for stderr)"))
}

func initLogging(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	return common.InitLoggers(viper.GetString("log-level"))
}

func writeMetrics(_ *cobra.Command, _ []string) error {
	return util.WriteMetrics(viper.GetString("metrics"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
