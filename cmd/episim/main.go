package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/episim/internal/logging"
)

var (
	dataDir  string
	logEnv   string
	logLevel string

	logger = zap.NewNop()
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "episim",
		Short:        "compartmental epidemic simulation lab",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logEnv, logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".episim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logEnv, "log-env", "development", "log format: development, production or quiet")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation and save it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "chart height")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "chart width")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run chart to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of two compartments",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xAxis, "x", "S", "compartment for x-axis")
	phaseCmd.Flags().StringVar(&yAxis, "y", "I", "compartment for y-axis")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrator1] [integrator2] ...",
		Short: "compare integrators against rk4 on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "grid search parameters minimising a KPI",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepParams,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepAxes, "param", nil, "grid axis as name=v1,v2,... or name=start:stop:step (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "peak_I", "KPI to minimise")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models and integrators",
		Args:  cobra.NoArgs,
		RunE:  listModels,
	}

	playCmd := &cobra.Command{
		Use:   "play [run_id]",
		Short: "scrub through a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  playRun,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [script.yaml]",
		Short: "run a scripted sequence of scenarios",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent runs (default GOMAXPROCS)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the engine over HTTP",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().IntVar(&maxSteps, "max-steps", 1_000_000, "largest run a request may ask for")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		phaseCmd, compareCmd, sweepCmd, batchCmd, presetsCmd, modelsCmd, playCmd, serveCmd)

	return rootCmd
}
