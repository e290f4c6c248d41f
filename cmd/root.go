package cmd

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shopfloor-sim/shopfloor-sim/sim"
	"github.com/shopfloor-sim/shopfloor-sim/sim/output"
)

var (
	// CLI flags for the generation run
	configFile   string // Path to the YAML configuration file
	outputFile   string // Output artifact path (overrides output.filename)
	outputFormat string // Output sink format: csv or sqlite
	seed         int64  // Seed for all random draws
	startDate    string // First simulated day, YYYY-MM-DD (empty = today)
	logLevel     string // Log verbosity level
	totalParts   int    // Part target override (0 = from config)
	machineCount int    // Machine count override (0 = from config)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "shopfloor-sim",
	Short: "Discrete-event generator for synthetic manufacturing-line event logs",
}

// runCmd executes a generation run using parameters from the config
// file and CLI flags.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a production event log",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := sim.LoadConfig(configFile)
		if err != nil {
			logrus.Fatalf("Configuration error: %v", err)
		}
		if totalParts > 0 {
			cfg.Order.TotalParts = totalParts
		}
		if machineCount > 0 {
			cfg.WorkCell.MachineCount = machineCount
		}
		if outputFile != "" {
			cfg.Output.Filename = outputFile
		}

		day := time.Now().UTC()
		if startDate != "" {
			day, err = time.Parse("2006-01-02", startDate)
			if err != nil {
				logrus.Fatalf("Invalid --start-date %q: %v", startDate, err)
			}
		}

		runID := uuid.New().String()
		logrus.Infof("run %s: seed=%d, target=%d parts, output=%s (%s)",
			runID, seed, cfg.Order.TotalParts, cfg.Output.Filename, outputFormat)

		s, err := sim.NewSimulator(cfg, sim.NewSimulationKey(seed), day)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if err := s.Run(); err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}

		writer, err := output.NewWriter(outputFormat, cfg.Output.Filename)
		if err != nil {
			logrus.Fatalf("Output error: %v", err)
		}
		if err := writer.Write(runID, s.Sink.Sorted()); err != nil {
			logrus.Fatalf("Failed to write %s: %v", cfg.Output.Filename, err)
		}

		s.Metrics.Print()
		logrus.Infof("Data successfully generated and saved to %s", cfg.Output.Filename)
	},
}

// configCmd prints the built-in default configuration as YAML, as a
// starting point for a custom config file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := yaml.Marshal(sim.DefaultConfig())
		if err != nil {
			logrus.Fatalf("Failed to render default config: %v", err)
		}
		os.Stdout.Write(data)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configFile, "config", "config.yaml", "Path to YAML configuration file")
	runCmd.Flags().StringVar(&outputFile, "output", "", "Output path (overrides output.filename)")
	runCmd.Flags().StringVar(&outputFormat, "format", output.FormatCSV, "Output format (csv, sqlite)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random parameter draws")
	runCmd.Flags().StringVar(&startDate, "start-date", "", "First simulated day, YYYY-MM-DD (default today)")
	runCmd.Flags().StringVar(&logLevel, "log", "warning", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().IntVar(&totalParts, "total-parts", 0, "Part target override (0 = from config)")
	runCmd.Flags().IntVar(&machineCount, "machine-count", 0, "Machine count override (0 = from config)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}
