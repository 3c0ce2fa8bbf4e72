package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/circuitq/catalog"
)

var (
	// Global flags
	catalogPath string
	logLevel    string

	// Set up by the root command before any subcommand runs
	cat    *catalog.Catalog
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "circuitq",
	Short: "Circuit builder analysis tool",
	Long: `circuitq analyzes battery, bulb, resistor and switch circuits saved by the
circuit builder: whether the loop is closed, the current, which bulbs light,
and which guided levels the circuit completes.

Examples:
  circuitq analyze circuit.yaml             # Analyze a saved circuit
  circuitq analyze --json circuit.yaml      # Same, as JSON
  circuitq catalog                          # Print the component catalog
  circuitq levels list                      # List the guided levels
  circuitq levels check circuit.yaml        # Levels and badges a circuit earns`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "",
		"component catalog YAML (defaults to the built-in catalog)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log level: debug, info, warn or error")
}

func setup(cmd *cobra.Command, _ []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if catalogPath == "" {
		cat = catalog.Default()
		return nil
	}

	var err error
	cat, err = catalog.LoadFile(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info("catalog loaded", slog.String("path", catalogPath))

	return nil
}
