package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/circuitq/analysis"
	"github.com/katalvlaran/circuitq/circuit"
	"github.com/katalvlaran/circuitq/metrics"
	"github.com/katalvlaran/circuitq/paths"
)

var (
	asJSON      bool
	showMetrics bool
	maxPaths    int
	maxExpanded int
	timeout     time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <circuit-file>",
	Short: "Analyze a saved circuit",
	Long: `Analyze a circuit document (YAML or JSON) and report whether the battery's
terminals are joined by a closed loop, the total resistance and current, how
many bulbs light, and any warnings. Use "-" to read from standard input.

Examples:
  circuitq analyze circuit.yaml
  circuitq analyze --json circuit.json
  circuitq analyze --metrics --max-paths 128 big.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	analyzeCmd.Flags().BoolVar(&showMetrics, "metrics", false,
		"write Prometheus metrics for the run to stderr")
	analyzeCmd.Flags().IntVar(&maxPaths, "max-paths", paths.DefaultMaxPaths,
		"stop path enumeration after this many paths (0 for no limit)")
	analyzeCmd.Flags().IntVar(&maxExpanded, "max-expanded", paths.DefaultMaxExpanded,
		"stop path enumeration after visiting this many terminals (0 for no limit)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 0,
		"give up path enumeration after this long (0 for no limit)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	a := analysis.New(
		analysis.WithCatalog(cat),
		analysis.WithLogger(logger),
		analysis.WithMaxPaths(maxPaths),
		analysis.WithMaxExpanded(maxExpanded),
		analysis.WithMetrics(reg),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	res := a.Analyze(ctx, doc.Components, doc.Wires)

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		printResult(out, res)
	}

	if showMetrics {
		return reg.WriteText(cmd.ErrOrStderr())
	}

	return nil
}

// readDocument decodes and validates the circuit at path, or stdin for "-".
func readDocument(cmd *cobra.Command, path string) (circuit.Document, error) {
	var (
		doc circuit.Document
		err error
	)
	if path == "-" {
		doc, err = circuit.Decode(cmd.InOrStdin())
	} else {
		doc, err = circuit.DecodeFile(path)
	}
	if err != nil {
		return circuit.Document{}, fmt.Errorf("failed to read circuit: %w", err)
	}
	if err := circuit.Validate(doc); err != nil {
		return circuit.Document{}, fmt.Errorf("invalid circuit: %w", err)
	}

	return doc, nil
}

func printResult(w io.Writer, res analysis.Result) {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}

	fmt.Fprintf(w, "Status:        %s\n", res.Status())
	fmt.Fprintf(w, "Circuit type:  %s\n", res.Topology())
	fmt.Fprintf(w, "Closed loop:   %s\n", yesNo(res.HasClosedLoop))
	fmt.Fprintf(w, "Bulbs on:      %d\n", res.BulbsOn)
	fmt.Fprintf(w, "Resistance:    %.2f Ω\n", res.TotalResistance)
	fmt.Fprintf(w, "Current:       %.3f A\n", res.Current)
	fmt.Fprintf(w, "Switch:        %s", yesNo(res.HasSwitch))
	if res.SwitchesOpen > 0 {
		fmt.Fprintf(w, " (%d open)", res.SwitchesOpen)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Resistor:      %s\n", yesNo(res.HasResistor))
	fmt.Fprintln(w)
	fmt.Fprintln(w, res.Explanation)

	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warn)
	}
}
