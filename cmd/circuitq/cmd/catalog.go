package cmd

import (
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the component catalog",
	Long: `Print the catalog in effect as YAML: per-type resistance, voltage and
terminals, wire resistance, grid size and the lighting thresholds. The output
is a valid --catalog file and a starting point for custom catalogs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cat.Encode(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
