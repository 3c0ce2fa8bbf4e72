package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/circuitq/analysis"
	"github.com/katalvlaran/circuitq/levels"
)

var levelsPath string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Guided level operations",
	Long:  `Commands for listing the guided levels and checking circuits against them`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the guided levels",
	Args:  cobra.NoArgs,
	RunE:  runLevelsList,
}

var levelsCheckCmd = &cobra.Command{
	Use:   "check <circuit-file>",
	Short: "Show which levels and badges a circuit earns",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsCheck,
}

func init() {
	rootCmd.AddCommand(levelsCmd)
	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsCheckCmd)

	levelsCmd.PersistentFlags().StringVar(&levelsPath, "levels", "",
		"level set YAML (defaults to the built-in levels)")
}

func loadLevels() (*levels.Set, error) {
	if levelsPath == "" {
		return levels.Default(), nil
	}
	s, err := levels.LoadFile(levelsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load levels: %w", err)
	}

	return s, nil
}

func runLevelsList(cmd *cobra.Command, _ []string) error {
	set, err := loadLevels()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, l := range set.All() {
		fmt.Fprintf(w, "Level %d: %s\n", l.ID, l.Title)
		fmt.Fprintf(w, "  %s\n", l.Description)
		for _, o := range l.Objectives {
			fmt.Fprintf(w, "  - %s\n", o)
		}
		fmt.Fprintf(w, "  Components: %s\n", strings.Join(l.AvailableComponents, ", "))
		fmt.Fprintf(w, "  Hint: %s\n\n", l.Hint)
	}

	return nil
}

func runLevelsCheck(cmd *cobra.Command, args []string) error {
	set, err := loadLevels()
	if err != nil {
		return err
	}
	doc, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a := analysis.New(analysis.WithCatalog(cat), analysis.WithLogger(logger))
	res := a.Analyze(ctx, doc.Components, doc.Wires)

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, res.Explanation)
	fmt.Fprintln(w)

	done := set.Completed(res)
	for _, l := range set.All() {
		mark := " "
		if slices.Contains(done, l.ID) {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] Level %d: %s\n", mark, l.ID, l.Title)
	}

	if badges := levels.EarnedBadges(res, nil); len(badges) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Badges:")
		for _, b := range badges {
			fmt.Fprintf(w, "  %s (%s)\n", b.Name, b.ID)
		}
	}

	return nil
}
