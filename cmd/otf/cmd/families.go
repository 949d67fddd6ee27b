package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceFootprint/internal/generator"
)

var listVariants bool

var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List footprint families",
	Long: `List the footprint families otf can generate, with their KiCad library
and number of variants.

Examples:
  otf families
  otf families --variants`,
	Args: cobra.NoArgs,
	RunE: runFamilies,
}

func init() {
	rootCmd.AddCommand(familiesCmd)

	familiesCmd.Flags().BoolVar(&listVariants, "variants", false, "list every variant")
}

func runFamilies(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%-16s %-20s %8s\n", "Family", "Library", "Variants")
	fmt.Fprintln(out, "──────────────────────────────────────────────")
	for _, f := range generator.Families() {
		variants := f.Variants()
		fmt.Fprintf(out, "%-16s %-20s %8d\n", f.Name(), f.Library(), len(variants))
		if listVariants {
			fmt.Fprintf(out, "  %s\n", strings.Join(variants, " "))
		}
	}
	return nil
}
