package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/footprint"
)

var emitFootprint bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <footprint_file>",
	Short: "Show information about a .kicad_mod file",
	Long: `Read a footprint file and display its metadata, pads and extents.

With --emit the footprint is written back to stdout in the canonical form
otf produces, which is useful for diffing hand-edited files against
generated ones.

Examples:
  otf inspect Connector_JST.pretty/JST_XH_B02B-XH-A_1x02_P2.50mm_Vertical.kicad_mod
  otf inspect --emit part.kicad_mod > normalized.kicad_mod`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&emitFootprint, "emit", false, "re-encode the footprint to stdout")
}

func runInspect(cmd *cobra.Command, args []string) error {
	fp, err := footprint.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing footprint: %w", err)
	}

	out := cmd.OutOrStdout()
	if emitFootprint {
		return footprint.NewEncoder(out).Encode(fp)
	}

	fmt.Fprintf(out, "Footprint: %s\n", fp.Name)
	if fp.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", fp.Description)
	}
	if len(fp.Tags) > 0 {
		fmt.Fprintf(out, "  Tags: %s\n", strings.Join(fp.Tags, " "))
	}
	attr := string(fp.Attribute)
	if attr == "" {
		attr = "normal"
	}
	fmt.Fprintf(out, "  Attribute: %s\n", attr)
	if fp.Model != nil {
		fmt.Fprintf(out, "  Model: %s\n", fp.Model.Path)
	}

	pads, err := fp.Pads()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nPads (%d):\n", len(pads))
	for _, p := range pads {
		number := p.Number
		if number == "" {
			number = "-"
		}
		fmt.Fprintf(out, "  Pad %-4s: %-12s %-9s %.2f×%.2f mm at (%.2f, %.2f)",
			number, p.Type, p.Shape, p.Size.W, p.Size.H, p.At.X, p.At.Y)
		if !p.Drill.IsZero() {
			if p.Drill.Oval {
				fmt.Fprintf(out, " drill %.2f×%.2f", p.Drill.Size.W, p.Drill.Size.H)
			} else {
				fmt.Fprintf(out, " drill %.2f", p.Drill.Size.W)
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "\nExtents:")
	if err := printExtent(out, fp, "Courtyard", footprint.LayerFCrtYd, footprint.LayerBCrtYd); err != nil {
		return err
	}
	if err := printExtent(out, fp, "Fabrication", footprint.LayerFFab, footprint.LayerBFab); err != nil {
		return err
	}
	return printExtent(out, fp, "All")
}

func printExtent(w io.Writer, fp *footprint.Footprint, label string, layers ...footprint.Layer) error {
	bbox, err := fp.Bounds(layers...)
	if err != nil {
		return err
	}
	if bbox.IsEmpty() {
		fmt.Fprintf(w, "  %-12s (none)\n", label+":")
		return nil
	}
	fmt.Fprintf(w, "  %-12s %.2f×%.2f mm, (%.2f, %.2f) to (%.2f, %.2f)\n",
		label+":", bbox.Width(), bbox.Height(), bbox.Min.X, bbox.Min.Y, bbox.Max.X, bbox.Max.Y)
	return nil
}
