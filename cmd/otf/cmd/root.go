package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/footprint"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/klc"
)

var (
	// Global flags
	verbose    bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "otf",
	Short: "OpenTraceFootprint - KiCad footprint generator",
	Long: `OpenTraceFootprint (otf) generates KiCad footprints (.kicad_mod) from
parametric families following the KiCad Library Convention.

Examples:
  otf families                          # List footprint families
  otf generate jst-xh --out lib         # Generate all JST XH footprints
  otf generate lga --variant lga-16-3x3 # Generate one variant
  otf inspect part.kicad_mod            # Show pads and extents of a footprint`,
	Version: "0.9.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			footprint.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
		} else {
			footprint.SetLogger(nil)
		}
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "KLC parameter file (YAML)")
}

// loadConfig returns the KLC parameters from --config, or the defaults.
func loadConfig() (*klc.Config, error) {
	if configFile == "" {
		return klc.Default(), nil
	}
	return klc.Load(configFile)
}
