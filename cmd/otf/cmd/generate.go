package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceFootprint/internal/generator"
)

var (
	// Flags for generate command
	outDir        string
	onlyVariants  []string
	fixedEditTime int64
)

var generateCmd = &cobra.Command{
	Use:   "generate [family...]",
	Short: "Generate footprint libraries",
	Long: `Generate footprints for the named families, or for every family when none
is given. Each family writes into <out>/<Library>.pretty/.

A variant that fails to build is reported and skipped; the command exits
with an error if any variant failed.

Examples:
  otf generate --out lib
  otf generate jst-xh harwin-gecko --out lib
  otf generate solder-wire --variant 0.50sqmm --variant 0.50sqmm-relieve
  otf generate lga --config klc.yaml --tedit 1530953292`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	generateCmd.Flags().StringSliceVar(&onlyVariants, "variant", nil, "only generate these variants")
	generateCmd.Flags().Int64Var(&fixedEditTime, "tedit", 0, "fixed edit timestamp (unix seconds) for reproducible output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	families := generator.Families()
	if len(args) > 0 {
		families = families[:0:0]
		for _, name := range args {
			f, ok := generator.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown family %q (see 'otf families')", name)
			}
			families = append(families, f)
		}
	}

	jobs := generator.Jobs(families, onlyVariants...)
	if len(jobs) == 0 {
		return fmt.Errorf("no variants selected")
	}

	opts := generator.Options{OutDir: outDir, Config: cfg}
	if fixedEditTime != 0 {
		opts.Timestamp = time.Unix(fixedEditTime, 0)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	progressCh := make(chan generator.Progress, 10)
	done := make(chan struct{})
	go func() {
		displayProgress(cmd.OutOrStdout(), progressCh)
		close(done)
	}()

	res, err := generator.Run(ctx, jobs, opts, progressCh)
	close(progressCh)
	<-done

	if res != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "\nGenerated %d footprint(s), %d failed\n", len(res.Written), res.Failed)
	}
	return err
}

// displayProgress prints one line per finished job.
func displayProgress(w io.Writer, progressCh <-chan generator.Progress) {
	for p := range progressCh {
		if p.Err != nil {
			fmt.Fprintf(w, "[%d/%d] ✗ %s/%s: %v\n", p.Index+1, p.Total, p.Job.Family.Name(), p.Job.Variant, p.Err)
			continue
		}
		fmt.Fprintf(w, "[%d/%d] ✓ %s\n", p.Index+1, p.Total, p.Path)
	}
}
