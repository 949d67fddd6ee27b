// Package generator holds the footprint families shipped with otf and the
// batch runner that renders them into KiCad libraries.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/footprint"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/klc"
)

// Family is a parametric footprint series. Each variant builds one footprint.
type Family interface {
	// Name is the short identifier used on the command line, e.g. "jst-xh".
	Name() string
	// Library is the KiCad library the footprints belong to.
	Library() string
	// Variants lists the variant keys in generation order.
	Variants() []string
	// Build creates the footprint for one variant.
	Build(variant string, cfg *klc.Config) (*footprint.Footprint, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Family{}
)

// Register adds a family. Registering the same name twice panics.
func Register(f Family) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[f.Name()]; dup {
		panic("generator: family registered twice: " + f.Name())
	}
	registry[f.Name()] = f
}

// Lookup returns the family registered under name.
func Lookup(name string) (Family, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Families returns all registered families sorted by name.
func Families() []Family {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Family, 0, len(registry))
	for _, f := range registry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Job is one footprint to generate.
type Job struct {
	Family  Family
	Variant string
}

// Jobs expands families into one job per variant. If only is non-empty,
// variants not in it are skipped.
func Jobs(families []Family, only ...string) []Job {
	keep := make(map[string]bool, len(only))
	for _, v := range only {
		keep[v] = true
	}
	var jobs []Job
	for _, f := range families {
		for _, v := range f.Variants() {
			if len(keep) > 0 && !keep[v] {
				continue
			}
			jobs = append(jobs, Job{Family: f, Variant: v})
		}
	}
	return jobs
}

// Options control a batch run.
type Options struct {
	// OutDir receives one <Library>.pretty directory per library.
	OutDir string
	// Config is the KLC parameter set; nil means klc.Default().
	Config *klc.Config
	// Timestamp, when non-zero, fixes the edit timestamp of every file.
	Timestamp time.Time
}

// Progress reports the state of a batch run after each job.
type Progress struct {
	Job   Job
	Index int    // 0-based index of the finished job
	Total int    // number of jobs in the run
	Path  string // file written, empty on failure
	Err   error
}

// Result summarizes a batch run.
type Result struct {
	Written []string
	Failed  int
}

// Run builds and writes every job. A failing job is logged and skipped; the
// run continues with the next one and the failures are returned joined.
// Cancelling ctx stops the run between jobs.
func Run(ctx context.Context, jobs []Job, opts Options, progress chan<- Progress) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = klc.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generator: invalid config: %w", err)
	}

	var encOpts []footprint.EncoderOption
	if !opts.Timestamp.IsZero() {
		encOpts = append(encOpts, footprint.WithTimestamp(opts.Timestamp))
	}

	log := footprint.Logger()
	res := &Result{}
	var errs []error
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return res, errors.Join(append(errs, err)...)
		}

		path, err := runJob(job, cfg, opts.OutDir, encOpts)
		if err != nil {
			err = fmt.Errorf("%s/%s: %w", job.Family.Name(), job.Variant, err)
			log.Warn("footprint skipped", "family", job.Family.Name(), "variant", job.Variant, "error", err)
			errs = append(errs, err)
			res.Failed++
		} else {
			res.Written = append(res.Written, path)
		}

		if progress != nil {
			progress <- Progress{Job: job, Index: i, Total: len(jobs), Path: path, Err: err}
		}
	}
	return res, errors.Join(errs...)
}

func runJob(job Job, cfg *klc.Config, outDir string, encOpts []footprint.EncoderOption) (string, error) {
	fp, err := job.Family.Build(job.Variant, cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(outDir, job.Family.Library()+".pretty")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create library directory: %w", err)
	}
	path := filepath.Join(dir, fp.Name+".kicad_mod")
	if err := footprint.WriteFile(path, fp, encOpts...); err != nil {
		return "", err
	}
	return path, nil
}

// unknownVariant is returned by Build for a key not in Variants.
func unknownVariant(f Family, variant string) error {
	return &footprint.ConfigurationError{Field: f.Name() + " variant", Value: variant, Reason: "unknown variant"}
}
