// Package pipeline orchestrates a merge run: it walks the immediate
// subdirectories of a root, selects and validates input files, merges each
// qualifying directory and collects per-directory results. The CLI and the
// GUI both drive a run through Runner.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/config"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/discover"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/naming"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/validate"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Pre-flight errors. Any of these aborts a run before a directory is touched.
var (
	ErrRootRequired          = errors.New("root directory is required")
	ErrRootNotFound          = errors.New("directory does not exist")
	ErrNotDirectory          = errors.New("path is not a directory")
	ErrConfigurationRequired = errors.New("merge configuration required but not set")
)

// ConfigSource provides the stored merge configuration of a root.
type ConfigSource interface {
	Get(root string) ([]string, bool, error)
}

// Merger concatenates inputs, in order, into dest and returns the page count.
type Merger interface {
	Merge(inputs []string, dest string) (int, error)
}

// Runner executes merge runs. It processes directories strictly one after
// another and keeps no state between runs.
type Runner struct {
	fs       afero.Fs
	finder   *discover.Finder
	merger   Merger
	configs  ConfigSource
	log      *zap.Logger
	now      func() time.Time
	progress func(string)
	onResult func(done, total int, res DirectoryResult)
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Runner) { r.log = log }
}

// WithClock replaces time.Now for output name timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithProgress registers a callback receiving human-readable progress lines.
func WithProgress(fn func(string)) Option {
	return func(r *Runner) { r.progress = fn }
}

// WithResults registers a callback invoked after each directory with the
// number of directories processed so far and the total.
func WithResults(fn func(done, total int, res DirectoryResult)) Option {
	return func(r *Runner) { r.onResult = fn }
}

// WithConfigs sets the source of merge configurations for configuration mode.
func WithConfigs(src ConfigSource) Option {
	return func(r *Runner) { r.configs = src }
}

// NewRunner creates a Runner that reads through fs and merges with merger.
func NewRunner(fs afero.Fs, merger Merger, opts ...Option) *Runner {
	r := &Runner{
		fs:     fs,
		finder: discover.NewFinder(fs),
		merger: merger,
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// plan is a pre-flight-checked Options.
type plan struct {
	Options
	order []string
}

// Check runs the pre-flight validation of opts without processing any
// directory and returns the options with defaults applied.
func (r *Runner) Check(opts Options) (Options, error) {
	p, err := r.prepare(opts)
	if err != nil {
		return Options{}, err
	}
	return p.Options, nil
}

func (r *Runner) prepare(opts Options) (plan, error) {
	if opts.Pattern == "" {
		opts.Pattern = config.DefaultPattern
	}
	if opts.Template == "" {
		opts.Template = config.DefaultTemplate
	}
	if opts.Mode == "" {
		opts.Mode = ModePattern
	}

	if opts.Root == "" {
		return plan{}, ErrRootRequired
	}
	fi, err := r.fs.Stat(opts.Root)
	if err != nil {
		return plan{}, fmt.Errorf("%w: %s", ErrRootNotFound, opts.Root)
	}
	if !fi.IsDir() {
		return plan{}, fmt.Errorf("%w: %s", ErrNotDirectory, opts.Root)
	}

	if err := discover.ValidatePattern(opts.Pattern); err != nil {
		return plan{}, err
	}
	if _, err := naming.Expand(opts.Template, naming.Context{Directory: "directory", Now: r.now()}); err != nil {
		return plan{}, fmt.Errorf("invalid output template: %w", err)
	}

	p := plan{Options: opts}
	switch opts.Mode {
	case ModePattern:
	case ModeConfiguration:
		if r.configs == nil {
			return plan{}, fmt.Errorf("%w for %s", ErrConfigurationRequired, opts.Root)
		}
		order, ok, err := r.configs.Get(opts.Root)
		if err != nil {
			return plan{}, fmt.Errorf("loading merge configuration: %w", err)
		}
		if !ok {
			return plan{}, fmt.Errorf("%w for %s", ErrConfigurationRequired, opts.Root)
		}
		p.order = order
	default:
		return plan{}, fmt.Errorf("unknown mode %q", opts.Mode)
	}
	return p, nil
}

// Run processes every immediate subdirectory of opts.Root in natural order.
// Per-directory problems are recorded in the summary and never stop the
// run; only pre-flight errors are returned before any directory is
// processed. Cancelling ctx stops the run between directories and returns
// the partial summary together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	p, err := r.prepare(opts)
	if err != nil {
		return nil, err
	}

	dirs, err := r.finder.Subdirectories(p.Root)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Root:     p.Root,
		Mode:     p.Mode,
		Pattern:  p.Pattern,
		Template: p.Template,
		Order:    p.order,
		Preview:  p.Preview,
	}

	r.log.Info("run started",
		zap.String("root", p.Root),
		zap.String("mode", string(p.Mode)),
		zap.Bool("preview", p.Preview),
		zap.Int("subdirectories", len(dirs)),
	)
	r.progressf("Found %d subdirectories to process", len(dirs))

	for i, dir := range dirs {
		if err := ctx.Err(); err != nil {
			summary.Interrupted = true
			r.log.Warn("run interrupted", zap.Int("processed", i), zap.Int("total", len(dirs)))
			return summary, fmt.Errorf("run interrupted: %w", err)
		}
		r.progressf("Processing %d/%d: %s", i+1, len(dirs), filepath.Base(dir))
		res := r.processDirectory(p, dir)
		summary.add(res)
		if r.onResult != nil {
			r.onResult(i+1, len(dirs), res)
		}
	}

	r.log.Info("run finished",
		zap.Int("merged", summary.Merged),
		zap.Int("ready", summary.Ready),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// processDirectory takes one subdirectory through
// discovering → valid|invalid → merging → merged|failed.
func (r *Runner) processDirectory(p plan, dir string) DirectoryResult {
	res := DirectoryResult{Dir: dir, Name: filepath.Base(dir)}
	log := r.log.With(zap.String("dir", dir))

	// 1. Resolve the output name first so discovery can exclude it.
	outName, err := naming.Expand(p.Template, naming.Context{Directory: res.Name, Now: r.now()})
	if err != nil {
		return r.fail(log, res, fmt.Errorf("naming output: %w", err))
	}
	res.Output = filepath.Join(dir, outName)

	// 2. Discover and validate.
	switch p.Mode {
	case ModeConfiguration:
		v, err := validate.Validate(r.finder, dir, p.Pattern, p.order, outName)
		if err != nil {
			return r.fail(log, res, err)
		}
		if !v.OK() {
			res.Status = StatusMissing
			res.Missing = v.Missing
			res.Ambiguous = v.Ambiguous
			log.Warn("skipping directory", zap.Strings("missing", v.Missing), zap.Int("ambiguous", len(v.Ambiguous)))
			r.progressf("  Skipping %s: %s", res.Name, v.Reason())
			return res
		}
		res.Files = v.Files
	default:
		files, err := r.finder.Match(dir, p.Pattern, outName)
		if err != nil {
			return r.fail(log, res, err)
		}
		if len(files) == 0 {
			res.Status = StatusNoMatch
			log.Debug("no matching files", zap.String("pattern", p.Pattern))
			r.progressf("  No matching files found in %s", res.Name)
			return res
		}
		res.Files = files
	}
	log.Debug("selected files", zap.Strings("files", res.Files))
	r.progressf("  Found %d matching files", len(res.Files))

	if exists, _ := afero.Exists(r.fs, res.Output); exists {
		res.Overwrite = true
		r.progressf("  Warning: %s already exists, will overwrite", outName)
	}

	// 3. Preview stops here.
	if p.Preview {
		res.Status = StatusReady
		r.progressf("  Would create: %s", outName)
		return res
	}

	// 4. Merge.
	pages, err := r.merger.Merge(res.Files, res.Output)
	if err != nil {
		return r.fail(log, res, err)
	}
	res.Status = StatusMerged
	res.Pages = pages
	log.Info("merged", zap.String("output", res.Output), zap.Int("files", len(res.Files)), zap.Int("pages", pages))
	r.progressf("  Successfully created: %s", outName)
	return res
}

func (r *Runner) fail(log *zap.Logger, res DirectoryResult, err error) DirectoryResult {
	res.Status = StatusFailed
	res.Err = err
	res.Error = err.Error()
	log.Error("directory failed", zap.Error(err))
	r.progressf("  Error processing %s: %v", res.Name, err)
	return res
}

func (r *Runner) progressf(format string, args ...any) {
	if r.progress != nil {
		r.progress(fmt.Sprintf(format, args...))
	}
}
