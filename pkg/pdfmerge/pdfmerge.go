// Package pdfmerge provides a public Go API for merging the PDF files of
// every subdirectory of a root directory, either by glob pattern or by a
// saved, ordered list of required file names.
//
// Basic usage:
//
//	summary, err := pdfmerge.Merge(ctx, pdfmerge.Options{
//	    Root:     "/path/to/reports",
//	    Template: "{directory}_{date}.pdf",
//	})
//	fmt.Println(summary.Merged, "directories merged")
//
//	_, err = pdfmerge.SetConfiguration("", "/path/to/reports", []string{"cover", "body"})
//	summary, err = pdfmerge.Merge(ctx, pdfmerge.Options{
//	    Root:       "/path/to/reports",
//	    ConfigMode: true,
//	})
package pdfmerge

import (
	"context"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/config"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/merger"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/pipeline"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type (
	// Summary aggregates the per-directory results of a run.
	Summary = pipeline.Summary
	// DirectoryResult is the outcome for one subdirectory.
	DirectoryResult = pipeline.DirectoryResult
	// DirectoryStats describes what pattern discovery finds below a root.
	DirectoryStats = pipeline.DirectoryStats
	// MergeConfiguration is the saved required-name order of one root.
	MergeConfiguration = config.MergeConfiguration
)

// Result statuses.
const (
	StatusMerged  = pipeline.StatusMerged
	StatusReady   = pipeline.StatusReady
	StatusNoMatch = pipeline.StatusNoMatch
	StatusMissing = pipeline.StatusMissing
	StatusFailed  = pipeline.StatusFailed
)

// Errors returned before any directory is processed.
var (
	ErrRootNotFound          = pipeline.ErrRootNotFound
	ErrNotDirectory          = pipeline.ErrNotDirectory
	ErrConfigurationRequired = pipeline.ErrConfigurationRequired
)

// Options configures a merge or preview run.
type Options struct {
	// Root is the directory whose immediate subdirectories are merged (required).
	Root string

	// Pattern selects input files. Defaults to "*.pdf".
	Pattern string

	// Template names the output of each subdirectory. Defaults to
	// "{directory}_{date}.pdf".
	Template string

	// ConfigMode merges the names saved for Root, in saved order, instead of
	// every pattern match.
	ConfigMode bool

	// ConfigPath is the configuration store file. If empty, $PDFMERGE_CONFIG
	// or the per-user default location is used.
	ConfigPath string

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger

	// Progress, if set, receives one line per processing step.
	Progress func(string)
}

// Merge processes every subdirectory of opts.Root and writes one merged PDF
// per qualifying subdirectory.
func Merge(ctx context.Context, opts Options) (*Summary, error) {
	return run(ctx, opts, false)
}

// Preview resolves what Merge would do without writing anything.
func Preview(ctx context.Context, opts Options) (*Summary, error) {
	return run(ctx, opts, true)
}

// Stats counts the files opts.Pattern matches in each subdirectory of opts.Root.
func Stats(opts Options) (*DirectoryStats, error) {
	r, popts, err := newRunner(opts, false)
	if err != nil {
		return nil, err
	}
	return r.Stats(popts)
}

func run(ctx context.Context, opts Options, preview bool) (*Summary, error) {
	r, popts, err := newRunner(opts, preview)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, popts)
}

func newRunner(opts Options, preview bool) (*pipeline.Runner, pipeline.Options, error) {
	fs := afero.NewOsFs()
	store, err := openStore(fs, opts.ConfigPath)
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	root, err := config.NormalizeRoot(opts.Root)
	if err != nil {
		return nil, pipeline.Options{}, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ropts := []pipeline.Option{pipeline.WithLogger(log), pipeline.WithConfigs(store)}
	if opts.Progress != nil {
		ropts = append(ropts, pipeline.WithProgress(opts.Progress))
	}

	mode := pipeline.ModePattern
	if opts.ConfigMode {
		mode = pipeline.ModeConfiguration
	}
	return pipeline.NewRunner(fs, merger.New(fs, log), ropts...), pipeline.Options{
		Root:     root,
		Pattern:  opts.Pattern,
		Template: opts.Template,
		Mode:     mode,
		Preview:  preview,
	}, nil
}

func openStore(fs afero.Fs, path string) (*config.Store, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.NewStore(fs, path), nil
}

// SetConfiguration saves names as the merge configuration of root in the
// store at configPath (empty for the default store) and returns the
// normalized names.
func SetConfiguration(configPath, root string, names []string) ([]string, error) {
	store, err := openStore(afero.NewOsFs(), configPath)
	if err != nil {
		return nil, err
	}
	return store.Set(root, names)
}

// Configuration returns the saved merge configuration of root.
func Configuration(configPath, root string) ([]string, bool, error) {
	store, err := openStore(afero.NewOsFs(), configPath)
	if err != nil {
		return nil, false, err
	}
	return store.Get(root)
}

// RemoveConfiguration deletes the merge configuration of root and reports
// whether one existed.
func RemoveConfiguration(configPath, root string) (bool, error) {
	store, err := openStore(afero.NewOsFs(), configPath)
	if err != nil {
		return false, err
	}
	return store.Remove(root)
}

// Configurations lists every saved merge configuration.
func Configurations(configPath string) ([]MergeConfiguration, error) {
	store, err := openStore(afero.NewOsFs(), configPath)
	if err != nil {
		return nil, err
	}
	return store.List()
}
