// Package gui holds the behaviour of the pdfmerge desktop front end.
// Controller has no toolkit dependency; the fyne window lives in
// internal/gui/window.
package gui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/config"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/merger"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/naming"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/output"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/pipeline"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrBusy is returned when a run is requested while another one is active.
var ErrBusy = errors.New("a merge is already running")

// ErrNoDirectory is returned when no root directory has been chosen.
var ErrNoDirectory = errors.New("please select a directory first")

// Form is the state of the input widgets.
type Form struct {
	Root       string
	Pattern    string
	Template   string
	ConfigMode bool
}

// Events receives run updates. Callbacks are invoked on the goroutine that
// called Run; a view must marshal them onto its UI thread.
type Events struct {
	Log      func(line string)
	Progress func(done, total int)
}

// Controller drives merge runs and configuration edits for the window.
type Controller struct {
	fs      afero.Fs
	store   *config.Store
	log     *zap.Logger
	running atomic.Bool
}

// NewController creates a Controller that reads and writes through fs and
// keeps merge configurations in store.
func NewController(fs afero.Fs, store *config.Store, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{fs: fs, store: store, log: log}
}

// Running reports whether a run is in progress.
func (c *Controller) Running() bool {
	return c.running.Load()
}

func (c *Controller) options(f Form, preview bool) (pipeline.Options, error) {
	if strings.TrimSpace(f.Root) == "" {
		return pipeline.Options{}, ErrNoDirectory
	}
	root, err := config.NormalizeRoot(f.Root)
	if err != nil {
		return pipeline.Options{}, err
	}
	mode := pipeline.ModePattern
	if f.ConfigMode {
		mode = pipeline.ModeConfiguration
	}
	return pipeline.Options{
		Root:     root,
		Pattern:  strings.TrimSpace(f.Pattern),
		Template: strings.TrimSpace(f.Template),
		Mode:     mode,
		Preview:  preview,
	}, nil
}

func (c *Controller) runner(ev Events) *pipeline.Runner {
	opts := []pipeline.Option{
		pipeline.WithLogger(c.log),
		pipeline.WithConfigs(c.store),
	}
	if ev.Log != nil {
		opts = append(opts, pipeline.WithProgress(ev.Log))
	}
	if ev.Progress != nil {
		opts = append(opts, pipeline.WithResults(func(done, total int, _ pipeline.DirectoryResult) {
			ev.Progress(done, total)
		}))
	}
	return pipeline.NewRunner(c.fs, merger.New(c.fs, c.log), opts...)
}

// Check validates the form without running anything. It returns warnings
// that do not prevent a run, such as unknown template placeholders.
func (c *Controller) Check(f Form) ([]string, error) {
	opts, err := c.options(f, true)
	if err != nil {
		return nil, err
	}
	if _, err := c.runner(Events{}).Check(opts); err != nil {
		return nil, err
	}
	var warnings []string
	for _, name := range naming.Unknown(opts.Template) {
		warnings = append(warnings, fmt.Sprintf("Unknown placeholder {%s} is kept as is", name))
	}
	return warnings, nil
}

// Run executes a preview or merge of f. Only one run may be active.
func (c *Controller) Run(ctx context.Context, f Form, preview bool, ev Events) (*pipeline.Summary, error) {
	if !c.running.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer c.running.Store(false)

	opts, err := c.options(f, preview)
	if err != nil {
		return nil, err
	}
	return c.runner(ev).Run(ctx, opts)
}

// ConfirmMessage describes what a merge of f is about to do.
func (c *Controller) ConfirmMessage(f Form) (string, error) {
	opts, err := c.options(f, true)
	if err != nil {
		return "", err
	}
	r := c.runner(Events{})
	opts, err = r.Check(opts)
	if err != nil {
		return "", err
	}
	st, err := r.Stats(opts)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Merge the files of %d subdirectories of\n%s?\n\n", st.TotalSubdirs, opts.Root)
	if opts.Mode == pipeline.ModeConfiguration {
		order, _, _ := c.store.Get(opts.Root)
		fmt.Fprintf(&sb, "Configuration order: %s\n", strings.Join(order, ", "))
	} else {
		fmt.Fprintf(&sb, "%d files match %s in %d subdirectories.\n", st.TotalFiles, opts.Pattern, st.SubdirsWithFiles)
	}
	fmt.Fprintf(&sb, "Output names follow %s; existing files are overwritten.", opts.Template)
	return sb.String(), nil
}

// Configuration returns the saved merge configuration of root as the
// comma-separated text shown in the editor.
func (c *Controller) Configuration(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", ErrNoDirectory
	}
	order, _, err := c.store.Get(root)
	if err != nil {
		return "", err
	}
	return strings.Join(order, ", "), nil
}

// SaveConfiguration stores the comma-separated names in text as the merge
// configuration of root and returns the stored order.
func (c *Controller) SaveConfiguration(root, text string) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, ErrNoDirectory
	}
	names, err := config.ParseNames(text)
	if err != nil {
		return nil, err
	}
	order, err := c.store.Set(root, names)
	if err != nil {
		return nil, err
	}
	c.log.Info("merge configuration saved", zap.String("root", root), zap.Strings("order", order))
	return order, nil
}

// Report renders a finished run for the log view.
func Report(s *pipeline.Summary) string {
	return output.FormatSummary(s, true)
}

// ResultTitle is the title of the dialog shown after a run.
func ResultTitle(s *pipeline.Summary) string {
	switch {
	case s.Interrupted:
		return "Run interrupted"
	case s.Preview:
		return "Preview complete"
	case s.Failed > 0:
		return "Merge finished with errors"
	default:
		return "Merge complete"
	}
}

// ResultMessage is the one-paragraph result shown after a run.
func ResultMessage(s *pipeline.Summary) string {
	if s.Preview {
		return fmt.Sprintf("%d directories would be merged (%d files).\n%d skipped, %d failed.",
			s.Ready, s.TotalFiles, s.Skipped, s.Failed)
	}
	return fmt.Sprintf("%d directories merged (%d files).\n%d skipped, %d failed.",
		s.Merged, s.TotalFiles, s.Skipped, s.Failed)
}

// PlaceholderHelp documents the output template placeholders.
const PlaceholderHelp = `Available placeholders:

{directory}   name of the subdirectory
{date}        current date (YYYY-MM-DD)
{time}        current time (HHMMSS)
{datetime}    date and time (YYYY-MM-DD_HHMMSS)

Example: {directory}_{date}.pdf  →  Reports_2024-01-15.pdf
".pdf" is added when missing.`

// PatternHelp documents the file pattern syntax.
const PatternHelp = `The pattern selects files inside each subdirectory:

*        any sequence of characters
?        any single character
[abc]    one of the listed characters

Examples: *.pdf, chapter*.pdf, part?.pdf

In configuration mode the pattern limits which files may
satisfy a required name.`

// ConfigurationHelp explains the configuration editor.
const ConfigurationHelp = `Enter the required file names in merge order, separated by commas,
without the .pdf extension. Example: cover, intro, body, appendix

A subdirectory is merged only if it contains every listed file.
Matching ignores case.`
