package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/config"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/merger"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/naming"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/output"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/pipeline"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is what a command run touches outside its options.
type env struct {
	fs     afero.Fs
	log    *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

// mergeOptions mirrors the root command flags.
type mergeOptions struct {
	Root         string
	Pattern      string
	Template     string
	Preview      bool
	Verbose      bool
	Stats        bool
	ConfigMode   bool
	SetConfig    string
	SetGiven     bool
	RemoveConfig bool
	ListConfigs  bool
	ConfigFile   string
	Format       string
}

// report is the JSON document printed for a merge or preview.
type report struct {
	Stats   *pipeline.DirectoryStats `json:"stats,omitempty"`
	Summary *pipeline.Summary        `json:"summary,omitempty"`
}

func mergeRunE(cmd *cobra.Command, args []string) error {
	opts := mergeOptions{
		Pattern:      flagPattern,
		Template:     flagTemplate,
		Preview:      flagPreview,
		Verbose:      flagVerbose,
		Stats:        flagStats,
		ConfigMode:   flagConfigMode,
		SetConfig:    flagSetConfig,
		SetGiven:     cmd.Flags().Changed("set-config"),
		RemoveConfig: flagRemoveConfig,
		ListConfigs:  flagListConfigs,
		ConfigFile:   flagConfigFile,
		Format:       flagFormat,
	}
	if len(args) > 0 {
		opts.Root = args[0]
	}
	if opts.Root == "" && cmd.Flags().NFlag() == 0 {
		return cmd.Help()
	}
	return runMerge(cmd.Context(), newEnv(cmd), opts)
}

func runMerge(ctx context.Context, e env, opts mergeOptions) error {
	if opts.Format != "text" && opts.Format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", opts.Format)
	}

	// 1. Open the configuration store.
	storePath := opts.ConfigFile
	if storePath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("locating configuration store: %w", err)
		}
		storePath = p
	}
	store := config.NewStore(e.fs, storePath)
	e.log.Debug("configuration store", zap.String("path", storePath))

	// 2. Configuration management actions print and exit. Everything but
	// listing needs ROOT.
	if opts.ListConfigs {
		return listConfigs(e, store, opts.Format)
	}
	if opts.Root == "" {
		return fmt.Errorf("%w: pass the directory to process as the first argument", pipeline.ErrRootRequired)
	}
	switch {
	case opts.SetGiven || opts.SetConfig != "":
		return setConfig(e, store, opts)
	case opts.RemoveConfig:
		return removeConfig(e, store, opts)
	}

	root, err := config.NormalizeRoot(opts.Root)
	if err != nil {
		return err
	}

	// 3. Build the runner.
	mode := pipeline.ModePattern
	if opts.ConfigMode {
		mode = pipeline.ModeConfiguration
	}
	progressOut := e.stdout
	if opts.Format == "json" {
		progressOut = e.stderr
	}
	runnerOpts := []pipeline.Option{
		pipeline.WithLogger(e.log),
		pipeline.WithConfigs(store),
	}
	if opts.Verbose {
		runnerOpts = append(runnerOpts, pipeline.WithProgress(func(line string) {
			fmt.Fprintln(progressOut, line)
		}))
	}
	runner := pipeline.NewRunner(e.fs, merger.New(e.fs, e.log), runnerOpts...)
	popts := pipeline.Options{
		Root:     root,
		Pattern:  opts.Pattern,
		Template: opts.Template,
		Mode:     mode,
		Preview:  opts.Preview,
	}

	if _, err := runner.Check(popts); err != nil {
		return err
	}
	for _, name := range naming.Unknown(opts.Template) {
		fmt.Fprintf(e.stderr, "Warning: unknown placeholder {%s} in output template is kept as is\n", name)
	}

	// 4. Statistics, then the run itself.
	var rep report
	if opts.Stats {
		st, err := runner.Stats(popts)
		if err != nil {
			return err
		}
		rep.Stats = st
		if opts.Format == "text" {
			if err := output.WriteStats(e.stdout, st, opts.Verbose); err != nil {
				return err
			}
			fmt.Fprintln(e.stdout)
		}
	}

	summary, runErr := runner.Run(ctx, popts)
	if summary == nil {
		return runErr
	}
	rep.Summary = summary

	if opts.Format == "json" {
		if err := output.WriteJSON(e.stdout, rep); err != nil {
			return err
		}
	} else if err := output.WriteSummary(e.stdout, summary, opts.Verbose); err != nil {
		return err
	}
	if failed := summary.Err(); failed != nil {
		e.log.Warn("some directories failed", zap.Error(failed))
	}
	return runErr
}

func listConfigs(e env, store *config.Store, format string) error {
	configs, err := store.List()
	if err != nil {
		return err
	}
	if format == "json" {
		return output.WriteJSON(e.stdout, configs)
	}
	return output.WriteConfigurations(e.stdout, configs)
}

func setConfig(e env, store *config.Store, opts mergeOptions) error {
	if err := requireDirectory(e.fs, opts.Root); err != nil {
		return err
	}
	names, err := config.ParseNames(opts.SetConfig)
	if err != nil {
		return err
	}
	root, err := config.NormalizeRoot(opts.Root)
	if err != nil {
		return err
	}
	order, err := store.Set(root, names)
	if err != nil {
		return fmt.Errorf("saving merge configuration: %w", err)
	}
	e.log.Info("merge configuration saved", zap.String("root", root), zap.Strings("order", order))
	if opts.Format == "json" {
		return output.WriteJSON(e.stdout, config.MergeConfiguration{Root: root, Order: order})
	}
	return output.WriteConfiguration(e.stdout, root, order)
}

func removeConfig(e env, store *config.Store, opts mergeOptions) error {
	root, err := config.NormalizeRoot(opts.Root)
	if err != nil {
		return err
	}
	removed, err := store.Remove(root)
	if err != nil {
		return fmt.Errorf("removing merge configuration: %w", err)
	}
	if !removed {
		return fmt.Errorf("no merge configuration saved for %s", root)
	}
	fmt.Fprintf(e.stdout, "Removed merge configuration for %s\n", root)
	return nil
}

func requireDirectory(fs afero.Fs, root string) error {
	fi, err := fs.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s", pipeline.ErrRootNotFound, root)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", pipeline.ErrNotDirectory, root)
	}
	return nil
}
