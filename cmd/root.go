package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/config"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/logging"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Global flags shared across commands.
var (
	flagPattern      string
	flagTemplate     string
	flagPreview      bool
	flagVerbose      bool
	flagStats        bool
	flagConfigMode   bool
	flagSetConfig    string
	flagRemoveConfig bool
	flagListConfigs  bool
	flagConfigFile   string
	flagFormat       string
	flagLogLevel     string
)

// logger is built from --log-level before any command runs.
var logger = zap.NewNop()

// rootCmd is the top-level command for pdfmerge.
var rootCmd = &cobra.Command{
	Use:   "pdfmerge [ROOT]",
	Short: "Merge the PDF files of every subdirectory",
	Long: `pdfmerge merges the PDF files found in each immediate subdirectory of ROOT
into one document per subdirectory, written next to its inputs.

Files are selected by a glob pattern, or with --config-mode by the ordered
list of required names saved for ROOT with --set-config.

Output template placeholders:
  {directory}  name of the subdirectory
  {date}       current date (YYYY-MM-DD)
  {time}       current time (HHMMSS)
  {datetime}   current date and time (YYYY-MM-DD_HHMMSS)`,
	Example: `  pdfmerge ./reports
  pdfmerge ./reports --pattern "chapter*.pdf" --output "{directory}_book.pdf"
  pdfmerge ./reports --set-config "cover,intro,body"
  pdfmerge ./reports --config-mode --preview`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		log, err := logging.New(flagLogLevel, cmd.ErrOrStderr(), "pdfmerge", Version)
		if err != nil {
			return err
		}
		logger = log
		return nil
	},
	// Default action is merge.
	RunE: mergeRunE,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagPattern, "pattern", "p", config.DefaultPattern, "glob for input files")
	f.StringVarP(&flagTemplate, "output", "o", config.DefaultTemplate, "output filename template")
	f.BoolVarP(&flagPreview, "preview", "n", false, "show what would be merged, write nothing")
	f.BoolVarP(&flagVerbose, "verbose", "v", false, "per-directory progress and file listings")
	f.BoolVarP(&flagStats, "stats", "s", false, "print directory statistics before merging or previewing")
	f.BoolVarP(&flagConfigMode, "config-mode", "c", false, "use the saved merge configuration of ROOT")
	f.StringVar(&flagSetConfig, "set-config", "", `save "name1,name2,..." as the merge configuration of ROOT`)
	f.BoolVar(&flagRemoveConfig, "remove-config", false, "delete the merge configuration of ROOT")
	f.BoolVar(&flagListConfigs, "list-configs", false, "list saved merge configurations")
	rootCmd.MarkFlagsMutuallyExclusive("set-config", "remove-config", "list-configs")

	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config-file", "",
		"configuration store (default: $"+config.EnvConfigPath+" or <user config dir>/pdfmerge/configurations.yml)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "report format: text or json")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "diagnostic log level: debug, info, warn, error")
}

// Execute runs the root command. An interrupt stops a running merge between
// directories.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	syncLogger(logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newEnv wires the command to the real file system and standard streams.
func newEnv(cmd *cobra.Command) env {
	return env{
		fs:     afero.NewOsFs(),
		log:    logger,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
	}
}
