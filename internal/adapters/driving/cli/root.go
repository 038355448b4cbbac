// Package cli provides the cobra command tree of bookfetch.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driving"
	"github.com/custodia-labs/bookfetch/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Config holds the services the commands run against.
type Config struct {
	Search      driving.SearchService
	Downloads   driving.DownloadService
	ConfigStore driven.ConfigStore
	Settings    domain.FinderSettings

	// NewSession builds an interactive session around a presenter.
	NewSession func(presenter driven.Presenter, progress driven.ProgressSink) driving.SessionRunner

	// Plain forces the line-based presenter.
	Plain bool

	// Notes are startup diagnostics gathered before logging is configured.
	// They are logged at debug level once the flags are parsed.
	Notes []string
}

// appConfig holds the current configuration.
var appConfig *Config

// SetConfig sets the configuration used by every command.
func SetConfig(cfg *Config) {
	appConfig = cfg
}

var (
	verbose  bool
	logFile  string
	plainUI  bool
	closeLog func() error
)

var errNotConfigured = errors.New("bookfetch is not configured")

var rootCmd = &cobra.Command{
	Use:   "bookfetch",
	Short: "Find and download EPUB books from GitHub",
	Long: `bookfetch searches a curated list of GitHub repositories for EPUB files
matching a book title, falls back to GitHub code search and repository search,
and downloads the file you pick.

Run without arguments for an interactive session.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(*cobra.Command, []string) {
		if closeLog != nil {
			_ = closeLog()
			closeLog = nil
		}
	},
	RunE: runSession,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")
	rootCmd.Flags().BoolVar(&plainUI, "plain", false, "use line-based prompts instead of the full-screen interface")
}

func setupLogging(*cobra.Command, []string) error {
	if logFile != "" {
		closer, err := logger.OpenFile(logFile)
		if err != nil {
			return err
		}
		closeLog = closer
		// Everything is logged to the file regardless of --verbose.
		logger.SetVerbose(true)
	} else {
		logger.SetVerbose(verbose)
	}

	if appConfig != nil {
		for _, note := range appConfig.Notes {
			logger.Debug("%s", note)
		}
	}
	return nil
}

// Execute runs the command tree.
func Execute(ctx context.Context) error {
	// Command output goes to stdout; cobra falls back to stderr otherwise.
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}
