package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/bookfetch/internal/adapters/driving/prompt"
	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui"
	"github.com/custodia-labs/bookfetch/internal/logger"
)

// runSession runs one interactive session. Cancelling it is not an error.
func runSession(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in session: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("session panicked: %v", r)
		}
	}()

	if appConfig == nil || appConfig.NewSession == nil {
		return errNotConfigured
	}

	if usePlain(cmd) {
		logger.Debug("Using line-based prompts")
		console := prompt.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
		return appConfig.NewSession(console, console).Run(cmd.Context())
	}

	logger.Debug("Using full-screen interface")
	return tui.Run(cmd.Context(), appConfig.NewSession)
}

// usePlain reports whether the line-based presenter must be used: it was
// asked for, stdin or stdout is not a terminal, or debug logs would be
// written over the full-screen interface.
func usePlain(cmd *cobra.Command) bool {
	if plainUI || (appConfig != nil && appConfig.Plain) {
		return true
	}
	if verbose && logFile == "" {
		return true
	}
	return !isTerminal(cmd.InOrStdin()) || !isTerminal(cmd.OutOrStdout())
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
