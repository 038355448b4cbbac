// Command bookfetch finds EPUB books in GitHub repositories and downloads them.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/custodia-labs/bookfetch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/bookfetch/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/bookfetch/internal/adapters/driven/download"
	"github.com/custodia-labs/bookfetch/internal/adapters/driving/cli"
	"github.com/custodia-labs/bookfetch/internal/connectors/github"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driving"
	"github.com/custodia-labs/bookfetch/internal/core/services"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := buildConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bookfetch: %v\n", err)
		return 1
	}
	cli.SetConfig(cfg)

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// buildConfig wires the config store, GitHub client and services.
func buildConfig(ctx context.Context) (*cli.Config, error) {
	store, err := openConfigStore(os.Getenv("BOOKFETCH_CONFIG_DIR"), os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settings, err := services.LoadFinderSettings(store)
	if err != nil {
		return nil, err
	}

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = store.GetString(services.KeyToken)
	}
	userAgent := "bookfetch/" + cli.Version()

	client, err := github.NewClient(ctx, github.Options{
		Token:             token,
		BaseURL:           store.GetString(services.KeyAPIURL),
		UserAgent:         userAgent,
		RequestsPerSecond: store.GetFloat(services.KeyRequestsPerSec),
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}
	var notes []string
	if token == "" {
		notes = append(notes, "No GitHub token configured; code search will be unavailable")
	}

	search := services.NewSearchService(settings, client, client, client)
	downloads := services.NewDownloadService(
		settings,
		download.NewHTTPFetcher(&http.Client{}, userAgent),
		download.NewAtomicWriter(),
	)
	opener := download.NewSystemOpener()

	newSession := func(presenter driven.Presenter, progress driven.ProgressSink) driving.SessionRunner {
		async := services.NewAsyncProgress(progress, 0)
		return &session{
			progress: async,
			SessionService: services.NewSessionService(services.SessionConfig{
				Search:         search,
				Downloads:      downloads,
				Presenter:      presenter,
				Progress:       async,
				Opener:         opener,
				ID:             uuid.NewString(),
				MaxRounds:      settings.MaxRounds,
				LabelMaxLength: settings.LabelMaxLength,
			}),
		}
	}

	return &cli.Config{
		Search:      search,
		Downloads:   downloads,
		ConfigStore: store,
		Settings:    settings,
		NewSession:  newSession,
		Plain:       store.GetBool(services.KeyPlainUI),
		Notes:       notes,
	}, nil
}

// openConfigStore opens the TOML store in dir, or in ~/.bookfetch when dir is
// empty. Without a home directory the defaults are used, nothing persists and
// a warning is written to warn; logging is not configured yet at this point.
func openConfigStore(dir string, warn io.Writer) (driven.ConfigStore, error) {
	if dir == "" {
		home, err := file.DefaultConfigDir()
		if err != nil {
			fmt.Fprintf(warn, "bookfetch: warning: no config directory available (%v); settings will not be saved\n", err)
			return memory.NewConfigStore(nil), nil
		}
		dir = home
	}
	return file.NewConfigStore(dir)
}

// session stops progress delivery once the session returns.
type session struct {
	*services.SessionService
	progress *services.AsyncProgress
}

func (s *session) Run(ctx context.Context) error {
	defer s.progress.Close()
	return s.SessionService.Run(ctx)
}
