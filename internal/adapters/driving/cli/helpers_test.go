package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bookfetch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driving"
)

// mockSearchService implements driving.SearchService for command tests.
type mockSearchService struct {
	result      domain.SearchResult
	err         error
	gotTitle    string
	gotProgress driven.ProgressSink
}

func (m *mockSearchService) Search(
	_ context.Context, title string, progress driven.ProgressSink,
) (domain.SearchResult, error) {
	m.gotTitle = title
	m.gotProgress = progress
	if progress != nil {
		progress.OnProgress(domain.ProgressEvent{Index: 1, Total: 1, Repository: "fancy88/iBook"})
	}
	return m.result, m.err
}

// mockDownloadService implements driving.DownloadService for command tests.
type mockDownloadService struct {
	err       error
	gotDest   string
	gotTarget domain.CandidateFile
}

func (m *mockDownloadService) ResolveURL(c domain.CandidateFile) string {
	return "https://github.com/" + c.Repository.String() + "/raw/HEAD/" + c.Path
}

func (m *mockDownloadService) DefaultDestination(c domain.CandidateFile) string {
	return "/downloads/" + c.Name
}

func (m *mockDownloadService) Download(_ context.Context, c domain.CandidateFile, dest string) (string, error) {
	m.gotTarget = c
	m.gotDest = dest
	if m.err != nil {
		return "", m.err
	}
	return dest, nil
}

// sessionFunc adapts a function to driving.SessionRunner.
type sessionFunc func(ctx context.Context) error

func (f sessionFunc) Run(ctx context.Context) error { return f(ctx) }

var _ driving.SessionRunner = sessionFunc(nil)

// testConfig installs a configuration backed by a temporary config file and
// restores every global afterwards.
func testConfig(t *testing.T, search *mockSearchService, downloads *mockDownloadService) *Config {
	t.Helper()

	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	cfg := &Config{
		ConfigStore: store,
		Settings:    domain.DefaultFinderSettings(),
	}
	if search != nil {
		cfg.Search = search
	}
	if downloads != nil {
		cfg.Downloads = downloads
	}

	prev := appConfig
	SetConfig(cfg)
	t.Cleanup(func() { SetConfig(prev) })
	return cfg
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		searchJSON, searchLimit = false, 0
		downloadOutput, downloadURLOnly = "", false
		plainUI, verbose, logFile = false, false, ""
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
