package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyRepositories     = "search.repositories"
	KeyCap              = "search.cap"
	KeyExtension        = "search.extension"
	KeyFormatKeyword    = "search.format_keyword"
	KeyCodePerPage      = "search.code_per_page"
	KeyRepoPerPage      = "search.repo_per_page"
	KeyFallbackRepos    = "search.fallback_repos"
	KeyRepoNameFallback = "search.repo_fallback"
	KeyLabelMaxLength   = "ui.label_max_length"
	KeyPlainUI          = "ui.plain"
	KeyMaxRounds        = "session.max_rounds"
	KeyTreeTimeout      = "timeouts.tree_seconds"
	KeySearchTimeout    = "timeouts.search_seconds"
	KeyDownloadTimeout  = "timeouts.download_seconds"
	KeyDownloadDir      = "download.dir"
	KeyAPIURL           = "github.api_url"
	KeyRawURL           = "github.raw_url"
	KeyToken            = "github.token"
	KeyRequestsPerSec   = "github.requests_per_second"
)

// LoadFinderSettings reads settings from the config store, applying the
// defaults for every missing or zero key. A nil store yields the defaults.
func LoadFinderSettings(store driven.ConfigStore) (domain.FinderSettings, error) {
	settings := domain.DefaultFinderSettings()
	settings.DownloadDir = defaultDownloadDir()

	if store == nil {
		return settings, nil
	}

	if list := store.GetStringSlice(KeyRepositories); len(list) > 0 {
		repos, err := domain.ParseRepositoryRefs(list)
		if err != nil {
			return settings, fmt.Errorf("load %s: %w", KeyRepositories, err)
		}
		settings.Repositories = repos
	}

	settings.Cap = getInt(store, KeyCap, settings.Cap)
	settings.Extension = getString(store, KeyExtension, settings.Extension)
	settings.FormatKeyword = getString(store, KeyFormatKeyword, settings.FormatKeyword)
	settings.CodePerPage = getInt(store, KeyCodePerPage, settings.CodePerPage)
	settings.RepoPerPage = getInt(store, KeyRepoPerPage, settings.RepoPerPage)
	settings.FallbackRepos = getInt(store, KeyFallbackRepos, settings.FallbackRepos)
	settings.RepoNameFallback = getBool(store, KeyRepoNameFallback, settings.RepoNameFallback)
	settings.LabelMaxLength = getInt(store, KeyLabelMaxLength, settings.LabelMaxLength)
	settings.MaxRounds = getInt(store, KeyMaxRounds, settings.MaxRounds)
	settings.TreeTimeout = getSeconds(store, KeyTreeTimeout, settings.TreeTimeout)
	settings.SearchTimeout = getSeconds(store, KeySearchTimeout, settings.SearchTimeout)
	settings.DownloadTimeout = getSeconds(store, KeyDownloadTimeout, settings.DownloadTimeout)
	settings.RawURL = getString(store, KeyRawURL, settings.RawURL)
	settings.DownloadDir = getString(store, KeyDownloadDir, settings.DownloadDir)

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// defaultDownloadDir returns ~/Downloads, or the working directory if the
// home directory cannot be determined.
func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

func getString(store driven.ConfigStore, key, defaultVal string) string {
	if val := store.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(store driven.ConfigStore, key string, defaultVal int) int {
	val := store.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func getBool(store driven.ConfigStore, key string, defaultVal bool) bool {
	if _, exists := store.Get(key); !exists {
		return defaultVal
	}
	return store.GetBool(key)
}

func getSeconds(store driven.ConfigStore, key string, defaultVal time.Duration) time.Duration {
	if val := store.GetInt(key); val > 0 {
		return time.Duration(val) * time.Second
	}
	return defaultVal
}
