package cli

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/services"
)

// valueKind is the TOML type a config key is stored as.
type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
	kindFloat
	kindStringList
)

// configKeys lists every key "config set" accepts.
var configKeys = map[string]valueKind{
	services.KeyRepositories:     kindStringList,
	services.KeyCap:              kindInt,
	services.KeyExtension:        kindString,
	services.KeyFormatKeyword:    kindString,
	services.KeyCodePerPage:      kindInt,
	services.KeyRepoPerPage:      kindInt,
	services.KeyFallbackRepos:    kindInt,
	services.KeyRepoNameFallback: kindBool,
	services.KeyLabelMaxLength:   kindInt,
	services.KeyPlainUI:          kindBool,
	services.KeyMaxRounds:        kindInt,
	services.KeyTreeTimeout:      kindInt,
	services.KeySearchTimeout:    kindInt,
	services.KeyDownloadTimeout:  kindInt,
	services.KeyDownloadDir:      kindString,
	services.KeyAPIURL:           kindString,
	services.KeyRawURL:           kindString,
	services.KeyToken:            kindString,
	services.KeyRequestsPerSec:   kindFloat,
}

var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"settings"},
	Short:   "Manage configuration",
	Long: `View and change the settings stored in ~/.bookfetch/config.toml.

Changes take effect the next time bookfetch starts.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one stored value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store one value",
	Long: `Store one configuration value. Lists are comma separated:

  bookfetch config set search.repositories "fancy88/iBook, me/shelf"
  bookfetch config set search.cap 30
  bookfetch config set search.repo_fallback false`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Store a GitHub token without echoing it",
	Long: `Prompts for a GitHub personal access token and stores it as github.token.
Code search requires a token. GITHUB_TOKEN takes precedence when set.`,
	Args: cobra.NoArgs,
	RunE: runConfigToken,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configTokenCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if appConfig == nil {
		return errNotConfigured
	}
	s := appConfig.Settings

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	repos := make([]string, len(s.Repositories))
	for i, r := range s.Repositories {
		repos[i] = r.String()
	}
	cmd.Printf("  Repositories: %s\n", strings.Join(repos, ", "))
	cmd.Printf("  Cap: %d\n", s.Cap)
	cmd.Printf("  Extension: %s\n", s.Extension)
	cmd.Printf("  Code search page size: %d\n", s.CodePerPage)
	cmd.Printf("  Repository search page size: %d\n", s.RepoPerPage)
	fallback := "disabled"
	if s.RepoNameFallback {
		fallback = fmt.Sprintf("enabled (%d repositories, keyword %q)", s.FallbackRepos, s.FormatKeyword)
	}
	cmd.Printf("  Repository name fallback: %s\n", fallback)
	cmd.Println()

	cmd.Println("[GitHub]")
	apiURL := domain.DefaultAPIURL
	if appConfig.ConfigStore != nil {
		if configured := appConfig.ConfigStore.GetString(services.KeyAPIURL); configured != "" {
			apiURL = configured
		}
	}
	cmd.Printf("  API URL: %s\n", apiURL)
	cmd.Printf("  Raw URL: %s\n", s.RawURL)
	cmd.Printf("  Token: %s\n", describeToken())
	cmd.Println()

	cmd.Println("[Timeouts]")
	cmd.Printf("  Tree listing: %s\n", s.TreeTimeout)
	cmd.Printf("  Search: %s\n", s.SearchTimeout)
	cmd.Printf("  Download: %s\n", s.DownloadTimeout)
	cmd.Println()

	cmd.Println("[Session]")
	cmd.Printf("  Download directory: %s\n", s.DownloadDir)
	cmd.Printf("  Max rounds: %d\n", s.MaxRounds)
	cmd.Printf("  Label length: %d\n", s.LabelMaxLength)
	cmd.Printf("  Plain prompts: %t\n", appConfig.Plain)

	return nil
}

func describeToken() string {
	if env := os.Getenv("GITHUB_TOKEN"); env != "" {
		return maskToken(env) + " (GITHUB_TOKEN)"
	}
	if appConfig.ConfigStore != nil {
		if tok := appConfig.ConfigStore.GetString(services.KeyToken); tok != "" {
			return maskToken(tok)
		}
	}
	return "(not set, code search unavailable)"
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if appConfig == nil || appConfig.ConfigStore == nil {
		return errNotConfigured
	}
	cmd.Println(appConfig.ConfigStore.Path())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if appConfig == nil || appConfig.ConfigStore == nil {
		return errNotConfigured
	}
	key := args[0]
	if _, ok := configKeys[key]; !ok {
		return unknownKeyError(key)
	}

	val, ok := appConfig.ConfigStore.Get(key)
	if !ok {
		return fmt.Errorf("%s is not set", key)
	}
	if key == services.KeyToken {
		val = maskToken(fmt.Sprint(val))
	}
	cmd.Println(formatValue(val))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if appConfig == nil || appConfig.ConfigStore == nil {
		return errNotConfigured
	}
	key, raw := args[0], args[1]

	kind, ok := configKeys[key]
	if !ok {
		return unknownKeyError(key)
	}

	value, err := parseValue(kind, raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if key == services.KeyRepositories {
		if _, err := domain.ParseRepositoryRefs(value.([]string)); err != nil {
			return err
		}
	}

	if err := appConfig.ConfigStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	display := formatValue(value)
	if key == services.KeyToken {
		display = maskToken(raw)
	}
	cmd.Printf("Set %s = %s\n", key, display)
	return nil
}

func runConfigToken(cmd *cobra.Command, _ []string) error {
	if appConfig == nil || appConfig.ConfigStore == nil {
		return errNotConfigured
	}

	cmd.Print("GitHub token: ")
	token := readPassword(cmd)
	cmd.Println()
	if token == "" {
		return fmt.Errorf("%w: token is empty", domain.ErrInvalidInput)
	}

	if err := appConfig.ConfigStore.Set(services.KeyToken, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	cmd.Printf("Token %s saved to %s\n", maskToken(token), appConfig.ConfigStore.Path())
	return nil
}

// Helper functions.

func unknownKeyError(key string) error {
	known := make([]string, 0, len(configKeys))
	for k := range configKeys {
		known = append(known, k)
	}
	sort.Strings(known)
	return fmt.Errorf("%w: unknown config key %q (known keys: %s)",
		domain.ErrInvalidInput, key, strings.Join(known, ", "))
}

func parseValue(kind valueKind, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidInput, raw)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: %d must not be negative", domain.ErrInvalidInput, n)
		}
		return n, nil
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", domain.ErrInvalidInput, raw)
		}
		return b, nil
	case kindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, raw)
		}
		return f, nil
	case kindStringList:
		parts := strings.Split(raw, ",")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: list is empty", domain.ErrInvalidInput)
		}
		return list, nil
	default:
		return raw, nil
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(cmd *cobra.Command) string {
	// Try to read the token without echo
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(cmd.InOrStdin())
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
