package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [title]",
	Short: "Search for EPUB files without prompting",
	Long: `Runs the cascading search once and prints the candidates.
Known repositories are scanned first, then GitHub code search is tried,
then repositories found by name are scanned.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if appConfig == nil || appConfig.Search == nil {
		return errNotConfigured
	}

	title := strings.Join(args, " ")

	var progress driven.ProgressSink
	if !searchJSON {
		progress = driven.ProgressFunc(func(e domain.ProgressEvent) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] Scanning %s (%d found)\n", e.Index, e.Total, e.Repository, e.Found)
		})
	}

	result, err := appConfig.Search.Search(cmd.Context(), title, progress)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	candidates := result.Candidates
	if searchLimit > 0 && len(candidates) > searchLimit {
		candidates = candidates[:searchLimit]
	}

	if searchJSON {
		return outputSearchJSON(cmd, result, candidates)
	}
	return outputSearchTable(cmd, result, candidates)
}

type searchCandidateJSON struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Repository  string `json:"repository"`
	DownloadURL string `json:"download_url,omitempty"`
}

type searchOutcomeJSON struct {
	Stage    string `json:"stage"`
	Status   string `json:"status"`
	Count    int    `json:"count"`
	Failures int    `json:"failures,omitempty"`
	Error    string `json:"error,omitempty"`
}

type searchResultJSON struct {
	Query      string                `json:"query"`
	Stage      string                `json:"stage"`
	Candidates []searchCandidateJSON `json:"candidates"`
	Outcomes   []searchOutcomeJSON   `json:"outcomes"`
}

func outputSearchJSON(cmd *cobra.Command, result domain.SearchResult, candidates []domain.CandidateFile) error {
	out := searchResultJSON{
		Query:      result.Query.Raw,
		Stage:      result.Stage.String(),
		Candidates: make([]searchCandidateJSON, len(candidates)),
		Outcomes:   make([]searchOutcomeJSON, len(result.Outcomes)),
	}
	for i, c := range candidates {
		out.Candidates[i] = searchCandidateJSON{
			Name:       c.Name,
			Path:       c.Path,
			Repository: c.Repository.String(),
		}
		if appConfig.Downloads != nil {
			out.Candidates[i].DownloadURL = appConfig.Downloads.ResolveURL(c)
		}
	}
	for i, o := range result.Outcomes {
		out.Outcomes[i] = searchOutcomeJSON{
			Stage:    o.Stage.String(),
			Status:   string(o.Status),
			Count:    o.Count,
			Failures: o.Failures,
		}
		if o.Err != nil {
			out.Outcomes[i].Error = o.Err.Error()
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, result domain.SearchResult, candidates []domain.CandidateFile) error {
	if len(candidates) == 0 {
		cmd.Println("No matching e-books were found.")
		printOutcomes(cmd, result)
		return nil
	}

	cmd.Printf("Found %d e-books (%s):\n\n", len(candidates), result.Stage.Description())
	for i, c := range candidates {
		// Format: [N] Name (repo)
		//         owner/name/path
		cmd.Printf("[%d] %s\n", i+1, c.Label())
		cmd.Printf("    %s/%s\n", c.Repository.String(), c.Path)
	}
	cmd.Println()
	printOutcomes(cmd, result)
	return nil
}

func printOutcomes(cmd *cobra.Command, result domain.SearchResult) {
	for _, o := range result.Outcomes {
		line := fmt.Sprintf("  %-24s %s", o.Stage.Description()+":", o.Status)
		if o.Count > 0 {
			line += fmt.Sprintf(" (%d)", o.Count)
		}
		if o.Failures > 0 {
			line += fmt.Sprintf(", %d repositories failed", o.Failures)
		}
		cmd.Println(line)
	}
}
