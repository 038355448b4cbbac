package driving

import (
	"context"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

// SearchService provides the cascading book search to external actors.
type SearchService interface {
	// Search derives keywords from a title and runs the stage chain.
	// An empty result is "not found", not an error. The only errors are
	// domain.ErrEmptyQuery and context cancellation.
	Search(ctx context.Context, title string, progress driven.ProgressSink) (domain.SearchResult, error)
}

// DownloadService resolves and persists a chosen candidate.
type DownloadService interface {
	// ResolveURL returns the raw-content URL of a candidate.
	ResolveURL(candidate domain.CandidateFile) string

	// DefaultDestination returns the suggested save path for a candidate.
	DefaultDestination(candidate domain.CandidateFile) string

	// Download fetches a candidate and writes it to dest, returning the
	// final path (with the book extension ensured).
	Download(ctx context.Context, candidate domain.CandidateFile, dest string) (string, error)
}

// SessionRunner runs the interactive prompt, search, select and download loop.
type SessionRunner interface {
	// Run returns nil on completion and on user cancellation.
	Run(ctx context.Context) error
}
