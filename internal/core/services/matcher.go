package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

const blobEntry = "blob"

// TreeMatcher finds book files in one repository's file listing.
type TreeMatcher struct {
	lister    driven.TreeLister
	extension string
	timeout   time.Duration
}

// NewTreeMatcher creates a matcher for files ending in extension.
// A zero timeout leaves the call bounded only by the caller's context.
func NewTreeMatcher(lister driven.TreeLister, extension string, timeout time.Duration) *TreeMatcher {
	if extension == "" {
		extension = domain.DefaultExtension
	}
	return &TreeMatcher{
		lister:    lister,
		extension: extension,
		timeout:   timeout,
	}
}

// Scan lists repo and returns every book file matching the query, in
// listing order. On failure it returns an empty slice together with the
// error; callers only use the error for logging and outcome accounting.
func (m *TreeMatcher) Scan(
	ctx context.Context, repo domain.RepositoryRef, query domain.SearchQuery,
) ([]domain.CandidateFile, error) {
	matches := []domain.CandidateFile{}
	if m.lister == nil {
		return matches, fmt.Errorf("scan %s: %w", repo, domain.ErrStageUnavailable)
	}

	callCtx, cancel := withTimeout(ctx, m.timeout)
	defer cancel()

	entries, err := m.lister.ListTree(callCtx, repo)
	if err != nil {
		return matches, fmt.Errorf("scan %s: %w", repo, err)
	}

	for _, entry := range entries {
		if entry.Type != "" && entry.Type != blobEntry {
			continue
		}
		if !strings.HasSuffix(entry.Path, m.extension) {
			continue
		}
		if query.Matches(entry.Path, path.Base(entry.Path)) {
			matches = append(matches, domain.NewCandidateFile(repo, entry.Path))
		}
	}

	return matches, nil
}

// withTimeout derives a per-call context. Non-positive durations only add cancellation.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
