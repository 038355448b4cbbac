package driven

import (
	"context"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
)

// TreeEntry is one path in a repository's recursive file listing.
type TreeEntry struct {
	// Path is the full path within the repository.
	Path string

	// Type is "blob" for files and "tree" for directories.
	Type string
}

// TreeLister retrieves the complete recursive file listing of a repository.
type TreeLister interface {
	// ListTree returns every entry of the repository's default branch
	// in listing order, using a single remote call.
	ListTree(ctx context.Context, repo domain.RepositoryRef) ([]TreeEntry, error)
}

// CodeSearcher queries a general code search endpoint.
type CodeSearcher interface {
	// SearchCode runs a free-text query restricted to files with the given
	// extension and returns hits in the order the endpoint reports them.
	SearchCode(ctx context.Context, text, extension string, perPage int) ([]domain.CandidateFile, error)
}

// RepoSearcher queries a repository search endpoint.
type RepoSearcher interface {
	// SearchRepositories returns repositories matching a free-text query,
	// best match first.
	SearchRepositories(ctx context.Context, text string, perPage int) ([]domain.RepositoryRef, error)
}
