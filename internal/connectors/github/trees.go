package github

import (
	"context"
	"fmt"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
	"github.com/custodia-labs/bookfetch/internal/logger"
)

// headRef names the default branch tip.
const headRef = "HEAD"

// ListTree fetches the entire tree of a repository's default branch.
// Uses recursive=1 to get all paths in one API call.
func (c *Client) ListTree(ctx context.Context, repo domain.RepositoryRef) ([]driven.TreeEntry, error) {
	if err := c.rateLimiter.Wait(ctx, ResourceCore); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, repo.Owner, repo.Name, headRef, true)
	c.updateRateLimitFromResponse(ResourceCore, resp)
	if err != nil {
		return nil, c.wrapError(err, ResourceCore, "get tree "+repo.String())
	}

	if tree.GetTruncated() {
		logger.Debug("Tree of %s was truncated by the API", repo)
	}

	entries := make([]driven.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		if e.GetPath() == "" {
			continue
		}
		entries = append(entries, driven.TreeEntry{
			Path: e.GetPath(),
			Type: e.GetType(),
		})
	}
	return entries, nil
}
