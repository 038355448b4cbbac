package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
)

// CodeQuery builds the code search query for text restricted to extension.
func CodeQuery(text, extension string) string {
	extension = strings.TrimPrefix(extension, ".")
	if extension == "" {
		return strings.TrimSpace(text)
	}
	return fmt.Sprintf("%s extension:%s", strings.TrimSpace(text), extension)
}

// SearchCode runs one code search and returns the hits in API order.
// Hits without a usable repository are dropped.
func (c *Client) SearchCode(
	ctx context.Context, text, extension string, perPage int,
) ([]domain.CandidateFile, error) {
	if err := c.rateLimiter.Wait(ctx, ResourceSearch); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.SearchOptions{ListOptions: gh.ListOptions{PerPage: perPage}}
	result, resp, err := c.gh.Search.Code(ctx, CodeQuery(text, extension), opts)
	c.updateRateLimitFromResponse(ResourceSearch, resp)
	if err != nil {
		return nil, c.wrapError(err, ResourceSearch, "search code")
	}

	hits := make([]domain.CandidateFile, 0, len(result.CodeResults))
	for _, r := range result.CodeResults {
		repo, ok := repositoryRef(r.GetRepository())
		if !ok || r.GetPath() == "" {
			continue
		}
		hit := domain.NewCandidateFile(repo, r.GetPath())
		if name := r.GetName(); name != "" {
			hit.Name = name
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// SearchRepositories runs one repository search, best match first.
func (c *Client) SearchRepositories(
	ctx context.Context, text string, perPage int,
) ([]domain.RepositoryRef, error) {
	if err := c.rateLimiter.Wait(ctx, ResourceSearch); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.SearchOptions{ListOptions: gh.ListOptions{PerPage: perPage}}
	result, resp, err := c.gh.Search.Repositories(ctx, strings.TrimSpace(text), opts)
	c.updateRateLimitFromResponse(ResourceSearch, resp)
	if err != nil {
		return nil, c.wrapError(err, ResourceSearch, "search repositories")
	}

	repos := make([]domain.RepositoryRef, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		if ref, ok := repositoryRef(r); ok {
			repos = append(repos, ref)
		}
	}
	return repos, nil
}
