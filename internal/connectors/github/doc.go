// Package github implements the remote endpoints of the book search on top
// of the GitHub REST API.
//
// A single [Client] satisfies the three driven ports used by the search:
//
//   - [driven.TreeLister]: GET /repos/{owner}/{repo}/git/trees/HEAD?recursive=1
//   - [driven.CodeSearcher]: GET /search/code?q={title} extension:epub
//   - [driven.RepoSearcher]: GET /search/repositories?q={title} epub
//
// # Authentication
//
// A personal access token is optional. Without one, tree listings are
// limited to 60 requests per hour and code search is rejected with 401,
// which the search treats as an unavailable stage.
//
// # Rate Limiting
//
// Requests pass through a token bucket (default 5 per second). The client
// also tracks X-RateLimit-Remaining and X-RateLimit-Reset; once the quota
// is spent, calls fail immediately with a [RateLimitError] until the reset
// instead of blocking the interactive session.
//
// # Errors
//
// API failures are mapped to [APIError] and [RateLimitError]. Neither is
// retried.
package github
