package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

// DefaultTimeout is the HTTP request timeout. Callers usually set a shorter
// per-call deadline through the context.
const DefaultTimeout = 2 * time.Minute

// Ensure Client implements the remote endpoint interfaces.
var (
	_ driven.TreeLister   = (*Client)(nil)
	_ driven.CodeSearcher = (*Client)(nil)
	_ driven.RepoSearcher = (*Client)(nil)
)

// Options configures a Client.
type Options struct {
	// Token is an optional personal access token. Without one, code search
	// is rejected by GitHub and tree listing is limited to 60 requests/hour.
	Token string

	// BaseURL is the REST API root. Defaults to https://api.github.com/.
	BaseURL string

	// UserAgent is sent with every request.
	UserAgent string

	// RequestsPerSecond throttles outgoing requests. Zero uses the default,
	// a negative value disables throttling.
	RequestsPerSecond float64

	// HTTPClient is the base transport. Defaults to a client with DefaultTimeout.
	HTTPClient *http.Client
}

// Client wraps the go-github client with rate limiting and error mapping.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewClient creates a GitHub API client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		base := httpClient
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = base.Timeout
	}

	client := gh.NewClient(httpClient)

	if opts.BaseURL != "" && opts.BaseURL != domain.DefaultAPIURL {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("%w: api url %q: %w", domain.ErrInvalidInput, opts.BaseURL, err)
		}
		client.BaseURL = u
	}

	if opts.UserAgent != "" {
		client.UserAgent = opts.UserAgent
	}

	return &Client{
		gh:          client,
		rateLimiter: NewRateLimiter(opts.RequestsPerSecond),
	}, nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resource Resource, resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resource, resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, resource Resource, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Now()
		if abuseErr.RetryAfter != nil {
			resetAt = resetAt.Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{ResetAt: resetAt, Limit: c.rateLimiter.Limit(resource)}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// repositoryRef converts an API repository to a domain reference.
func repositoryRef(r *gh.Repository) (domain.RepositoryRef, bool) {
	if r == nil {
		return domain.RepositoryRef{}, false
	}
	if ref, err := domain.ParseRepositoryRef(r.GetFullName()); err == nil {
		return ref, true
	}
	owner, name := r.GetOwner().GetLogin(), r.GetName()
	if owner == "" || name == "" {
		return domain.RepositoryRef{}, false
	}
	return domain.RepositoryRef{Owner: owner, Name: name}, true
}
