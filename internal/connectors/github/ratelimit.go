package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// UnauthenticatedRateLimit is the hourly core limit without a token.
	UnauthenticatedRateLimit = 60

	// UnauthenticatedSearchLimit is the per-minute search limit without a token.
	UnauthenticatedSearchLimit = 10

	// DefaultRequestsPerSecond is the proactive throttle rate.
	DefaultRequestsPerSecond = 5.0

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRateResource names the quota a response was counted against.
	HeaderRateResource = "X-RateLimit-Resource"
)

// Resource is a GitHub quota category. Each one is counted separately.
type Resource string

const (
	// ResourceCore covers the REST endpoints, tree listing included.
	ResourceCore Resource = "core"

	// ResourceSearch covers /search/code and /search/repositories.
	ResourceSearch Resource = "search"
)

// quota is the last state GitHub reported for one resource.
type quota struct {
	remaining int // -1 until the first response
	limit     int
	resetTime time.Time
}

// RateLimiter throttles requests and tracks the quota GitHub reports per
// resource. It never sleeps until a quota reset; an exhausted quota fails
// fast with a RateLimitError so the calling stage can degrade instead of
// hanging. Spending one resource never blocks another.
type RateLimiter struct {
	mu     sync.Mutex
	quotas map[Resource]*quota
	bucket *rate.Limiter // Proactive throttling, shared by all resources
}

// NewRateLimiter creates a rate limiter allowing perSecond requests.
// Zero uses DefaultRequestsPerSecond; a negative value disables throttling.
func NewRateLimiter(perSecond float64) *RateLimiter {
	limit := rate.Limit(perSecond)
	switch {
	case perSecond == 0:
		limit = rate.Limit(DefaultRequestsPerSecond)
	case perSecond < 0:
		limit = rate.Inf
	}

	return &RateLimiter{
		quotas: map[Resource]*quota{
			ResourceCore:   {remaining: -1, limit: UnauthenticatedRateLimit},
			ResourceSearch: {remaining: -1, limit: UnauthenticatedSearchLimit},
		},
		bucket: rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until the token bucket admits a request against resource.
// Returns a RateLimitError without waiting if that resource's quota is spent.
func (r *RateLimiter) Wait(ctx context.Context, resource Resource) error {
	r.mu.Lock()
	q := *r.quota(resource)
	r.mu.Unlock()

	if q.remaining == 0 && time.Now().Before(q.resetTime) {
		return &RateLimitError{ResetAt: q.resetTime, Remaining: 0, Limit: q.limit}
	}

	return r.bucket.Wait(ctx)
}

// UpdateFromResponse updates rate limit state from response headers.
// The X-RateLimit-Resource header decides which quota is updated; when it
// is absent the response is counted against resource.
func (r *RateLimiter) UpdateFromResponse(resource Resource, resp *http.Response) {
	if resp == nil {
		return
	}
	if name := resp.Header.Get(HeaderRateResource); name != "" {
		resource = Resource(name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	q := r.quota(resource)

	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			q.remaining = val
		}
	}

	if limit := resp.Header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			q.limit = val
		}
	}

	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			q.resetTime = time.Unix(val, 0)
		}
	}
}

// Remaining returns the last reported remaining requests for resource,
// or -1 if unknown.
func (r *RateLimiter) Remaining(resource Resource) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota(resource).remaining
}

// Limit returns the rate limit for resource.
func (r *RateLimiter) Limit(resource Resource) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota(resource).limit
}

// ResetTime returns the reset time for resource.
func (r *RateLimiter) ResetTime(resource Resource) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota(resource).resetTime
}

// quota returns the state for resource, creating it on first use.
// Caller must hold mu.
func (r *RateLimiter) quota(resource Resource) *quota {
	q, ok := r.quotas[resource]
	if !ok {
		q = &quota{remaining: -1}
		r.quotas[resource] = q
	}
	return q
}
