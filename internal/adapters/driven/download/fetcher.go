package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

const (
	// DefaultTimeout backs up the per-call context deadline.
	DefaultTimeout = 5 * time.Minute

	// DefaultMaxBytes caps one download held in memory.
	DefaultMaxBytes int64 = 512 << 20
)

// ErrTooLarge indicates the response body exceeded the size limit.
var ErrTooLarge = errors.New("download exceeds size limit")

// Ensure HTTPFetcher implements the interface.
var _ driven.Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher downloads a URL into memory.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// NewHTTPFetcher creates a fetcher. A nil client uses one with DefaultTimeout.
func NewHTTPFetcher(client *http.Client, userAgent string) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPFetcher{
		client:    client,
		userAgent: userAgent,
		maxBytes:  DefaultMaxBytes,
	}
}

// WithMaxBytes sets the size limit. Non-positive values disable it.
func (f *HTTPFetcher) WithMaxBytes(n int64) *HTTPFetcher {
	f.maxBytes = n
	return f
}

// Fetch GETs url and returns the body. Any non-2xx status is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if f.maxBytes <= 0 {
		return io.ReadAll(resp.Body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, f.maxBytes)
	}
	return data, nil
}
