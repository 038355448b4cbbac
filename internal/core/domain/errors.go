package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyQuery indicates the title produced no keyword tokens.
	// Callers must reject the query before any network call.
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates every search stage came back empty.
	// It is reported to the user as "not found", never as a failure.
	ErrNotFound = errors.New("not found")

	// ErrStageUnavailable indicates a search endpoint could not be used
	// (network failure, non-success status, malformed payload, no credentials).
	ErrStageUnavailable = errors.New("search stage unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrCancelled indicates the user dismissed a prompt.
	ErrCancelled = errors.New("cancelled by user")

	// ErrDownloadFailed indicates the byte transfer or file write failed.
	ErrDownloadFailed = errors.New("download failed")
)
