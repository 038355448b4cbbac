// Package mcp provides an MCP (Model Context Protocol) server adapter for bookfetch.
// It lets AI assistants search the configured repositories for e-books and
// resolve download links.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingDownloadService is returned when the download service is not provided.
var ErrMissingDownloadService = errors.New("mcp: download service is required")
