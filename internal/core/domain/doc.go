// Package domain defines the core business entities for bookfetch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchQuery: A title and the keyword tokens derived from it
//   - RepositoryRef: An owner/name pair identifying a remote repository
//   - CandidateFile: A matching book file found during a search
//   - SearchResult: The ordered, capped candidates of one search
//   - ProgressEvent: A transient scan progress notification
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
