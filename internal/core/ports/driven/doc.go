// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Remote Endpoints
//
//   - TreeLister: recursive file listing of one repository
//   - CodeSearcher: general code search with an extension filter
//   - RepoSearcher: repository name search
//
// All three are best-effort. Any failure is absorbed by the core and
// degrades the calling stage to zero results.
//
// # Collaborators
//
//   - Presenter: prompts, list selection, confirmations and alerts
//   - ProgressSink: fire-and-forget scan progress
//   - Fetcher / FileWriter: byte transfer and atomic file persistence
//   - Opener: hands a downloaded file to the operating system
//   - ConfigStore: application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
