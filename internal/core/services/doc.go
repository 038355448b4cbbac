// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search engine is a chain of stages: known repositories are scanned
// first, then a broad code search, then repositories discovered by name.
// Every remote failure is absorbed at the smallest scope and recorded in
// the stage outcome.
//
// Services are pure Go with no CGO or external dependencies.
package services
