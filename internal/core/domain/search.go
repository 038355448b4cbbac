package domain

import (
	"fmt"
	"path"
)

// CandidateFile is a book file that matched a query.
// Values are produced by a tree match or a code search hit and never mutated.
type CandidateFile struct {
	// Name is the base file name.
	Name string

	// Path is the full path within the repository.
	Path string

	// Repository owns the file.
	Repository RepositoryRef
}

// NewCandidateFile creates a candidate from a repository path.
func NewCandidateFile(repo RepositoryRef, filePath string) CandidateFile {
	return CandidateFile{
		Name:       path.Base(filePath),
		Path:       filePath,
		Repository: repo,
	}
}

// Label returns the display label "<file name> (<repository short name>)".
func (c CandidateFile) Label() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Repository.ShortName())
}

// SearchStage is one strategy in the fallback chain.
// Stages are ordered; a search only ever moves forward.
type SearchStage int

const (
	// StageKnownRepoScan scans the curated repository list.
	StageKnownRepoScan SearchStage = iota
	// StageBroadCodeSearch queries the general code search endpoint.
	StageBroadCodeSearch
	// StageRepoNameFallback discovers repositories by name and scans them.
	StageRepoNameFallback
)

// String returns the string representation of the stage.
func (s SearchStage) String() string {
	switch s {
	case StageKnownRepoScan:
		return "known_repo_scan"
	case StageBroadCodeSearch:
		return "broad_code_search"
	case StageRepoNameFallback:
		return "repo_name_fallback"
	default:
		return "unknown"
	}
}

// Description returns a human-readable description of the stage.
func (s SearchStage) Description() string {
	switch s {
	case StageKnownRepoScan:
		return "Known repositories"
	case StageBroadCodeSearch:
		return "Code search"
	case StageRepoNameFallback:
		return "Repository name search"
	default:
		return "Unknown"
	}
}

// StageStatus classifies what a stage produced.
type StageStatus string

const (
	// StatusFound means the stage produced at least one candidate.
	StatusFound StageStatus = "found"
	// StatusEmpty means the stage ran and found nothing.
	StatusEmpty StageStatus = "empty"
	// StatusUnavailable means the stage's endpoint could not be used.
	StatusUnavailable StageStatus = "unavailable"
	// StatusSkipped means the stage is disabled by configuration.
	StatusSkipped StageStatus = "skipped"
)

// StageOutcome records the result of one visited stage.
type StageOutcome struct {
	Stage  SearchStage
	Status StageStatus

	// Count is the number of candidates the stage contributed.
	Count int

	// Failures counts absorbed per-repository errors within the stage.
	Failures int

	// Err is the absorbed error for an unavailable stage.
	Err error
}

// SearchResult is the ordered outcome of one search.
type SearchResult struct {
	// Query is the query that was searched.
	Query SearchQuery

	// Candidates is in discovery order and never longer than the cap.
	Candidates []CandidateFile

	// Stage is the stage that produced Candidates (the last stage visited).
	Stage SearchStage

	// Outcomes has one entry per visited stage, in visiting order.
	Outcomes []StageOutcome
}

// IsEmpty returns true if no stage found anything.
func (r SearchResult) IsEmpty() bool {
	return len(r.Candidates) == 0
}

// Len returns the number of candidates.
func (r SearchResult) Len() int {
	return len(r.Candidates)
}

// Outcome returns the outcome recorded for a stage, if it was visited.
func (r SearchResult) Outcome(stage SearchStage) (StageOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Stage == stage {
			return o, true
		}
	}
	return StageOutcome{}, false
}

// ProgressEvent reports scan progress. It is transient and only consumed by the presenter.
type ProgressEvent struct {
	// Stage is the stage doing the scanning.
	Stage SearchStage

	// Index is the 1-based position of the repository being scanned.
	Index int

	// Total is the number of repositories the stage will scan at most.
	Total int

	// Repository is the label of the repository about to be scanned.
	Repository string

	// Found is the running candidate count before this repository.
	Found int
}
