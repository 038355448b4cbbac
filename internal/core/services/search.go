package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driving"
	"github.com/custodia-labs/bookfetch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService runs the cascading search over the stage chain.
// Scans are strictly sequential; the only state shared between them is the
// append-only accumulator and the progress counters.
type SearchService struct {
	settings domain.FinderSettings
	matcher  *TreeMatcher
	code     driven.CodeSearcher
	repos    driven.RepoSearcher
}

// NewSearchService creates a new search service.
// The code and repos searchers are optional (can be nil); a missing
// searcher makes its stage unavailable.
func NewSearchService(
	settings domain.FinderSettings,
	trees driven.TreeLister,
	code driven.CodeSearcher,
	repos driven.RepoSearcher,
) *SearchService {
	if settings.Cap <= 0 {
		settings.Cap = domain.DefaultResultCap
	}
	return &SearchService{
		settings: settings,
		matcher:  NewTreeMatcher(trees, settings.Extension, settings.TreeTimeout),
		code:     code,
		repos:    repos,
	}
}

// Search derives keywords from title and runs the stage chain.
func (s *SearchService) Search(
	ctx context.Context, title string, progress driven.ProgressSink,
) (domain.SearchResult, error) {
	query, err := domain.NewSearchQuery(title)
	if err != nil {
		logger.Debug("Rejected title %q: %v", title, err)
		return domain.SearchResult{}, err
	}
	return s.SearchQuery(ctx, query, progress)
}

// SearchQuery runs the stage chain for an already validated query.
// Each stage runs only if every earlier stage produced nothing.
func (s *SearchService) SearchQuery(
	ctx context.Context, query domain.SearchQuery, progress driven.ProgressSink,
) (domain.SearchResult, error) {
	if query.IsEmpty() {
		return domain.SearchResult{}, domain.ErrEmptyQuery
	}
	if progress == nil {
		progress = driven.ProgressFunc(func(domain.ProgressEvent) {})
	}

	result := domain.SearchResult{Query: query}
	logger.Debug("Query: %q, tokens: %v, cap: %d", query.Raw, query.Tokens, s.settings.Cap)

	stages := []func(context.Context, domain.SearchQuery, driven.ProgressSink) ([]domain.CandidateFile, domain.StageOutcome){
		s.knownRepoScan,
		s.broadCodeSearch,
		s.repoNameFallback,
	}

	for _, run := range stages {
		candidates, outcome := run(ctx, query, progress)
		result.Outcomes = append(result.Outcomes, outcome)
		result.Stage = outcome.Stage
		logger.Info("%s: %s (%d candidates, %d failures)",
			outcome.Stage.Description(), outcome.Status, outcome.Count, outcome.Failures)

		if err := ctx.Err(); err != nil {
			result.Candidates = truncate(candidates, s.settings.Cap)
			return result, err
		}
		if len(candidates) > 0 {
			result.Candidates = truncate(candidates, s.settings.Cap)
			return result, nil
		}
	}

	result.Candidates = []domain.CandidateFile{}
	return result, nil
}

// knownRepoScan scans the configured repositories in priority order.
func (s *SearchService) knownRepoScan(
	ctx context.Context, query domain.SearchQuery, progress driven.ProgressSink,
) ([]domain.CandidateFile, domain.StageOutcome) {
	logger.Section("Known Repository Scan")
	return s.scanRepositories(ctx, domain.StageKnownRepoScan, s.settings.Repositories, query, progress)
}

// broadCodeSearch issues one code search query. Any failure is absorbed.
func (s *SearchService) broadCodeSearch(
	ctx context.Context, query domain.SearchQuery, _ driven.ProgressSink,
) ([]domain.CandidateFile, domain.StageOutcome) {
	logger.Section("Broad Code Search")
	outcome := domain.StageOutcome{Stage: domain.StageBroadCodeSearch}

	if s.code == nil {
		outcome.Status = domain.StatusUnavailable
		outcome.Err = domain.ErrStageUnavailable
		return nil, outcome
	}

	callCtx, cancel := withTimeout(ctx, s.settings.SearchTimeout)
	defer cancel()

	extension := strings.TrimPrefix(s.settings.Extension, ".")
	hits, err := s.code.SearchCode(callCtx, query.Raw, extension, s.settings.CodePerPage)
	if err != nil {
		logger.Warn("Code search unavailable: %v", err)
		outcome.Status = domain.StatusUnavailable
		outcome.Err = fmt.Errorf("%w: %w", domain.ErrStageUnavailable, err)
		return nil, outcome
	}

	hits = truncate(hits, s.settings.Cap)
	outcome.Count = len(hits)
	outcome.Status = statusFor(len(hits))
	return hits, outcome
}

// repoNameFallback discovers repositories by name and scans the first few.
func (s *SearchService) repoNameFallback(
	ctx context.Context, query domain.SearchQuery, progress driven.ProgressSink,
) ([]domain.CandidateFile, domain.StageOutcome) {
	logger.Section("Repository Name Fallback")
	outcome := domain.StageOutcome{Stage: domain.StageRepoNameFallback}

	if !s.settings.RepoNameFallback {
		outcome.Status = domain.StatusSkipped
		return nil, outcome
	}
	if s.repos == nil {
		outcome.Status = domain.StatusUnavailable
		outcome.Err = domain.ErrStageUnavailable
		return nil, outcome
	}

	callCtx, cancel := withTimeout(ctx, s.settings.SearchTimeout)
	text := strings.TrimSpace(query.Raw + " " + s.settings.FormatKeyword)
	found, err := s.repos.SearchRepositories(callCtx, text, s.settings.RepoPerPage)
	cancel()
	if err != nil {
		logger.Warn("Repository search unavailable: %v", err)
		outcome.Status = domain.StatusUnavailable
		outcome.Err = fmt.Errorf("%w: %w", domain.ErrStageUnavailable, err)
		return nil, outcome
	}

	if limit := s.settings.FallbackRepos; limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	logger.Debug("Discovered repositories: %v", found)

	return s.scanRepositories(ctx, domain.StageRepoNameFallback, found, query, progress)
}

// scanRepositories runs the tree matcher over repos in order, stopping once
// the accumulator reaches the cap. Per-repository failures are counted and skipped.
func (s *SearchService) scanRepositories(
	ctx context.Context,
	stage domain.SearchStage,
	repos []domain.RepositoryRef,
	query domain.SearchQuery,
	progress driven.ProgressSink,
) ([]domain.CandidateFile, domain.StageOutcome) {
	outcome := domain.StageOutcome{Stage: stage}
	var acc []domain.CandidateFile
	scanned := 0

	for i, repo := range repos {
		if len(acc) >= s.settings.Cap || ctx.Err() != nil {
			break
		}

		progress.OnProgress(domain.ProgressEvent{
			Stage:      stage,
			Index:      i + 1,
			Total:      len(repos),
			Repository: repo.String(),
			Found:      len(acc),
		})

		scanned++
		matches, err := s.matcher.Scan(ctx, repo, query)
		if err != nil {
			outcome.Failures++
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				break
			}
			logger.Warn("Skipping %s: %v", repo, err)
			continue
		}
		logger.Debug("%s: %d matches", repo, len(matches))
		acc = append(acc, matches...)
	}

	acc = truncate(acc, s.settings.Cap)
	outcome.Count = len(acc)
	outcome.Status = statusFor(len(acc))
	if scanned > 0 && outcome.Failures == scanned {
		// Every repository was unreachable.
		outcome.Status = domain.StatusUnavailable
		outcome.Err = domain.ErrStageUnavailable
	}
	return acc, outcome
}

func statusFor(n int) domain.StageStatus {
	if n > 0 {
		return domain.StatusFound
	}
	return domain.StatusEmpty
}

func truncate(c []domain.CandidateFile, limit int) []domain.CandidateFile {
	if limit > 0 && len(c) > limit {
		return c[:limit]
	}
	return c
}
