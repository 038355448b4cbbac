package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockTreeLister implements driven.TreeLister for testing.
type mockTreeLister struct {
	mu     sync.Mutex
	trees  map[string][]driven.TreeEntry
	errs   map[string]error
	calls  []string
	onList func(repo domain.RepositoryRef)
}

func newMockTreeLister() *mockTreeLister {
	return &mockTreeLister{
		trees: make(map[string][]driven.TreeEntry),
		errs:  make(map[string]error),
	}
}

func (m *mockTreeLister) ListTree(_ context.Context, repo domain.RepositoryRef) ([]driven.TreeEntry, error) {
	m.mu.Lock()
	m.calls = append(m.calls, repo.String())
	m.mu.Unlock()

	if m.onList != nil {
		m.onList(repo)
	}
	if err := m.errs[repo.String()]; err != nil {
		return nil, err
	}
	return m.trees[repo.String()], nil
}

func (m *mockTreeLister) withFiles(repo string, paths ...string) *mockTreeLister {
	for _, p := range paths {
		m.trees[repo] = append(m.trees[repo], driven.TreeEntry{Path: p, Type: "blob"})
	}
	return m
}

// mockCodeSearcher implements driven.CodeSearcher for testing.
type mockCodeSearcher struct {
	hits    []domain.CandidateFile
	err     error
	calls   int
	text    string
	ext     string
	perPage int
}

func (m *mockCodeSearcher) SearchCode(_ context.Context, text, ext string, perPage int) ([]domain.CandidateFile, error) {
	m.calls++
	m.text, m.ext, m.perPage = text, ext, perPage
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

// mockRepoSearcher implements driven.RepoSearcher for testing.
type mockRepoSearcher struct {
	repos   []domain.RepositoryRef
	err     error
	calls   int
	text    string
	perPage int
}

func (m *mockRepoSearcher) SearchRepositories(_ context.Context, text string, perPage int) ([]domain.RepositoryRef, error) {
	m.calls++
	m.text, m.perPage = text, perPage
	if m.err != nil {
		return nil, m.err
	}
	return m.repos, nil
}

// progressRecorder collects progress events synchronously.
type progressRecorder struct {
	mu     sync.Mutex
	events []domain.ProgressEvent
}

func (r *progressRecorder) OnProgress(e domain.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *progressRecorder) Events() []domain.ProgressEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ProgressEvent(nil), r.events...)
}

func repoRef(s string) domain.RepositoryRef {
	ref, err := domain.ParseRepositoryRef(s)
	if err != nil {
		panic(err)
	}
	return ref
}

func testSettings(repos ...string) domain.FinderSettings {
	settings := domain.DefaultFinderSettings()
	if len(repos) > 0 {
		settings.Repositories = make([]domain.RepositoryRef, len(repos))
		for i, r := range repos {
			settings.Repositories[i] = repoRef(r)
		}
	}
	settings.TreeTimeout = 0
	settings.SearchTimeout = 0
	settings.DownloadTimeout = 0
	return settings
}

// --- Tests ---

func TestSearchService_EmptyTitle(t *testing.T) {
	trees := newMockTreeLister()
	code := &mockCodeSearcher{}
	repos := &mockRepoSearcher{}
	svc := NewSearchService(testSettings("a/one"), trees, code, repos)

	for _, title := range []string{"", "   ", ",，, "} {
		_, err := svc.Search(context.Background(), title, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyQuery, "title %q", title)
	}

	assert.Empty(t, trees.calls)
	assert.Zero(t, code.calls)
	assert.Zero(t, repos.calls)
}

func TestSearchService_KnownReposShortCircuit(t *testing.T) {
	trees := newMockTreeLister().
		withFiles("a/one", "books/Clean_Code.epub", "books/notes.md")
	code := &mockCodeSearcher{hits: []domain.CandidateFile{
		domain.NewCandidateFile(repoRef("x/y"), "Clean.epub"),
	}}
	repos := &mockRepoSearcher{}
	svc := NewSearchService(testSettings("a/one"), trees, code, repos)

	result, err := svc.Search(context.Background(), "clean", nil)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "Clean_Code.epub", result.Candidates[0].Name)
	assert.Equal(t, domain.StageKnownRepoScan, result.Stage)
	assert.Zero(t, code.calls, "code search must not run when known repos found something")
	assert.Zero(t, repos.calls, "repo search must not run when known repos found something")
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, domain.StatusFound, result.Outcomes[0].Status)
}

func TestSearchService_AllKnownReposFail(t *testing.T) {
	trees := newMockTreeLister()
	trees.errs["a/one"] = errors.New("connection refused")
	trees.errs["a/two"] = errors.New("HTTP 500")

	hit := domain.NewCandidateFile(repoRef("x/y"), "lib/Dune.epub")
	code := &mockCodeSearcher{hits: []domain.CandidateFile{hit}}
	svc := NewSearchService(testSettings("a/one", "a/two"), trees, code, &mockRepoSearcher{})

	result, err := svc.Search(context.Background(), "Dune", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a/one", "a/two"}, trees.calls)
	assert.Equal(t, 1, code.calls)
	assert.Equal(t, "Dune", code.text)
	assert.Equal(t, "epub", code.ext)
	assert.Equal(t, domain.DefaultCodePerPage, code.perPage)
	assert.Equal(t, []domain.CandidateFile{hit}, result.Candidates)
	assert.Equal(t, domain.StageBroadCodeSearch, result.Stage)

	known, ok := result.Outcome(domain.StageKnownRepoScan)
	require.True(t, ok)
	assert.Equal(t, domain.StatusUnavailable, known.Status)
	assert.Equal(t, 2, known.Failures)
	assert.ErrorIs(t, known.Err, domain.ErrStageUnavailable)
}

func TestSearchService_PartialRepoFailureIsSkipped(t *testing.T) {
	trees := newMockTreeLister().withFiles("a/three", "Go/The Go Programming Language.epub")
	trees.errs["a/one"] = errors.New("timeout")

	svc := NewSearchService(testSettings("a/one", "a/two", "a/three"), trees, nil, nil)

	result, err := svc.Search(context.Background(), "Go", nil)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	outcome, ok := result.Outcome(domain.StageKnownRepoScan)
	require.True(t, ok)
	assert.Equal(t, domain.StatusFound, outcome.Status)
	assert.Equal(t, 1, outcome.Failures)
}

func TestSearchService_CapTruncatesInScanOrder(t *testing.T) {
	trees := newMockTreeLister()
	for i := 0; i < 15; i++ {
		trees.withFiles("a/one", fmt.Sprintf("one/go-%02d.epub", i))
		trees.withFiles("a/two", fmt.Sprintf("two/go-%02d.epub", i))
	}
	trees.withFiles("a/three", "three/go.epub")

	svc := NewSearchService(testSettings("a/one", "a/two", "a/three"), trees, nil, nil)
	result, err := svc.Search(context.Background(), "go", nil)
	require.NoError(t, err)

	require.Len(t, result.Candidates, domain.DefaultResultCap)
	for i := 0; i < 15; i++ {
		assert.Equal(t, fmt.Sprintf("one/go-%02d.epub", i), result.Candidates[i].Path)
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, fmt.Sprintf("two/go-%02d.epub", i), result.Candidates[15+i].Path)
	}
	assert.Equal(t, []string{"a/one", "a/two"}, trees.calls, "scan stops once the cap is reached")
}

func TestSearchService_ConfigurableCap(t *testing.T) {
	trees := newMockTreeLister().withFiles("a/one", "a.epub", "b.epub", "c.epub")
	settings := testSettings("a/one")
	settings.Cap = 2

	result, err := NewSearchService(settings, trees, nil, nil).Search(context.Background(), "epub", nil)
	require.NoError(t, err)
	assert.Len(t, result.Candidates, 2)
}

func TestSearchService_ProgressEvents(t *testing.T) {
	repos := []string{"a/one", "a/two", "a/three", "a/four", "a/five"}
	trees := newMockTreeLister().withFiles("a/three", "Clean_Code.epub")
	recorder := &progressRecorder{}

	svc := NewSearchService(testSettings(repos...), trees, &mockCodeSearcher{}, &mockRepoSearcher{})
	result, err := svc.Search(context.Background(), "clean code", recorder)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	events := recorder.Events()
	require.Len(t, events, 5)
	for i, e := range events {
		assert.Equal(t, i+1, e.Index)
		assert.Equal(t, 5, e.Total)
		assert.Equal(t, repos[i], e.Repository)
		assert.Equal(t, domain.StageKnownRepoScan, e.Stage)
	}
	assert.Equal(t, 0, events[2].Found)
	assert.Equal(t, 1, events[3].Found)
	assert.Equal(t, 1, events[4].Found)
}

func TestSearchService_CodeSearchFailureFallsBackToRepoNames(t *testing.T) {
	trees := newMockTreeLister().withFiles("found/books", "dune/Dune.epub", "README.md")
	code := &mockCodeSearcher{err: errors.New("requires authentication")}
	repos := &mockRepoSearcher{repos: []domain.RepositoryRef{
		repoRef("found/books"), repoRef("other/b"), repoRef("other/c"), repoRef("other/d"),
	}}
	recorder := &progressRecorder{}

	svc := NewSearchService(testSettings("a/one"), trees, code, repos)
	result, err := svc.Search(context.Background(), "Dune", recorder)
	require.NoError(t, err)

	assert.Equal(t, "Dune epub", repos.text)
	assert.Equal(t, domain.DefaultRepoPerPage, repos.perPage)
	assert.Equal(t, []string{"a/one", "found/books", "other/b", "other/c"}, trees.calls,
		"only the first three discovered repositories are scanned")

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, domain.StageRepoNameFallback, result.Stage)

	codeOutcome, ok := result.Outcome(domain.StageBroadCodeSearch)
	require.True(t, ok)
	assert.Equal(t, domain.StatusUnavailable, codeOutcome.Status)
	assert.ErrorIs(t, codeOutcome.Err, domain.ErrStageUnavailable)

	events := recorder.Events()
	require.Len(t, events, 4)
	assert.Equal(t, domain.StageRepoNameFallback, events[1].Stage)
	assert.Equal(t, 1, events[1].Index)
	assert.Equal(t, 3, events[1].Total)
}

func TestSearchService_AllStagesEmpty(t *testing.T) {
	trees := newMockTreeLister().withFiles("a/one", "unrelated.epub")
	code := &mockCodeSearcher{}
	repos := &mockRepoSearcher{}

	result, err := NewSearchService(testSettings("a/one"), trees, code, repos).
		Search(context.Background(), "Dune", nil)
	require.NoError(t, err)

	assert.True(t, result.IsEmpty())
	assert.NotNil(t, result.Candidates)
	assert.Len(t, result.Outcomes, 3)
	assert.Equal(t, 1, code.calls)
	assert.Equal(t, 1, repos.calls)
}

func TestSearchService_FallbackDisabled(t *testing.T) {
	repos := &mockRepoSearcher{repos: []domain.RepositoryRef{repoRef("x/y")}}
	settings := testSettings("a/one")
	settings.RepoNameFallback = false

	result, err := NewSearchService(settings, newMockTreeLister(), &mockCodeSearcher{}, repos).
		Search(context.Background(), "Dune", nil)
	require.NoError(t, err)

	assert.Zero(t, repos.calls)
	outcome, ok := result.Outcome(domain.StageRepoNameFallback)
	require.True(t, ok)
	assert.Equal(t, domain.StatusSkipped, outcome.Status)
}

func TestSearchService_MissingSearchers(t *testing.T) {
	result, err := NewSearchService(testSettings("a/one"), newMockTreeLister(), nil, nil).
		Search(context.Background(), "Dune", nil)
	require.NoError(t, err)

	assert.True(t, result.IsEmpty())
	for _, stage := range []domain.SearchStage{domain.StageBroadCodeSearch, domain.StageRepoNameFallback} {
		outcome, ok := result.Outcome(stage)
		require.True(t, ok)
		assert.Equal(t, domain.StatusUnavailable, outcome.Status, stage.String())
	}
}

func TestSearchService_CodeSearchCapped(t *testing.T) {
	hits := make([]domain.CandidateFile, 30)
	for i := range hits {
		hits[i] = domain.NewCandidateFile(repoRef("x/y"), fmt.Sprintf("%d.epub", i))
	}
	result, err := NewSearchService(testSettings("a/one"), newMockTreeLister(), &mockCodeSearcher{hits: hits}, nil).
		Search(context.Background(), "anything", nil)
	require.NoError(t, err)

	require.Len(t, result.Candidates, domain.DefaultResultCap)
	assert.Equal(t, hits[:domain.DefaultResultCap], result.Candidates)
}

func TestSearchService_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	trees := newMockTreeLister()
	trees.onList = func(domain.RepositoryRef) { cancel() }
	code := &mockCodeSearcher{}

	_, err := NewSearchService(testSettings("a/one", "a/two"), trees, code, nil).
		Search(ctx, "Dune", nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a/one"}, trees.calls)
	assert.Zero(t, code.calls)
}
