package mcp

import (
	"context"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result   domain.SearchResult
	err      error
	gotTitle string
}

func (m *mockSearchService) Search(
	_ context.Context,
	title string,
	_ driven.ProgressSink,
) (domain.SearchResult, error) {
	m.gotTitle = title
	return m.result, m.err
}

// mockDownloadService is a mock implementation of driving.DownloadService.
type mockDownloadService struct{}

func (m *mockDownloadService) ResolveURL(c domain.CandidateFile) string {
	return "https://example.test/" + c.Repository.String() + "/raw/HEAD/" + c.Path
}

func (m *mockDownloadService) DefaultDestination(c domain.CandidateFile) string {
	return "/downloads/" + c.Name
}

func (m *mockDownloadService) Download(_ context.Context, _ domain.CandidateFile, dest string) (string, error) {
	return dest, nil
}
