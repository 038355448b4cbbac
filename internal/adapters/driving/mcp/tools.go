package mcp

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
)

// FindInput is the input schema for the find_ebook tool.
type FindInput struct {
	Title string `json:"title" jsonschema:"the book title or keywords, separated by spaces or commas"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of candidates to return (default: all)"`
}

// FindOutput is the output schema for the find_ebook tool.
type FindOutput struct {
	Stage      string            `json:"stage"`
	Count      int               `json:"count"`
	Candidates []CandidateOutput `json:"candidates"`
	Stages     []StageOutput     `json:"stages"`
}

// CandidateOutput represents a single candidate file.
type CandidateOutput struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Repository  string `json:"repository"`
	Label       string `json:"label"`
	DownloadURL string `json:"download_url"`
}

// StageOutput summarises one visited search stage.
type StageOutput struct {
	Stage    string `json:"stage"`
	Status   string `json:"status"`
	Count    int    `json:"count"`
	Failures int    `json:"failures,omitempty"`
	Error    string `json:"error,omitempty"`
}

// DownloadURLInput is the input schema for the download_url tool.
type DownloadURLInput struct {
	Repository string `json:"repository" jsonschema:"the repository as owner/name"`
	Path       string `json:"path" jsonschema:"the file path inside the repository"`
}

// DownloadURLOutput is the output schema for the download_url tool.
type DownloadURLOutput struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_ebook",
		Description: "Search GitHub repositories for EPUB files matching a book title",
	}, s.handleFind)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "download_url",
		Description: "Resolve the raw download link and safe file name of an EPUB file",
	}, s.handleDownloadURL)
}

// handleFind handles the find_ebook tool invocation.
func (s *Server) handleFind(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindInput,
) (*mcp.CallToolResult, FindOutput, error) {
	result, err := s.ports.Search.Search(ctx, input.Title, nil)
	if err != nil {
		return nil, FindOutput{}, err
	}

	candidates := result.Candidates
	if input.Limit > 0 && len(candidates) > input.Limit {
		candidates = candidates[:input.Limit]
	}

	output := FindOutput{
		Stage:      result.Stage.String(),
		Count:      len(candidates),
		Candidates: make([]CandidateOutput, len(candidates)),
		Stages:     make([]StageOutput, len(result.Outcomes)),
	}

	for i, c := range candidates {
		output.Candidates[i] = CandidateOutput{
			Name:        c.Name,
			Path:        c.Path,
			Repository:  c.Repository.String(),
			Label:       c.Label(),
			DownloadURL: s.ports.Downloads.ResolveURL(c),
		}
	}

	for i, o := range result.Outcomes {
		output.Stages[i] = StageOutput{
			Stage:    o.Stage.String(),
			Status:   string(o.Status),
			Count:    o.Count,
			Failures: o.Failures,
		}
		if o.Err != nil {
			output.Stages[i].Error = o.Err.Error()
		}
	}

	return nil, output, nil
}

// handleDownloadURL handles the download_url tool invocation.
func (s *Server) handleDownloadURL(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DownloadURLInput,
) (*mcp.CallToolResult, DownloadURLOutput, error) {
	repo, err := domain.ParseRepositoryRef(input.Repository)
	if err != nil {
		return nil, DownloadURLOutput{}, err
	}

	filePath := strings.Trim(strings.TrimSpace(input.Path), "/")
	if filePath == "" {
		return nil, DownloadURLOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	candidate := domain.NewCandidateFile(repo, filePath)
	return nil, DownloadURLOutput{
		URL:      s.ports.Downloads.ResolveURL(candidate),
		Filename: path.Base(s.ports.Downloads.DefaultDestination(candidate)),
	}, nil
}
