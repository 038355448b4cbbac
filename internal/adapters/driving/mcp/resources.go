package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for bookfetch resources.
	uriScheme = "bookfetch://"

	repositoriesURI = uriScheme + "repositories"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         repositoriesURI,
		Name:        "repositories",
		Description: "Known repositories scanned first, in priority order",
		MIMEType:    "application/json",
	}, s.handleRepositoriesResource)
}

// handleRepositoriesResource returns the known repository list.
func (s *Server) handleRepositoriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type repoInfo struct {
		Priority   int    `json:"priority"`
		Repository string `json:"repository"`
		Owner      string `json:"owner"`
		Name       string `json:"name"`
	}

	infos := make([]repoInfo, len(s.ports.Repositories))
	for i, r := range s.ports.Repositories {
		infos[i] = repoInfo{
			Priority:   i + 1,
			Repository: r.String(),
			Owner:      r.Owner,
			Name:       r.Name,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling repositories: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
