package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
)

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleRepositoriesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("no repositories returns empty list", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{})

		result, err := server.handleRepositoriesResource(ctx, makeReadResourceRequest(repositoriesURI))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("lists repositories in priority order", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search:    &mockSearchService{},
			Downloads: &mockDownloadService{},
			Repositories: []domain.RepositoryRef{
				{Owner: "fancy88", Name: "iBook"},
				{Owner: "forthespada", Name: "CS-Books"},
			},
		})
		require.NoError(t, err)

		result, err := server.handleRepositoriesResource(ctx, makeReadResourceRequest(repositoriesURI))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"repository": "fancy88/iBook"`)
		assert.Contains(t, text, `"priority": 2`)
		assert.Less(t, strings.Index(text, "fancy88"), strings.Index(text, "forthespada"))
		assert.Equal(t, repositoriesURI, result.Contents[0].URI)
	})
}
