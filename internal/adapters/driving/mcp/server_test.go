package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
)

func TestNewServer(t *testing.T) {
	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		require.Error(t, err)
		assert.Nil(t, server)
	})

	t.Run("nil search service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Downloads: &mockDownloadService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search:    &mockSearchService{},
			Downloads: &mockDownloadService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		ports := &Ports{Downloads: &mockDownloadService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingSearchService)
	})

	t.Run("nil download service returns error", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingDownloadService)
	})

	t.Run("repositories are optional", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}, Downloads: &mockDownloadService{}}
		assert.NoError(t, ports.Validate())
	})
}

func TestInstructions(t *testing.T) {
	t.Run("describes the stage chain", func(t *testing.T) {
		text := Instructions(nil)
		assert.Contains(t, text, "find_ebook")
		assert.Contains(t, text, "download_url")
		assert.Contains(t, text, "1. known_repo_scan")
		assert.Contains(t, text, "2. broad_code_search")
		assert.Contains(t, text, "3. repo_name_fallback")
		assert.NotContains(t, text, "Known repositories")
	})

	t.Run("lists repositories in scan order", func(t *testing.T) {
		text := Instructions([]domain.RepositoryRef{
			{Owner: "fancy88", Name: "iBook"},
			{Owner: "me", Name: "shelf"},
		})
		assert.Contains(t, text, "  1. fancy88/iBook\n  2. me/shelf\n")
	})
}

func TestServer_InstructionsSentOnInitialize(t *testing.T) {
	server, err := NewServer(&Ports{
		Search:       &mockSearchService{},
		Downloads:    &mockDownloadService{},
		Repositories: []domain.RepositoryRef{{Owner: "me", Name: "shelf"}},
	})
	require.NoError(t, err)

	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer clientSession.Close()

	result := clientSession.InitializeResult()
	require.NotNil(t, result)
	assert.Equal(t, "bookfetch", result.ServerInfo.Name)
	assert.Contains(t, result.Instructions, "1. me/shelf")
}
