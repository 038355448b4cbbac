package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// shutdownTimeout bounds how long in-flight searches may finish after the
// HTTP server is asked to stop. A tree scan over every repository can take a
// while, so this is longer than a typical request.
const shutdownTimeout = 30 * time.Second

// Server exposes the book search and link resolution to MCP clients.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates an MCP server over the search and download services.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil {
		return nil, fmt.Errorf("validating ports: %w", ErrMissingSearchService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "bookfetch",
		Version: Version,
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{
			Instructions: Instructions(ports.Repositories),
		}),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Instructions describes to the client how a search proceeds, naming the
// known repositories in the order they are scanned.
func Instructions(repos []domain.RepositoryRef) string {
	var b strings.Builder
	b.WriteString("Find EPUB books on GitHub by title with find_ebook, then pass a ")
	b.WriteString("candidate's repository and path to download_url to get its raw link.\n\n")
	b.WriteString("A search runs up to three stages and stops at the first that finds anything:\n")
	b.WriteString("  1. known_repo_scan: match title keywords against the file trees of the known repositories\n")
	b.WriteString("  2. broad_code_search: GitHub code search restricted to .epub files (needs a token)\n")
	b.WriteString("  3. repo_name_fallback: scan the trees of repositories whose names match the title\n")
	b.WriteString("The stage field of the result names the stage that produced the candidates. ")
	b.WriteString("An unavailable stage means GitHub refused or failed every call in it.\n")

	if len(repos) > 0 {
		b.WriteString("\nKnown repositories, in scan order:\n")
		for i, r := range repos {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, r)
		}
	}
	return b.String()
}

// Run serves MCP over stdio until the context is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("MCP server on stdio, %d known repositories", len(s.ports.Repositories))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until the context is
// cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("MCP server shutdown: %v", err)
		}
	}()

	logger.Debug("MCP server on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
