package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bookfetch/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes two tools:
  find_ebook    - search the configured repositories for an EPUB by title
  download_url  - resolve the raw download link of a repository file

and the bookfetch://repositories resource listing the known repositories.

By default, the server communicates over stdio using JSON-RPC. Use --port to
start an HTTP server instead.

Examples:
  # Stdio mode (default)
  bookfetch mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  bookfetch mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "bookfetch": {
        "command": "/path/to/bookfetch",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if appConfig == nil {
		return errNotConfigured
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search:       appConfig.Search,
		Downloads:    appConfig.Downloads,
		Repositories: appConfig.Settings.Repositories,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
