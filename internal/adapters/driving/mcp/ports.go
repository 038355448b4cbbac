package mcp

import (
	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driving"
)

// Ports aggregates the driving ports and settings required by the MCP server.
type Ports struct {
	// Search runs the cascading book search.
	Search driving.SearchService

	// Downloads resolves candidate links and destinations.
	Downloads driving.DownloadService

	// Repositories is the known repository list exposed as a resource.
	Repositories []domain.RepositoryRef
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Downloads == nil {
		return ErrMissingDownloadService
	}
	return nil
}
