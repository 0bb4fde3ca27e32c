package mcp

import (
	"github.com/custodia-labs/treestore/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Tree lists, loads and saves documents.
	Tree driving.TreeService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Tree == nil {
		return ErrMissingTreeService
	}
	return nil
}
