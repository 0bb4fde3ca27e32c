package httpapi

import (
	"github.com/custodia-labs/treestore/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the HTTP server.
type Ports struct {
	// Tree serves groups and documents.
	Tree driving.TreeService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Tree == nil {
		return ErrMissingTreeService
	}
	return nil
}
