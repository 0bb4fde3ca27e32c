// Package tui provides an interactive terminal browser for stored tree
// documents. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Tree lists, loads and saves documents.
	Tree driving.TreeService

	// Changes, when set, refreshes the open view as the store changes.
	Changes <-chan domain.Change
}

// NewPorts creates a new Ports aggregate.
func NewPorts(tree driving.TreeService) *Ports {
	return &Ports{Tree: tree}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Tree == nil {
		return ErrMissingTreeService
	}
	return nil
}
