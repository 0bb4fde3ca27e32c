// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/treestore/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewGroups lists every group.
	ViewGroups ViewType = iota
	// ViewFiles lists the documents in the selected group.
	ViewFiles
	// ViewDocument shows the selected document.
	ViewDocument
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewGroups:
		return "groups"
	case ViewFiles:
		return "files"
	case ViewDocument:
		return "document"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// GroupsLoaded carries the group listing.
type GroupsLoaded struct {
	Groups []domain.GroupSummary
	Err    error
}

// GroupSelected is sent when a group is chosen.
type GroupSelected struct {
	Group string
}

// FilesLoaded carries the documents of a group.
type FilesLoaded struct {
	Group string
	Files []string
	Err   error
}

// FileSelected is sent when a document is chosen.
type FileSelected struct {
	Group string
	File  string
}

// DocumentLoaded carries a load result. Fallback trees arrive here too.
type DocumentLoaded struct {
	Result domain.LoadResult
}

// ErrorOccurred reports an error to the active view.
type ErrorOccurred struct {
	Err error
}

// Quit requests application exit.
type Quit struct{}

// StoreChanged is sent when a document or group changes on disk.
type StoreChanged struct {
	Change domain.Change
}
