package domain

import "encoding/json"

// Document is a stored tree payload identified by group and file.
// Content is opaque to the storage layer: it must be valid JSON
// but its shape is never inspected.
type Document struct {
	// Group is the owning group's name.
	Group string

	// File is the document's file name within the group.
	File string

	// Content is the serialised tree.
	Content json.RawMessage
}

// TreeNode is the conventional node shape clients render.
// It is used for seed data and fallback payloads only; stored
// documents are never decoded into it.
type TreeNode struct {
	Name     string     `json:"name"`
	Children []TreeNode `json:"children,omitempty"`
	Size     int64      `json:"size,omitempty"`
}

// LoadStatus describes how a load request was satisfied.
type LoadStatus int

const (
	// LoadStatusLoaded means the requested (or default) document was read.
	LoadStatusLoaded LoadStatus = iota

	// LoadStatusFallback means a named document could not be loaded and
	// a "Load_Error" placeholder tree was returned instead.
	LoadStatusFallback

	// LoadStatusDefaultUnavailable means no group/file was given and the
	// default document could not be read; an "Error" tree was returned.
	LoadStatusDefaultUnavailable
)

// String returns the string representation.
func (s LoadStatus) String() string {
	switch s {
	case LoadStatusLoaded:
		return "loaded"
	case LoadStatusFallback:
		return "fallback"
	case LoadStatusDefaultUnavailable:
		return "default_unavailable"
	default:
		return "unknown"
	}
}

// LoadResult is the outcome of a load. Content is always a renderable tree.
type LoadResult struct {
	// Group and File identify what was actually read (or attempted).
	Group string
	File  string

	// Content is the document, or a placeholder tree on failure.
	Content json.RawMessage

	// Status reports whether Content is real data or a placeholder.
	Status LoadStatus

	// Err is the underlying failure for placeholder results.
	Err error
}

// IsFallback returns true if Content is a placeholder tree.
func (r LoadResult) IsFallback() bool {
	return r.Status != LoadStatusLoaded
}

// SaveRequest carries a document to persist.
// Content is nil when the client sent no tree data.
type SaveRequest struct {
	Group   string
	File    string
	Content json.RawMessage
}

// ErrorTree builds the placeholder returned when the default document
// cannot be loaded.
func ErrorTree(reason string) TreeNode {
	return TreeNode{
		Name:     "Error",
		Children: []TreeNode{{Name: reason}},
	}
}

// LoadErrorTree builds the placeholder returned when a named document
// cannot be loaded.
func LoadErrorTree(group, file string) TreeNode {
	return TreeNode{
		Name: "Load_Error",
		Children: []TreeNode{
			{Name: "File '" + file + "' not found in group '" + group + "' or could not be read."},
		},
	}
}
