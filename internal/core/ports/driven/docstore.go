package driven

import (
	"context"
	"encoding/json"
)

// DocumentStore persists tree documents by group and file.
// Backed by a directory tree on the local file system.
//
// Every method that takes a group or file validates the tokens first
// and returns an error wrapping domain.ErrInvalidName without touching
// storage when validation fails.
type DocumentStore interface {
	// Init creates the storage root if it does not exist.
	Init(ctx context.Context) error

	// ListGroups returns the names of all groups, sorted.
	// Returns domain.ErrUninitializedStore if the root does not exist.
	ListGroups(ctx context.Context) ([]string, error)

	// ListFiles returns the document names within a group, sorted.
	ListFiles(ctx context.Context, group string) ([]string, error)

	// EnsureGroup creates a group if it does not exist.
	EnsureGroup(ctx context.Context, group string) error

	// Exists reports whether a document is present.
	Exists(ctx context.Context, group, file string) (bool, error)

	// Read returns a document's content.
	// Returns domain.ErrStorageReadFailed if it is missing, unreadable
	// or not valid JSON.
	Read(ctx context.Context, group, file string) (json.RawMessage, error)

	// Write replaces a document's content in full, creating its group.
	// Returns domain.ErrStorageWriteFailed on I/O failure.
	Write(ctx context.Context, group, file string, content json.RawMessage) error
}
