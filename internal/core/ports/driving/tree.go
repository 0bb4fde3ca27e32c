package driving

import (
	"context"

	"github.com/custodia-labs/treestore/internal/core/domain"
)

// TreeService exposes grouped tree documents to clients.
type TreeService interface {
	// EnsureSeeded creates the storage root, the default document and the
	// secondary group if they are missing. Existing documents are untouched.
	EnsureSeeded(ctx context.Context) error

	// ListGroups returns a summary for every group.
	// An uninitialised store is seeded and the seed groups are returned.
	ListGroups(ctx context.Context) ([]domain.GroupSummary, error)

	// ListFiles returns the document names within a group.
	ListFiles(ctx context.Context, group string) ([]string, error)

	// Load returns the named document, the default document when either
	// name is empty, or a placeholder tree. It never fails.
	Load(ctx context.Context, group, file string) domain.LoadResult

	// Save persists a document, replacing any previous content.
	Save(ctx context.Context, req domain.SaveRequest) error
}
