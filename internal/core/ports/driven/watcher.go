package driven

import (
	"context"

	"github.com/custodia-labs/treestore/internal/core/domain"
)

// ChangeWatcher observes the storage root for external changes.
type ChangeWatcher interface {
	// Watch streams changes until ctx is cancelled.
	// The returned channel is closed when watching stops.
	Watch(ctx context.Context) (<-chan domain.Change, error)
}
