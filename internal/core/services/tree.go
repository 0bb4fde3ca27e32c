package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/core/ports/driven"
	"github.com/custodia-labs/treestore/internal/core/ports/driving"
	"github.com/custodia-labs/treestore/internal/logger"
)

// Ensure TreeService implements the interface.
var _ driving.TreeService = (*TreeService)(nil)

// defaultLoadFailure is the message placed in the Error tree.
const defaultLoadFailure = "Failed to load default file. Check server logs."

// TreeService manages grouped tree documents on top of a document store.
// It holds no state between calls.
type TreeService struct {
	store driven.DocumentStore
}

// NewTreeService creates a new tree service.
func NewTreeService(store driven.DocumentStore) *TreeService {
	return &TreeService{store: store}
}

// EnsureSeeded creates the storage root, writes the sample tree to the
// default document unless it already exists, and creates the secondary
// group. Safe to call on every startup.
func (s *TreeService) EnsureSeeded(ctx context.Context) error {
	if err := s.store.Init(ctx); err != nil {
		return fmt.Errorf("initialising storage: %w", err)
	}

	exists, err := s.store.Exists(ctx, domain.DefaultGroup, domain.DefaultFile)
	if err != nil {
		return fmt.Errorf("checking default document: %w", err)
	}
	if exists {
		logger.Debug("default document present, leaving it untouched")
	} else {
		logger.Info("seeding %s/%s", domain.DefaultGroup, domain.DefaultFile)
		if err := s.store.Write(ctx, domain.DefaultGroup, domain.DefaultFile, marshalTree(domain.SampleTree())); err != nil {
			return fmt.Errorf("writing default document: %w", err)
		}
	}

	if err := s.store.EnsureGroup(ctx, domain.SecondaryGroup); err != nil {
		return fmt.Errorf("creating %s: %w", domain.SecondaryGroup, err)
	}
	return nil
}

// ListGroups returns a summary per group. When the storage root is missing
// the store is seeded and the seed groups are returned without re-reading.
func (s *TreeService) ListGroups(ctx context.Context) ([]domain.GroupSummary, error) {
	names, err := s.store.ListGroups(ctx)
	if errors.Is(err, domain.ErrUninitializedStore) {
		logger.Warn("storage root missing, seeding")
		if err := s.EnsureSeeded(ctx); err != nil {
			return nil, err
		}
		names = domain.SeedGroups()
	} else if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	groups := make([]domain.GroupSummary, len(names))
	for i, name := range names {
		groups[i] = domain.NewGroupSummary(name)
	}
	return groups, nil
}

// ListFiles returns the documents in a group.
func (s *TreeService) ListFiles(ctx context.Context, group string) ([]string, error) {
	files, err := s.store.ListFiles(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("listing files in %q: %w", group, err)
	}
	return files, nil
}

// Load returns the requested document. If either name is empty the default
// document is loaded instead. Failures yield a placeholder tree rather than
// an error so callers can always render the result.
func (s *TreeService) Load(ctx context.Context, group, file string) domain.LoadResult {
	if group == "" || file == "" {
		return s.loadDefault(ctx)
	}

	content, err := s.store.Read(ctx, group, file)
	if err != nil {
		logger.Warn("loading %s/%s: %v", group, file, err)
		return domain.LoadResult{
			Group:   group,
			File:    file,
			Content: marshalTree(domain.LoadErrorTree(group, file)),
			Status:  domain.LoadStatusFallback,
			Err:     err,
		}
	}

	logger.Debug("loaded %s/%s (%d bytes)", group, file, len(content))
	return domain.LoadResult{
		Group:   group,
		File:    file,
		Content: content,
		Status:  domain.LoadStatusLoaded,
	}
}

func (s *TreeService) loadDefault(ctx context.Context) domain.LoadResult {
	content, err := s.store.Read(ctx, domain.DefaultGroup, domain.DefaultFile)
	if err != nil {
		logger.Error("loading default document: %v", err)
		return domain.LoadResult{
			Group:   domain.DefaultGroup,
			File:    domain.DefaultFile,
			Content: marshalTree(domain.ErrorTree(defaultLoadFailure)),
			Status:  domain.LoadStatusDefaultUnavailable,
			Err:     err,
		}
	}
	return domain.LoadResult{
		Group:   domain.DefaultGroup,
		File:    domain.DefaultFile,
		Content: content,
		Status:  domain.LoadStatusLoaded,
	}
}

// Save replaces a document. Missing fields fail with domain.ErrMissingField
// before the store is touched; store failures are returned wrapped.
func (s *TreeService) Save(ctx context.Context, req domain.SaveRequest) error {
	if req.Group == "" || req.File == "" || isAbsent(req.Content) {
		return fmt.Errorf("%w: group, file and treeData are required", domain.ErrMissingField)
	}

	if err := s.store.Write(ctx, req.Group, req.File, req.Content); err != nil {
		logger.Error("saving %s/%s: %v", req.Group, req.File, err)
		if errors.Is(err, domain.ErrInvalidName) {
			return fmt.Errorf("%w: %w", domain.ErrStorageWriteFailed, err)
		}
		return fmt.Errorf("saving %s/%s: %w", req.Group, req.File, err)
	}

	logger.Info("saved %s/%s", req.Group, req.File)
	return nil
}

// isAbsent reports whether content is missing or JSON null.
func isAbsent(content json.RawMessage) bool {
	trimmed := bytes.TrimSpace(content)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// marshalTree encodes a seed or placeholder tree. TreeNode only holds
// strings, slices and integers, so encoding cannot fail.
func marshalTree(node domain.TreeNode) json.RawMessage {
	data, _ := json.Marshal(node)
	return data
}
