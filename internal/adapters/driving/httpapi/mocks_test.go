package httpapi

import (
	"context"

	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/core/ports/driving"
)

// mockTreeService is a configurable driving.TreeService.
type mockTreeService struct {
	groups    []domain.GroupSummary
	groupsErr error
	files     []string
	filesErr  error
	result    domain.LoadResult
	saveErr   error

	loadedGroup, loadedFile string
	saved                   *domain.SaveRequest
}

var _ driving.TreeService = (*mockTreeService)(nil)

func (m *mockTreeService) EnsureSeeded(_ context.Context) error {
	return nil
}

func (m *mockTreeService) ListGroups(_ context.Context) ([]domain.GroupSummary, error) {
	return m.groups, m.groupsErr
}

func (m *mockTreeService) ListFiles(_ context.Context, _ string) ([]string, error) {
	return m.files, m.filesErr
}

func (m *mockTreeService) Load(_ context.Context, group, file string) domain.LoadResult {
	m.loadedGroup, m.loadedFile = group, file
	return m.result
}

func (m *mockTreeService) Save(_ context.Context, req domain.SaveRequest) error {
	m.saved = &req
	return m.saveErr
}
