package mcp

import (
	"context"

	"github.com/custodia-labs/treestore/internal/core/domain"
)

// mockTreeService is a mock implementation of driving.TreeService.
type mockTreeService struct {
	groups []domain.GroupSummary
	files  []string
	result domain.LoadResult
	err    error

	saved *domain.SaveRequest
}

func (m *mockTreeService) EnsureSeeded(_ context.Context) error {
	return m.err
}

func (m *mockTreeService) ListGroups(_ context.Context) ([]domain.GroupSummary, error) {
	return m.groups, m.err
}

func (m *mockTreeService) ListFiles(_ context.Context, _ string) ([]string, error) {
	return m.files, m.err
}

func (m *mockTreeService) Load(_ context.Context, _, _ string) domain.LoadResult {
	return m.result
}

func (m *mockTreeService) Save(_ context.Context, req domain.SaveRequest) error {
	m.saved = &req
	return m.err
}
