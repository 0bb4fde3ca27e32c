package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// It applies the same name validation as the file-backed store.
type DocumentStore struct {
	mu          sync.RWMutex
	initialised bool
	groups      map[string]map[string]json.RawMessage
}

// NewDocumentStore creates a new, uninitialised in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		groups: make(map[string]map[string]json.RawMessage),
	}
}

// Init marks the store as initialised.
func (s *DocumentStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialised = true
	return nil
}

// Reset drops every group and returns the store to its uninitialised state.
func (s *DocumentStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialised = false
	s.groups = make(map[string]map[string]json.RawMessage)
}

// ListGroups returns all group names, sorted.
func (s *DocumentStore) ListGroups(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialised {
		return nil, domain.ErrUninitializedStore
	}
	groups := make([]string, 0, len(s.groups))
	for name := range s.groups {
		groups = append(groups, name)
	}
	sort.Strings(groups)
	return groups, nil
}

// ListFiles returns the document names in a group, sorted.
func (s *DocumentStore) ListFiles(_ context.Context, group string) ([]string, error) {
	if err := domain.ValidateName(group); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs, ok := s.groups[group]
	if !ok {
		return nil, fmt.Errorf("group %q: %w", group, domain.ErrNotFound)
	}
	files := make([]string, 0, len(docs))
	for name := range docs {
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// EnsureGroup creates a group if it does not exist.
func (s *DocumentStore) EnsureGroup(_ context.Context, group string) error {
	if err := domain.ValidateName(group); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialised = true
	if _, ok := s.groups[group]; !ok {
		s.groups[group] = make(map[string]json.RawMessage)
	}
	return nil
}

// Exists reports whether a document is present.
func (s *DocumentStore) Exists(_ context.Context, group, file string) (bool, error) {
	if err := validatePair(group, file); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.groups[group][file]
	return ok, nil
}

// Read returns a copy of a document's content.
func (s *DocumentStore) Read(_ context.Context, group, file string) (json.RawMessage, error) {
	if err := validatePair(group, file); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.groups[group][file]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s: %w", domain.ErrStorageReadFailed, group, file, domain.ErrNotFound)
	}
	return append(json.RawMessage(nil), content...), nil
}

// Write stores a compacted copy of content, creating the group.
func (s *DocumentStore) Write(_ context.Context, group, file string, content json.RawMessage) error {
	if err := validatePair(group, file); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, content); err != nil {
		return fmt.Errorf("%w: encoding %s/%s: %v", domain.ErrStorageWriteFailed, group, file, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialised = true
	docs, ok := s.groups[group]
	if !ok {
		docs = make(map[string]json.RawMessage)
		s.groups[group] = docs
	}
	docs[file] = buf.Bytes()
	return nil
}

func validatePair(group, file string) error {
	if err := domain.ValidateName(group); err != nil {
		return fmt.Errorf("group: %w", err)
	}
	if err := domain.ValidateName(file); err != nil {
		return fmt.Errorf("file: %w", err)
	}
	return nil
}
