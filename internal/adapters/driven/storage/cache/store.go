// Package cache provides a read-through caching decorator for driven.DocumentStore.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/core/ports/driven"
	"github.com/custodia-labs/treestore/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

type key struct {
	group string
	file  string
}

// Store caches document reads from an underlying store.
// Writes go straight through and drop the cached entry; external
// edits must be reported through Invalidate or Apply.
//
// Every invalidation bumps a generation counter. A read only caches what
// it loaded if no invalidation happened while it was loading, so a read
// racing a write cannot put the replaced content back.
type Store struct {
	next  driven.DocumentStore
	cache *expirable.LRU[key, json.RawMessage]

	mu         sync.Mutex
	generation uint64
}

// New wraps next with an LRU cache of at most size documents, each
// valid for ttl.
func New(next driven.DocumentStore, size int, ttl time.Duration) *Store {
	return &Store{
		next:  next,
		cache: expirable.NewLRU[key, json.RawMessage](size, nil, ttl),
	}
}

// Init delegates to the underlying store.
func (s *Store) Init(ctx context.Context) error {
	return s.next.Init(ctx)
}

// ListGroups delegates to the underlying store.
func (s *Store) ListGroups(ctx context.Context) ([]string, error) {
	return s.next.ListGroups(ctx)
}

// ListFiles delegates to the underlying store.
func (s *Store) ListFiles(ctx context.Context, group string) ([]string, error) {
	return s.next.ListFiles(ctx, group)
}

// EnsureGroup delegates to the underlying store.
func (s *Store) EnsureGroup(ctx context.Context, group string) error {
	return s.next.EnsureGroup(ctx, group)
}

// Exists answers from the cache when possible.
func (s *Store) Exists(ctx context.Context, group, file string) (bool, error) {
	if _, ok := s.cache.Peek(key{group, file}); ok {
		return true, nil
	}
	return s.next.Exists(ctx, group, file)
}

// Read returns a cached copy or loads and caches the document.
// Failed reads are never cached.
func (s *Store) Read(ctx context.Context, group, file string) (json.RawMessage, error) {
	k := key{group, file}
	if content, ok := s.cache.Get(k); ok {
		logger.Debug("cache hit %s/%s", group, file)
		return clone(content), nil
	}

	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	content, err := s.next.Read(ctx, group, file)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.generation == gen {
		s.cache.Add(k, clone(content))
	}
	s.mu.Unlock()
	return content, nil
}

// Write stores through and drops the cached entry before and after the
// underlying write; the next read picks up the on-disk form.
func (s *Store) Write(ctx context.Context, group, file string, content json.RawMessage) error {
	s.Invalidate(group, file)
	defer s.Invalidate(group, file)
	return s.next.Write(ctx, group, file, content)
}

// Invalidate drops a cached document.
func (s *Store) Invalidate(group, file string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.cache.Remove(key{group, file})
}

// InvalidateGroup drops every cached document in a group.
func (s *Store) InvalidateGroup(group string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	for _, k := range s.cache.Keys() {
		if k.group == group {
			s.cache.Remove(k)
		}
	}
}

// Purge drops every cached document.
func (s *Store) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.cache.Purge()
}

// Apply invalidates whatever a change touched.
func (s *Store) Apply(change domain.Change) {
	if change.IsRoot() {
		s.Purge()
		return
	}
	if change.IsGroup() {
		s.InvalidateGroup(change.Group)
		return
	}
	s.Invalidate(change.Group, change.File)
}

// Len returns the number of cached documents.
func (s *Store) Len() int {
	return s.cache.Len()
}

func clone(content json.RawMessage) json.RawMessage {
	return append(json.RawMessage(nil), content...)
}
