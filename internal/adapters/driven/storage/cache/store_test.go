package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/treestore/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/treestore/internal/core/domain"
)

// countingStore counts reads reaching the underlying store.
type countingStore struct {
	*memory.DocumentStore
	reads int
}

func (c *countingStore) Read(ctx context.Context, group, file string) (json.RawMessage, error) {
	c.reads++
	return c.DocumentStore.Read(ctx, group, file)
}

// gatedStore holds each read after loading it until release is closed.
type gatedStore struct {
	*memory.DocumentStore
	loaded  chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedStore) Read(ctx context.Context, group, file string) (json.RawMessage, error) {
	content, err := g.DocumentStore.Read(ctx, group, file)
	g.once.Do(func() { close(g.loaded) })
	<-g.release
	return content, err
}

func newTestCache(t *testing.T) (*Store, *countingStore) {
	t.Helper()
	next := &countingStore{DocumentStore: memory.NewDocumentStore()}
	require.NoError(t, next.Write(context.Background(), "g", "f.json", json.RawMessage(`{"name":"A"}`)))
	return New(next, 8, time.Minute), next
}

func TestStore_ReadThrough(t *testing.T) {
	store, next := newTestCache(t)
	ctx := context.Background()

	first, err := store.Read(ctx, "g", "f.json")
	require.NoError(t, err)
	second, err := store.Read(ctx, "g", "f.json")
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, 1, next.reads)
	assert.Equal(t, 1, store.Len())
}

func TestStore_WriteInvalidates(t *testing.T) {
	store, next := newTestCache(t)
	ctx := context.Background()

	_, err := store.Read(ctx, "g", "f.json")
	require.NoError(t, err)

	require.NoError(t, store.Write(ctx, "g", "f.json", json.RawMessage(`{"name":"B"}`)))

	got, err := store.Read(ctx, "g", "f.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"B"}`, string(got))
	assert.Equal(t, 2, next.reads)
}

func TestStore_ReadRacingWriteIsNotCached(t *testing.T) {
	ctx := context.Background()
	next := &gatedStore{
		DocumentStore: memory.NewDocumentStore(),
		loaded:        make(chan struct{}),
		release:       make(chan struct{}),
	}
	require.NoError(t, next.DocumentStore.Write(ctx, "g", "f.json", json.RawMessage(`{"name":"A"}`)))
	store := New(next, 8, time.Minute)

	done := make(chan json.RawMessage)
	go func() {
		content, _ := store.Read(ctx, "g", "f.json")
		done <- content
	}()

	<-next.loaded
	require.NoError(t, store.Write(ctx, "g", "f.json", json.RawMessage(`{"name":"B"}`)))
	close(next.release)

	assert.JSONEq(t, `{"name":"A"}`, string(<-done))
	assert.Equal(t, 0, store.Len())

	got, err := store.Read(ctx, "g", "f.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"B"}`, string(got))
	assert.Equal(t, 1, store.Len())
}

func TestStore_FailedReadsAreNotCached(t *testing.T) {
	store, next := newTestCache(t)
	ctx := context.Background()

	_, err := store.Read(ctx, "g", "missing.json")
	assert.True(t, errors.Is(err, domain.ErrStorageReadFailed))
	_, err = store.Read(ctx, "g", "missing.json")
	assert.Error(t, err)

	assert.Equal(t, 2, next.reads)
	assert.Equal(t, 0, store.Len())
}

func TestStore_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("document change", func(t *testing.T) {
		store, _ := newTestCache(t)
		_, err := store.Read(ctx, "g", "f.json")
		require.NoError(t, err)

		store.Apply(domain.Change{Op: domain.ChangeModified, Group: "g", File: "f.json"})

		assert.Equal(t, 0, store.Len())
	})

	t.Run("group change", func(t *testing.T) {
		store, next := newTestCache(t)
		require.NoError(t, next.Write(ctx, "g", "h.json", json.RawMessage(`{}`)))
		require.NoError(t, next.Write(ctx, "other", "f.json", json.RawMessage(`{}`)))
		for _, k := range []key{{"g", "f.json"}, {"g", "h.json"}, {"other", "f.json"}} {
			_, err := store.Read(ctx, k.group, k.file)
			require.NoError(t, err)
		}

		store.Apply(domain.Change{Op: domain.ChangeRemoved, Group: "g"})

		assert.Equal(t, 1, store.Len())
	})

	t.Run("root change", func(t *testing.T) {
		store, next := newTestCache(t)
		require.NoError(t, next.Write(ctx, "other", "f.json", json.RawMessage(`{}`)))
		for _, k := range []key{{"g", "f.json"}, {"other", "f.json"}} {
			_, err := store.Read(ctx, k.group, k.file)
			require.NoError(t, err)
		}

		store.Apply(domain.Change{Op: domain.ChangeRemoved})

		assert.Equal(t, 0, store.Len())
	})
}

func TestStore_Exists(t *testing.T) {
	store, _ := newTestCache(t)
	ctx := context.Background()

	ok, err := store.Exists(ctx, "g", "f.json")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, "g", "nope.json")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_CachedContentIsIsolated(t *testing.T) {
	store, _ := newTestCache(t)
	ctx := context.Background()

	got, err := store.Read(ctx, "g", "f.json")
	require.NoError(t, err)
	got[0] = '['

	again, err := store.Read(ctx, "g", "f.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"A"}`, string(again))
}
