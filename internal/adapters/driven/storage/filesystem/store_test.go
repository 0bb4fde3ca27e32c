package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/treestore/internal/core/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "root")
	store, err := NewStore(root)
	require.NoError(t, err)
	return store, root
}

func TestStore_Init(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Init(ctx))
	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent
	require.NoError(t, store.Init(ctx))
}

func TestStore_ListGroups(t *testing.T) {
	ctx := context.Background()

	t.Run("missing root is uninitialised", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.ListGroups(ctx)

		assert.True(t, errors.Is(err, domain.ErrUninitializedStore))
	})

	t.Run("lists only directories", func(t *testing.T) {
		store, root := newTestStore(t)
		require.NoError(t, os.MkdirAll(filepath.Join(root, "b"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "stray.json"), []byte("{}"), 0o644))

		groups, err := store.ListGroups(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, groups)
	})

	t.Run("empty root", func(t *testing.T) {
		store, _ := newTestStore(t)
		require.NoError(t, store.Init(ctx))

		groups, err := store.ListGroups(ctx)

		require.NoError(t, err)
		assert.Empty(t, groups)
	})

	t.Run("cancelled context", func(t *testing.T) {
		store, _ := newTestStore(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.ListGroups(cctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore_ListFiles(t *testing.T) {
	ctx := context.Background()
	store, root := newTestStore(t)
	groupDir := filepath.Join(root, "g")
	require.NoError(t, os.MkdirAll(filepath.Join(groupDir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(groupDir, "b.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(groupDir, "a.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(groupDir, ".a.json.1234.tmp"), []byte("{"), 0o644))

	t.Run("lists documents only", func(t *testing.T) {
		files, err := store.ListFiles(ctx, "g")

		require.NoError(t, err)
		assert.Equal(t, []string{"a.json", "b.json"}, files)
	})

	t.Run("missing group", func(t *testing.T) {
		_, err := store.ListFiles(ctx, "nope")

		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("invalid group", func(t *testing.T) {
		_, err := store.ListFiles(ctx, "..")

		assert.True(t, errors.Is(err, domain.ErrInvalidName))
	})
}

func TestStore_WriteAndRead(t *testing.T) {
	ctx := context.Background()
	store, root := newTestStore(t)

	content := json.RawMessage(`{"name":"X","children":[{"name":"Y","size":3}]}`)
	require.NoError(t, store.Write(ctx, "NewGroup", "doc1.json", content))

	t.Run("group directory is created", func(t *testing.T) {
		info, err := os.Stat(filepath.Join(root, "NewGroup"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("file uses four space indentation", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(root, "NewGroup", "doc1.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n    \"name\": \"X\"")
	})

	t.Run("round trip is structurally equal", func(t *testing.T) {
		got, err := store.Read(ctx, "NewGroup", "doc1.json")
		require.NoError(t, err)
		assert.JSONEq(t, string(content), string(got))
	})

	t.Run("overwrite replaces in full", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "NewGroup", "doc1.json", json.RawMessage(`{"name":"Z"}`)))

		got, err := store.Read(ctx, "NewGroup", "doc1.json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Z"}`, string(got))
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Join(root, "NewGroup"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "doc1.json", entries[0].Name())
	})
}

func TestStore_Read_Failures(t *testing.T) {
	ctx := context.Background()
	store, root := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "g"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "g", "broken.json"), []byte("{not json"), 0o644))

	tests := []struct {
		name    string
		group   string
		file    string
		wantErr error
	}{
		{"missing file", "g", "missing.json", domain.ErrStorageReadFailed},
		{"missing group", "nope", "f.json", domain.ErrStorageReadFailed},
		{"unparseable file", "g", "broken.json", domain.ErrStorageReadFailed},
		{"directory as file", ".", "g", domain.ErrStorageReadFailed},
		{"invalid group", "..", "f.json", domain.ErrInvalidName},
		{"invalid file", "g", "../g/broken.json", domain.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Read(ctx, tt.group, tt.file)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestStore_InvalidNamesNeverTouchDisk(t *testing.T) {
	ctx := context.Background()
	store, root := newTestStore(t)
	content := json.RawMessage(`{"name":"X"}`)

	for _, bad := range []string{"", "..", "a/b", `a\b`, "../escape"} {
		err := store.Write(ctx, bad, "f.json", content)
		assert.True(t, errors.Is(err, domain.ErrInvalidName), "group %q", bad)

		err = store.Write(ctx, "g", bad, content)
		assert.True(t, errors.Is(err, domain.ErrInvalidName), "file %q", bad)

		err = store.EnsureGroup(ctx, bad)
		assert.True(t, errors.Is(err, domain.ErrInvalidName), "ensure %q", bad)

		_, err = store.Exists(ctx, "g", bad)
		assert.True(t, errors.Is(err, domain.ErrInvalidName), "exists %q", bad)
	}

	_, err := os.Stat(root)
	assert.True(t, os.IsNotExist(err), "storage root must not be created")
}

func TestStore_Write_DotNamesKeepRootADirectory(t *testing.T) {
	ctx := context.Background()
	parent := t.TempDir()
	root := filepath.Join(parent, "data")
	store, err := NewStore(root)
	require.NoError(t, err)
	content := json.RawMessage(`{"name":"X"}`)

	for _, pair := range [][2]string{{".", "."}, {".", "x"}, {"g", "."}} {
		err := store.Write(ctx, pair[0], pair[1], content)
		assert.True(t, errors.Is(err, domain.ErrInvalidName), "write %q/%q", pair[0], pair[1])
	}

	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing may be created beside or in place of the root")

	require.NoError(t, store.Init(ctx))
	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	groups, err := store.ListGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestStore_Write_DotNamesOnExistingRoot(t *testing.T) {
	ctx := context.Background()
	store, root := newTestStore(t)
	require.NoError(t, store.Init(ctx))
	require.NoError(t, store.EnsureGroup(ctx, "g"))

	err := store.Write(ctx, "g", ".", json.RawMessage(`{}`))
	assert.True(t, errors.Is(err, domain.ErrInvalidName))
	err = store.EnsureGroup(ctx, ".")
	assert.True(t, errors.Is(err, domain.ErrInvalidName))
	_, err = store.ListFiles(ctx, ".")
	assert.True(t, errors.Is(err, domain.ErrInvalidName))

	info, err := os.Stat(filepath.Join(root, "g"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	files, err := store.ListFiles(ctx, "g")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestStore_Write_InvalidContent(t *testing.T) {
	ctx := context.Background()
	store, root := newTestStore(t)

	err := store.Write(ctx, "g", "f.json", json.RawMessage(`{"name":`))

	assert.True(t, errors.Is(err, domain.ErrStorageWriteFailed))
	_, statErr := os.Stat(filepath.Join(root, "g", "f.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_Write_GroupIsFile(t *testing.T) {
	ctx := context.Background()
	store, root := newTestStore(t)
	require.NoError(t, store.Init(ctx))
	require.NoError(t, os.WriteFile(filepath.Join(root, "g"), []byte("x"), 0o644))

	err := store.Write(ctx, "g", "f.json", json.RawMessage(`{}`))

	assert.True(t, errors.Is(err, domain.ErrStorageWriteFailed))
}

func TestStore_Exists(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	ok, err := store.Exists(ctx, "g", "f.json")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Write(ctx, "g", "f.json", json.RawMessage(`{}`)))

	ok, err = store.Exists(ctx, "g", "f.json")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.EnsureGroup(ctx, "g2"))
	ok, err = store.Exists(ctx, ".", "g2")
	require.NoError(t, err)
	assert.False(t, ok, "directories are not documents")
}

func TestStore_ConcurrentWrites_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, _ := json.Marshal(map[string]int{"writer": i})
			assert.NoError(t, store.Write(ctx, "g", "race.json", body))
		}(i)
	}
	wg.Wait()

	got, err := store.Read(ctx, "g", "race.json")
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(got, &decoded))
	assert.Contains(t, decoded, "writer")

	files, err := store.ListFiles(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, []string{"race.json"}, files)
}
