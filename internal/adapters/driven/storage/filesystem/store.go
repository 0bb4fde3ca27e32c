package filesystem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	// indent is used for every document written to disk.
	indent = "    "

	tempPrefix = "."
	tempSuffix = ".tmp"
)

// Store is a file-backed document store rooted at a single directory.
type Store struct {
	resolver *Resolver
}

// NewStore creates a store rooted at root. The directory is not created
// until Init or the first Write.
func NewStore(root string) (*Store, error) {
	resolver, err := NewResolver(root)
	if err != nil {
		return nil, err
	}
	return &Store{resolver: resolver}, nil
}

// Root returns the absolute storage root.
func (s *Store) Root() string {
	return s.resolver.Root()
}

// Resolver returns the store's path resolver.
func (s *Store) Resolver() *Resolver {
	return s.resolver
}

// Init creates the storage root if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.resolver.Root(), dirPerm); err != nil {
		return fmt.Errorf("%w: creating storage root: %v", domain.ErrStorageWriteFailed, err)
	}
	return nil
}

// ListGroups returns the immediate subdirectories of the storage root.
func (s *Store) ListGroups(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.resolver.Root())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrUninitializedStore
		}
		return nil, fmt.Errorf("reading storage root: %w", err)
	}

	groups := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			groups = append(groups, entry.Name())
		}
	}
	return groups, nil
}

// ListFiles returns the documents in a group. Subdirectories and dot-files,
// which include in-flight temporary files, are skipped.
func (s *Store) ListFiles(ctx context.Context, group string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := s.resolver.ResolveGroup(group)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("group %q: %w", group, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading group %q: %w", group, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// EnsureGroup creates a group directory if it does not exist.
func (s *Store) EnsureGroup(ctx context.Context, group string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, err := s.resolver.ResolveGroup(group)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: creating group %q: %v", domain.ErrStorageWriteFailed, group, err)
	}
	return nil
}

// Exists reports whether a document file is present.
func (s *Store) Exists(ctx context.Context, group, file string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	path, err := s.resolver.Resolve(group, file)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s/%s: %w", group, file, err)
	}
	return info.Mode().IsRegular(), nil
}

// Read returns a document's content exactly as stored.
func (s *Store) Read(ctx context.Context, group, file string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.resolver.Resolve(group, file)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", domain.ErrStorageReadFailed, group, file, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s/%s: invalid JSON", domain.ErrStorageReadFailed, group, file)
	}
	return json.RawMessage(bytes.TrimSpace(data)), nil
}

// Write replaces a document, creating its group directory if needed.
func (s *Store) Write(ctx context.Context, group, file string, content json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.resolver.Resolve(group, file)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, content, "", indent); err != nil {
		return fmt.Errorf("%w: encoding %s/%s: %v", domain.ErrStorageWriteFailed, group, file, err)
	}
	buf.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("%w: creating group %q: %v", domain.ErrStorageWriteFailed, group, err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %s/%s: %v", domain.ErrStorageWriteFailed, group, file, err)
	}
	return nil
}

// writeFileAtomic writes data to a sibling temp file and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	tmp := filepath.Join(dir, tempPrefix+name+"."+uuid.NewString()+tempSuffix)

	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
