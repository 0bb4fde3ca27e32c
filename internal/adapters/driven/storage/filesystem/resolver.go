package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/treestore/internal/core/domain"
)

// Resolver maps group and file tokens to paths under a storage root.
// It performs no I/O.
type Resolver struct {
	root string
}

// NewResolver creates a resolver for the given storage root.
// Relative roots are made absolute against the working directory.
func NewResolver(root string) (*Resolver, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving storage root: %w", err)
	}
	return &Resolver{root: abs}, nil
}

// Root returns the absolute storage root.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns the absolute path of a document.
// Both tokens are validated before joining; on failure the error wraps
// domain.ErrInvalidName and no path is returned. The result always lies
// strictly below its group directory, which lies strictly below the root.
func (r *Resolver) Resolve(group, file string) (string, error) {
	dir, err := r.ResolveGroup(group)
	if err != nil {
		return "", err
	}
	if err := domain.ValidateName(file); err != nil {
		return "", fmt.Errorf("file: %w", err)
	}
	path := filepath.Join(dir, file)
	if !isBelow(dir, path) {
		return "", fmt.Errorf("file: %w: %q does not name a document", domain.ErrInvalidName, file)
	}
	return path, nil
}

// ResolveGroup returns the absolute path of a group directory, which is
// never the root itself.
func (r *Resolver) ResolveGroup(group string) (string, error) {
	if err := domain.ValidateName(group); err != nil {
		return "", fmt.Errorf("group: %w", err)
	}
	dir := filepath.Join(r.root, group)
	if !isBelow(r.root, dir) {
		return "", fmt.Errorf("group: %w: %q does not name a group", domain.ErrInvalidName, group)
	}
	return dir, nil
}

// isBelow reports whether path is a strict descendant of parent.
func isBelow(parent, path string) bool {
	prefix := parent
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return len(path) > len(prefix) && strings.HasPrefix(path, prefix)
}
