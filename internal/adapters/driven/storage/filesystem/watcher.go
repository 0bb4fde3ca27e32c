package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/core/ports/driven"
	"github.com/custodia-labs/treestore/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

const (
	// changeBuffer is the capacity of the channel returned by Watch.
	changeBuffer = 64

	// rearmInterval is how often a vanished root is checked for.
	rearmInterval = 250 * time.Millisecond
)

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// Watcher reports groups and documents changing under a storage root.
// The root and each group directory are watched; deeper paths are ignored.
// If the root is removed a root-level change is reported, and once the
// root exists again it is watched anew and reported as created.
type Watcher struct {
	root string

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// NewWatcher creates a watcher for root.
func NewWatcher(root string) (*Watcher, error) {
	resolver, err := NewResolver(root)
	if err != nil {
		return nil, err
	}
	return &Watcher{root: resolver.Root()}, nil
}

// Watch starts watching and returns a channel of changes. The channel is
// closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.Change, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}

	info, err := os.Stat(w.root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", w.root)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.addTree(fw); err != nil {
		_ = fw.Close()
		return nil, err
	}
	w.watchers = append(w.watchers, fw)

	changes := make(chan domain.Change, changeBuffer)
	go w.run(ctx, fw, changes)
	return changes, nil
}

// Close stops every active watch. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	for _, fw := range w.watchers {
		if err := fw.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	w.watchers = nil
	return errors.Join(errs...)
}

func (w *Watcher) addTree(fw *fsnotify.Watcher) error {
	if err := fw.Add(w.root); err != nil {
		return fmt.Errorf("watching %s: %w", w.root, err)
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("reading %s: %w", w.root, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		if err := fw.Add(filepath.Join(w.root, entry.Name())); err != nil {
			return fmt.Errorf("watching group %q: %w", entry.Name(), err)
		}
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, changes chan<- domain.Change) {
	defer close(changes)
	defer w.release(fw)

	var ticker *time.Ticker
	var rearm <-chan time.Time
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	send := func(change domain.Change) bool {
		select {
		case changes <- change:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if w.rootGone(event) {
				if ticker == nil {
					logger.Warn("storage root %s removed, waiting for it to return", w.root)
					ticker = time.NewTicker(rearmInterval)
					rearm = ticker.C
				}
				if !send(domain.Change{Op: domain.ChangeRemoved, At: time.Now()}) {
					return
				}
				continue
			}
			change, ok := w.handleEvent(event)
			if !ok {
				continue
			}
			if change.IsGroup() && change.Op == domain.ChangeCreated {
				if err := fw.Add(event.Name); err != nil {
					logger.Warn("watching new group %q: %v", change.Group, err)
				}
			}
			if !send(change) {
				return
			}

		case <-rearm:
			if !isDir(w.root) {
				continue
			}
			if err := w.addTree(fw); err != nil {
				logger.Warn("re-watching %s: %v", w.root, err)
				continue
			}
			ticker.Stop()
			ticker, rearm = nil, nil
			logger.Info("storage root %s is back, watching again", w.root)
			if !send(domain.Change{Op: domain.ChangeCreated, At: time.Now()}) {
				return
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// rootGone reports whether event removed or moved the root itself.
func (w *Watcher) rootGone(event fsnotify.Event) bool {
	return filepath.Clean(event.Name) == w.root &&
		(event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename))
}

// release closes fw unless Close already did.
func (w *Watcher) release(fw *fsnotify.Watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, active := range w.watchers {
		if active == fw {
			w.watchers = append(w.watchers[:i], w.watchers[i+1:]...)
			_ = fw.Close()
			return
		}
	}
}

// handleEvent maps a raw event to a change. Hidden entries, temporary
// files, nested paths and attribute-only events are dropped.
func (w *Watcher) handleEvent(event fsnotify.Event) (domain.Change, bool) {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return domain.Change{}, false
	}

	parts := strings.Split(rel, string(filepath.Separator))
	for _, part := range parts {
		if isHidden(part) {
			return domain.Change{}, false
		}
	}

	change := domain.Change{At: time.Now()}
	switch len(parts) {
	case 1:
		change.Group = parts[0]
		if event.Has(fsnotify.Create) && !isDir(event.Name) {
			return domain.Change{}, false
		}
		if event.Has(fsnotify.Write) {
			return domain.Change{}, false
		}
	case 2:
		change.Group, change.File = parts[0], parts[1]
		if event.Has(fsnotify.Create) && isDir(event.Name) {
			return domain.Change{}, false
		}
	default:
		return domain.Change{}, false
	}

	switch {
	case event.Has(fsnotify.Create):
		change.Op = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		change.Op = domain.ChangeModified
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		change.Op = domain.ChangeRemoved
	default:
		return domain.Change{}, false
	}
	return change, true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isHidden reports dot-prefixed names, which covers temporary files.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
