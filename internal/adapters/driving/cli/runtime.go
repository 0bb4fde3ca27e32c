package cli

import (
	"context"
	"fmt"

	"github.com/custodia-labs/treestore/internal/adapters/driven/config/env"
	"github.com/custodia-labs/treestore/internal/adapters/driven/config/file"
	"github.com/custodia-labs/treestore/internal/adapters/driven/storage/cache"
	"github.com/custodia-labs/treestore/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/treestore/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/core/ports/driven"
	"github.com/custodia-labs/treestore/internal/core/services"
	"github.com/custodia-labs/treestore/internal/logger"
)

// runtime wires the driven adapters for one command invocation.
type runtime struct {
	configStore     driven.ConfigStore
	settingsService *services.SettingsService
	settings        *domain.ServerSettings

	// Built on first use by tree().
	store       driven.DocumentStore
	cache       *cache.Store
	treeService *services.TreeService
}

// bootstrap loads configuration. Storage is opened lazily so config
// commands work without a usable storage root.
func bootstrap() (*runtime, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, env.NewOverlay())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if rootOverride != "" {
		settings.StorageRoot = rootOverride
	}
	logger.Debug("config %s, storage root %s", configStore.Path(), settings.StorageRoot)

	return &runtime{
		configStore:     configStore,
		settingsService: settingsService,
		settings:        settings,
	}, nil
}

// tree returns the tree service, opening storage on first call.
func (r *runtime) tree() (*services.TreeService, error) {
	if r.treeService != nil {
		return r.treeService, nil
	}

	var store driven.DocumentStore
	if useMemoryRoot {
		logger.Debug("using in-memory storage")
		store = memory.NewDocumentStore()
	} else {
		fs, err := filesystem.NewStore(r.settings.StorageRoot)
		if err != nil {
			return nil, fmt.Errorf("opening storage: %w", err)
		}
		store = fs
	}

	if r.settings.Cache.Enabled() {
		r.cache = cache.New(store, r.settings.Cache.Size, r.settings.Cache.TTL)
		store = r.cache
	}

	r.store = store
	r.treeService = services.NewTreeService(store)
	return r.treeService, nil
}

// watch streams storage changes, keeping the cache coherent with external
// edits. The returned channel is nil for in-memory storage. Call tree first.
func (r *runtime) watch(ctx context.Context) (<-chan domain.Change, error) {
	if useMemoryRoot {
		return nil, nil
	}

	watcher, err := filesystem.NewWatcher(r.settings.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	changes, err := watcher.Watch(ctx)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", r.settings.StorageRoot, err)
	}

	out := make(chan domain.Change)
	go func() {
		defer close(out)
		defer watcher.Close()
		for change := range changes {
			if r.cache != nil {
				r.cache.Apply(change)
			}
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// drain discards changes so the watcher never blocks. Used when only the
// cache needs them.
func drain(changes <-chan domain.Change) {
	if changes == nil {
		return
	}
	go func() {
		for range changes {
		}
	}()
}
