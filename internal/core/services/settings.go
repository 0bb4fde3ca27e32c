package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/core/ports/driven"
	"github.com/custodia-labs/treestore/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAddr      = "server.addr"
	keyStaticDir = "server.static_dir"
	keyRoot      = "storage.root"
	keyCacheSize = "cache.size"
	keyCacheTTL  = "cache.ttl_seconds"
	keyRateRPS   = "ratelimit.rps"
	keyRateBurst = "ratelimit.burst"
)

// Parsing parameters for setting values.
const (
	secondsInTTL = time.Second
	floatBitSize = 64
	intBase      = 10
	intBitSize   = 64
)

// SettingsService manages server settings.
type SettingsService struct {
	configStore driven.ConfigStore
	overlay     driven.SettingsOverlay
}

// NewSettingsService creates a new settings service.
// overlay may be nil.
func NewSettingsService(configStore driven.ConfigStore, overlay driven.SettingsOverlay) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		overlay:     overlay,
	}
}

// Get returns defaults, overridden by stored configuration, overridden
// by the overlay.
func (s *SettingsService) Get() (*domain.ServerSettings, error) {
	defaults := domain.DefaultServerSettings()

	settings := &domain.ServerSettings{
		Addr:        s.getString(keyAddr, defaults.Addr),
		StorageRoot: s.getString(keyRoot, defaults.StorageRoot),
		StaticDir:   s.configStore.GetString(keyStaticDir), // No default - static serving is opt-in
		Cache: domain.CacheSettings{
			Size: s.getInt(keyCacheSize, defaults.Cache.Size),
			TTL:  s.getDuration(keyCacheTTL, defaults.Cache.TTL),
		},
		RateLimit: domain.RateLimitSettings{
			RPS:   s.getFloat(keyRateRPS, defaults.RateLimit.RPS),
			Burst: s.getInt(keyRateBurst, defaults.RateLimit.Burst),
		},
	}

	if s.overlay != nil {
		if err := s.overlay.Apply(settings); err != nil {
			return nil, fmt.Errorf("applying overrides: %w", err)
		}
	}

	return settings, nil
}

// Save persists server settings.
func (s *SettingsService) Save(settings *domain.ServerSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSetting, err)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyAddr, settings.Addr},
		{keyRoot, settings.StorageRoot},
		{keyStaticDir, settings.StaticDir},
		{keyCacheSize, int64(settings.Cache.Size)},
		{keyCacheTTL, int64(settings.Cache.TTL / secondsInTTL)},
		{keyRateRPS, settings.RateLimit.RPS},
		{keyRateBurst, int64(settings.RateLimit.Burst)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key, checks the resulting settings are valid and
// stores it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var stored any
	switch key {
	case keyAddr:
		settings.Addr, stored = value, value
	case keyRoot:
		settings.StorageRoot, stored = value, value
	case keyStaticDir:
		settings.StaticDir, stored = value, value
	case keyCacheSize, keyCacheTTL, keyRateBurst:
		n, err := strconv.ParseInt(value, intBase, intBitSize)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidSetting, key)
		}
		switch key {
		case keyCacheSize:
			settings.Cache.Size = int(n)
		case keyCacheTTL:
			settings.Cache.TTL = time.Duration(n) * secondsInTTL
		case keyRateBurst:
			settings.RateLimit.Burst = int(n)
		}
		stored = n
	case keyRateRPS:
		f, err := strconv.ParseFloat(value, floatBitSize)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidSetting, key)
		}
		settings.RateLimit.RPS, stored = f, f
	default:
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidSetting, key)
	}

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSetting, err)
	}
	return s.configStore.Set(key, stored)
}

// Keys returns the recognised setting keys.
func (s *SettingsService) Keys() []string {
	return []string{keyAddr, keyRoot, keyStaticDir, keyCacheSize, keyCacheTTL, keyRateRPS, keyRateBurst}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.ServerSettings {
	return domain.DefaultServerSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * secondsInTTL
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}
