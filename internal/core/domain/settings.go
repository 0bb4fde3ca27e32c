package domain

import (
	"errors"
	"time"
)

// Default server settings.
const (
	DefaultAddr       = ":3000"
	DefaultStorageDir = "data"
	DefaultCacheSize  = 128
	DefaultCacheTTL   = 5 * time.Minute
	DefaultRateLimit  = 50.0
	DefaultRateBurst  = 100
)

// ServerSettings holds runtime configuration for the storage backend.
type ServerSettings struct {
	// Addr is the HTTP listen address.
	Addr string

	// StorageRoot is the directory holding every group.
	StorageRoot string

	// StaticDir is served at "/" when set.
	StaticDir string

	// Cache holds document cache configuration.
	Cache CacheSettings

	// RateLimit holds request throttling configuration.
	RateLimit RateLimitSettings
}

// CacheSettings configures the read-through document cache.
type CacheSettings struct {
	// Size is the maximum number of cached documents. Zero disables caching.
	Size int

	// TTL is how long a cached document stays valid.
	TTL time.Duration
}

// Enabled returns true if documents should be cached.
func (c CacheSettings) Enabled() bool {
	return c.Size > 0
}

// RateLimitSettings configures the API token bucket.
type RateLimitSettings struct {
	// RPS is the sustained request rate. Zero disables throttling.
	RPS float64

	// Burst is the bucket size.
	Burst int
}

// Enabled returns true if requests should be throttled.
func (r RateLimitSettings) Enabled() bool {
	return r.RPS > 0
}

// DefaultServerSettings returns settings with sensible defaults.
func DefaultServerSettings() ServerSettings {
	return ServerSettings{
		Addr:        DefaultAddr,
		StorageRoot: DefaultStorageDir,
		Cache: CacheSettings{
			Size: DefaultCacheSize,
			TTL:  DefaultCacheTTL,
		},
		RateLimit: RateLimitSettings{
			RPS:   DefaultRateLimit,
			Burst: DefaultRateBurst,
		},
	}
}

// Validate checks the settings are usable.
func (s ServerSettings) Validate() error {
	if s.Addr == "" {
		return errors.New("listen address is required")
	}
	if s.StorageRoot == "" {
		return errors.New("storage root is required")
	}
	if s.Cache.Size < 0 {
		return errors.New("cache size must not be negative")
	}
	if s.Cache.Enabled() && s.Cache.TTL <= 0 {
		return errors.New("cache ttl must be positive when caching is enabled")
	}
	if s.RateLimit.RPS < 0 {
		return errors.New("rate limit must not be negative")
	}
	if s.RateLimit.Enabled() && s.RateLimit.Burst < 1 {
		return errors.New("rate burst must be at least 1 when throttling is enabled")
	}
	return nil
}
