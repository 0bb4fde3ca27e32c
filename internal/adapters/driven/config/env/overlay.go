package env

import (
	"fmt"
	"time"

	goenv "github.com/caarlos0/env/v11"

	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/core/ports/driven"
)

// Ensure Overlay implements the interface.
var _ driven.SettingsOverlay = (*Overlay)(nil)

// Overrides mirrors domain.ServerSettings. Pointer fields stay nil when the
// variable is unset.
type Overrides struct {
	Addr        *string        `env:"TREESTORE_ADDR"`
	StorageRoot *string        `env:"TREESTORE_STORAGE_ROOT"`
	StaticDir   *string        `env:"TREESTORE_STATIC_DIR"`
	CacheSize   *int           `env:"TREESTORE_CACHE_SIZE"`
	CacheTTL    *time.Duration `env:"TREESTORE_CACHE_TTL"`
	RateLimit   *float64       `env:"TREESTORE_RATE_LIMIT"`
	RateBurst   *int           `env:"TREESTORE_RATE_BURST"`
}

// Parse reads overrides from the process environment.
func Parse() (Overrides, error) {
	var o Overrides
	if err := goenv.Parse(&o); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// Overlay applies environment overrides each time settings are resolved.
// Empty variables are treated as unset.
type Overlay struct {
	// Environ replaces the process environment when set.
	Environ map[string]string
}

// NewOverlay creates an overlay reading the process environment.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Apply overwrites every setting whose variable is set.
func (o *Overlay) Apply(settings *domain.ServerSettings) error {
	var overrides Overrides
	if err := goenv.ParseWithOptions(&overrides, goenv.Options{Environment: o.Environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	overrides.applyTo(settings)
	return nil
}

func (o Overrides) applyTo(s *domain.ServerSettings) {
	if o.Addr != nil {
		s.Addr = *o.Addr
	}
	if o.StorageRoot != nil {
		s.StorageRoot = *o.StorageRoot
	}
	if o.StaticDir != nil {
		s.StaticDir = *o.StaticDir
	}
	if o.CacheSize != nil {
		s.Cache.Size = *o.CacheSize
	}
	if o.CacheTTL != nil {
		s.Cache.TTL = *o.CacheTTL
	}
	if o.RateLimit != nil {
		s.RateLimit.RPS = *o.RateLimit
	}
	if o.RateBurst != nil {
		s.RateLimit.Burst = *o.RateBurst
	}
}
