package env

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/treestore/internal/core/domain"
)

func TestOverlay_Apply_NoVariables(t *testing.T) {
	overlay := &Overlay{Environ: map[string]string{}}
	settings := domain.DefaultServerSettings()

	require.NoError(t, overlay.Apply(&settings))

	assert.Equal(t, domain.DefaultServerSettings(), settings)
}

func TestOverlay_Apply_AllVariables(t *testing.T) {
	overlay := &Overlay{Environ: map[string]string{
		"TREESTORE_ADDR":         ":8081",
		"TREESTORE_STORAGE_ROOT": "/srv/trees",
		"TREESTORE_STATIC_DIR":   "web",
		"TREESTORE_CACHE_SIZE":   "0",
		"TREESTORE_CACHE_TTL":    "45s",
		"TREESTORE_RATE_LIMIT":   "2.5",
		"TREESTORE_RATE_BURST":   "7",
	}}
	settings := domain.DefaultServerSettings()

	require.NoError(t, overlay.Apply(&settings))

	assert.Equal(t, ":8081", settings.Addr)
	assert.Equal(t, "/srv/trees", settings.StorageRoot)
	assert.Equal(t, "web", settings.StaticDir)
	assert.Equal(t, 0, settings.Cache.Size)
	assert.Equal(t, 45*time.Second, settings.Cache.TTL)
	assert.InDelta(t, 2.5, settings.RateLimit.RPS, 0.0001)
	assert.Equal(t, 7, settings.RateLimit.Burst)
}

func TestOverlay_Apply_InvalidValue(t *testing.T) {
	overlay := &Overlay{Environ: map[string]string{"TREESTORE_CACHE_SIZE": "lots"}}
	settings := domain.DefaultServerSettings()

	err := overlay.Apply(&settings)

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"))
	assert.Equal(t, domain.DefaultCacheSize, settings.Cache.Size)
}

func TestOverlay_Apply_ProcessEnvironment(t *testing.T) {
	t.Setenv("TREESTORE_ADDR", "127.0.0.1:5000")
	settings := domain.DefaultServerSettings()

	require.NoError(t, NewOverlay().Apply(&settings))

	assert.Equal(t, "127.0.0.1:5000", settings.Addr)
}

func TestParse(t *testing.T) {
	t.Setenv("TREESTORE_RATE_BURST", "3")

	overrides, err := Parse()

	require.NoError(t, err)
	require.NotNil(t, overrides.RateBurst)
	assert.Equal(t, 3, *overrides.RateBurst)
	assert.Nil(t, overrides.CacheTTL)
}
