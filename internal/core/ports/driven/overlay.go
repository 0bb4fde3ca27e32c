package driven

import "github.com/custodia-labs/treestore/internal/core/domain"

// SettingsOverlay applies a higher-precedence configuration layer
// (such as environment variables) on top of stored settings.
type SettingsOverlay interface {
	// Apply overwrites fields of settings that the layer defines.
	Apply(settings *domain.ServerSettings) error
}
