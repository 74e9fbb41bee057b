// Package shell implements the interactive teamforge client: the catalog
// browsers, the recommendation workflow, the synergy inspector, the ability
// editor and the router that switches between them, all driven by one
// bubbletea program.
package shell

import (
	"context"

	"go.uber.org/zap"

	"teamforge/cmd/teamforge/ui"
	"teamforge/internal/api"
	"teamforge/internal/config"
	"teamforge/internal/logging"
	"teamforge/internal/types"
)

// Gateway is the subset of the API client the shell depends on.
type Gateway interface {
	FetchCharacters(ctx context.Context, query types.CatalogQuery) (types.CatalogPage[types.CharacterRecord], error)
	FetchAbilities(ctx context.Context, query types.CatalogQuery) (types.CatalogPage[types.AbilityRecord], error)
	FetchRecommendations(ctx context.Context, constraints types.TeamConstraints) ([]types.TeamCandidate, error)
	FetchSynergy(ctx context.Context, members []string, level int) (types.SynergyReport, error)
	UpdateAbility(ctx context.Context, originalName string, record types.AbilityRecord) (string, error)
	RemoveRecord(ctx context.Context, kind types.ResourceKind, name string) (string, error)
	FetchMetadata(ctx context.Context) (types.Metadata, error)
	Health(ctx context.Context) (api.HealthStatus, error)
}

var _ Gateway = (*api.Client)(nil)

// Context carries everything components share. It is built once and passed
// to every constructor; nothing in the shell reads package-level state.
type Context struct {
	// Root is cancelled when the program exits; every request derives from it.
	Root     context.Context
	Gateway  Gateway
	Metadata *types.MetadataCache
	Config   *config.Config
	Logs     *logging.Registry
	Styles   ui.Styles
}

// NewContext assembles a shell context. Nil config and logs fall back to
// defaults.
func NewContext(root context.Context, gw Gateway, cfg *config.Config, logs *logging.Registry) *Context {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logs == nil {
		logs = logging.Nop()
	}
	return &Context{
		Root:     root,
		Gateway:  gw,
		Metadata: types.NewMetadataCache(),
		Config:   cfg,
		Logs:     logs,
		Styles:   ui.NewStyles(ui.ThemeFor(cfg.UI.Theme)),
	}
}

// Logger returns the logger for a category.
func (c *Context) Logger(category logging.Category) *zap.Logger {
	return c.Logs.Get(category)
}
