package shell

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"teamforge/internal/api"
	"teamforge/internal/config"
	"teamforge/internal/logging"
	"teamforge/internal/types"
)

// =============================================================================
// FAKE GATEWAY
// =============================================================================

// fakeGateway answers from canned functions and records what it was asked.
type fakeGateway struct {
	mu sync.Mutex

	characters func(q types.CatalogQuery) (types.CatalogPage[types.CharacterRecord], error)
	abilities  func(q types.CatalogQuery) (types.CatalogPage[types.AbilityRecord], error)
	recommend  func(tc types.TeamConstraints) ([]types.TeamCandidate, error)
	synergy    func(members []string, level int) (types.SynergyReport, error)
	update     func(original string, rec types.AbilityRecord) (string, error)
	remove     func(kind types.ResourceKind, name string) (string, error)

	metadata  types.Metadata
	metaErr   error
	health    api.HealthStatus
	healthErr error

	queries     []types.CatalogQuery
	constraints []types.TeamConstraints
	updates     []updateCall
	removals    []string
}

type updateCall struct {
	original string
	record   types.AbilityRecord
}

func (f *fakeGateway) FetchCharacters(_ context.Context, q types.CatalogQuery) (types.CatalogPage[types.CharacterRecord], error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	fn := f.characters
	f.mu.Unlock()
	if fn == nil {
		return types.CatalogPage[types.CharacterRecord]{Page: 1, PageSize: q.PageSize, TotalPages: 1}, nil
	}
	return fn(q)
}

func (f *fakeGateway) FetchAbilities(_ context.Context, q types.CatalogQuery) (types.CatalogPage[types.AbilityRecord], error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	fn := f.abilities
	f.mu.Unlock()
	if fn == nil {
		return types.CatalogPage[types.AbilityRecord]{Page: 1, PageSize: q.PageSize, TotalPages: 1}, nil
	}
	return fn(q)
}

func (f *fakeGateway) FetchRecommendations(_ context.Context, tc types.TeamConstraints) ([]types.TeamCandidate, error) {
	f.mu.Lock()
	f.constraints = append(f.constraints, tc)
	fn := f.recommend
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(tc)
}

func (f *fakeGateway) FetchSynergy(_ context.Context, members []string, level int) (types.SynergyReport, error) {
	if f.synergy == nil {
		return types.SynergyReport{}, nil
	}
	return f.synergy(members, level)
}

func (f *fakeGateway) UpdateAbility(_ context.Context, original string, rec types.AbilityRecord) (string, error) {
	f.mu.Lock()
	f.updates = append(f.updates, updateCall{original: original, record: rec})
	fn := f.update
	f.mu.Unlock()
	if fn == nil {
		return "updated", nil
	}
	return fn(original, rec)
}

func (f *fakeGateway) RemoveRecord(_ context.Context, kind types.ResourceKind, name string) (string, error) {
	f.mu.Lock()
	f.removals = append(f.removals, kind.Path()+"/"+name)
	fn := f.remove
	f.mu.Unlock()
	if fn == nil {
		return "removed", nil
	}
	return fn(kind, name)
}

func (f *fakeGateway) FetchMetadata(context.Context) (types.Metadata, error) {
	return f.metadata, f.metaErr
}

func (f *fakeGateway) Health(context.Context) (api.HealthStatus, error) {
	return f.health, f.healthErr
}

func (f *fakeGateway) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeGateway) lastQuery() types.CatalogQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

var _ Gateway = (*fakeGateway)(nil)

// =============================================================================
// HELPERS
// =============================================================================

// newTestContext builds a shell context over gw with an observed logger.
func newTestContext(t *testing.T, gw Gateway) (*Context, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logs.TakeAll()
	cfg := config.DefaultConfig()
	cfg.UI.Theme = "dark"
	registry := logging.NewRegistry(core, config.LoggingConfig{DebugMode: true})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewContext(ctx, gw, cfg, registry), logs
}

// run executes cmd synchronously and returns its message.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd, "expected a command")
	return cmd()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func characterPage(page, totalPages int, names ...string) types.CatalogPage[types.CharacterRecord] {
	items := make([]types.CharacterRecord, len(names))
	for i, n := range names {
		items[i] = types.CharacterRecord{Name: n, Faction: "蜀", CommandValue: 90}
	}
	return types.CatalogPage[types.CharacterRecord]{
		Items:      items,
		Page:       page,
		PageSize:   types.DefaultPageSize,
		TotalPages: totalPages,
		TotalCount: totalPages * types.DefaultPageSize,
	}
}
