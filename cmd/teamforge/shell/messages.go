package shell

import (
	tea "github.com/charmbracelet/bubbletea"

	"teamforge/internal/api"
	"teamforge/internal/types"
)

// =============================================================================
// RESULT MESSAGES
// =============================================================================
// Every network call resumes in Update through one of these. seq is the
// issuing component's sequence number at the time of the call.

type pageLoadedMsg[T types.Record] struct {
	seq   uint64
	query types.CatalogQuery
	page  types.CatalogPage[T]
	err   error
}

type recommendationsMsg struct {
	seq        uint64
	candidates []types.TeamCandidate
	err        error
}

type synergyMsg struct {
	seq    uint64
	report types.SynergyReport
	err    error
}

type abilitySavedMsg struct {
	seq     uint64
	message string
	err     error
}

type recordRemovedMsg struct {
	seq     uint64
	kind    types.ResourceKind
	name    string
	message string
	err     error
}

type bootMsg struct {
	health    api.HealthStatus
	healthErr error
	metadata  types.Metadata
	metaErr   error
}

// =============================================================================
// REQUEST MESSAGES
// =============================================================================
// Components ask the shell to open the overlay through these.

type inspectRequestMsg struct {
	members []string
	level   int
}

type editRequestMsg struct {
	record types.AbilityRecord
}

type removeRequestMsg struct {
	kind types.ResourceKind
	name string
}

// closeOverlayMsg is sent by a modal that dismisses itself.
type closeOverlayMsg struct{}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
