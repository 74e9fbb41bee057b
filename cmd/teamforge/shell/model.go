package shell

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"teamforge/internal/logging"
	"teamforge/internal/types"
)

// Model is the root bubbletea model. It owns every component and is the
// only place component state changes.
type Model struct {
	ctx    *Context
	logger *zap.Logger
	keys   globalKeys
	okeys  overlayKeys

	width  int
	height int

	router     *Router
	characters *Browser[types.CharacterRecord]
	abilities  *Browser[types.AbilityRecord]
	workflow   *Workflow
	inspector  *Inspector
	editor     *Editor
	confirm    *RemoveConfirm
	overlay    *Overlay
	about      *About

	spinner spinner.Model
	help    help.Model

	status    string
	statusErr bool
	booted    bool
	quitting  bool
}

// NewModel builds the shell and all of its components from ctx.
func NewModel(ctx *Context) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ctx.Styles.Spinner

	h := help.New()
	h.Styles.ShortKey = ctx.Styles.Bold
	h.Styles.ShortDesc = ctx.Styles.Muted

	return Model{
		ctx:        ctx,
		logger:     ctx.Logger(logging.CategoryBoot),
		keys:       newGlobalKeys(),
		okeys:      newOverlayKeys(),
		width:      100,
		height:     30,
		router:     NewRouter(ctx),
		characters: NewCharacterBrowser(ctx),
		abilities:  NewAbilityBrowser(ctx),
		workflow:   NewWorkflow(ctx),
		inspector:  NewInspector(ctx),
		editor:     NewEditor(ctx),
		confirm:    NewRemoveConfirm(ctx),
		overlay:    NewOverlay(ctx),
		about:      NewAbout(ctx),
		spinner:    sp,
		help:       h,
	}
}

// Init checks the server, loads metadata and the first page of both
// catalogs.
func (m Model) Init() tea.Cmd {
	m.logger.Info("shell starting", zap.String("base_url", m.ctx.Config.API.BaseURL))
	return tea.Batch(
		boot(m.ctx.Root, m.ctx.Gateway),
		m.characters.Browse(m.characters.Query()),
		m.abilities.Browse(m.abilities.Query()),
		m.spinner.Tick,
	)
}

// boot runs the health check and the metadata fetch concurrently.
func boot(root context.Context, gw Gateway) tea.Cmd {
	return func() tea.Msg {
		var msg bootMsg
		var g errgroup.Group
		g.Go(func() error {
			msg.health, msg.healthErr = gw.Health(root)
			return nil
		})
		g.Go(func() error {
			msg.metadata, msg.metaErr = gw.FetchMetadata(root)
			return nil
		})
		_ = g.Wait()
		return msg
	}
}

// Update is the single mutation point of the shell.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bootMsg:
		m.applyBoot(msg)
		return m, nil

	case pageLoadedMsg[types.CharacterRecord]:
		m.characters.apply(msg)
		return m, nil

	case pageLoadedMsg[types.AbilityRecord]:
		m.abilities.apply(msg)
		return m, nil

	case recommendationsMsg:
		m.workflow.apply(msg)
		return m, nil

	case synergyMsg:
		m.inspector.apply(msg)
		return m, nil

	case abilitySavedMsg:
		if !m.editor.apply(msg) {
			return m, nil
		}
		m.overlay.Close()
		m.setStatus(orDefault(msg.message, "Skill saved."), false)
		return m, m.abilities.Refresh()

	case recordRemovedMsg:
		if !m.confirm.apply(msg) {
			return m, nil
		}
		m.overlay.Close()
		m.setStatus(orDefault(msg.message, "Removed "+msg.name+"."), false)
		if msg.kind == types.KindAbilities {
			return m, m.abilities.Refresh()
		}
		return m, m.characters.Refresh()

	case inspectRequestMsg:
		m.overlay.Open(m.inspector)
		return m, m.inspector.Inspect(msg.members, msg.level)

	case editRequestMsg:
		m.overlay.Open(m.editor)
		return m, m.editor.Open(msg.record)

	case removeRequestMsg:
		m.overlay.Open(m.confirm)
		m.confirm.Open(msg.kind, msg.name)
		return m, nil

	case closeOverlayMsg:
		m.overlay.Close()
		return m, nil
	}

	// Cursor blinks and other component-internal messages.
	if m.overlay.IsOpen() {
		return m, m.overlay.Update(msg)
	}
	if m.router.IsActive(SectionRecommendation) {
		return m, m.workflow.Update(msg)
	}
	return m, nil
}

func (m *Model) applyBoot(msg bootMsg) {
	m.booted = true
	m.about.SetHealth(msg.health, msg.healthErr)
	if msg.healthErr != nil {
		m.logger.Warn("health check failed", zap.Error(msg.healthErr))
		m.setStatus("Server check failed: "+describeError(msg.healthErr), true)
	}

	if msg.metaErr != nil {
		m.logger.Warn("metadata unavailable", zap.Error(msg.metaErr))
		if msg.healthErr == nil {
			m.setStatus("Hero and camp lists unavailable: "+describeError(msg.metaErr), true)
		}
		return
	}
	if m.ctx.Metadata.Store(msg.metadata) {
		m.workflow.SetSuggestions(msg.metadata.Characters)
		m.logger.Info("metadata loaded",
			zap.Int("characters", len(msg.metadata.Characters)),
			zap.Int("factions", len(msg.metadata.Factions)))
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w

	bodyW := max(w-4, 20)
	bodyH := max(h-headerHeight-footerHeight, 5)
	m.characters.SetSize(bodyW, bodyH)
	m.abilities.SetSize(bodyW, bodyH)
	m.about.SetSize(bodyW, bodyH)
	m.inspector.SetSize(min(max(w-16, 30), 76), min(max(h-12, 6), 24))
}

// =============================================================================
// INPUT ROUTING
// =============================================================================

// inputFocused reports whether the visible component is taking text.
func (m Model) inputFocused() bool {
	if m.overlay.IsOpen() {
		return m.overlay.Active().InputFocused()
	}
	switch m.router.Section() {
	case SectionRecommendation:
		return m.workflow.InputFocused()
	case SectionData:
		if m.router.Tab() == TabAbilities {
			return m.abilities.InputFocused()
		}
		return m.characters.InputFocused()
	}
	return false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	// The overlay captures every key while open.
	if m.overlay.IsOpen() {
		if key.Matches(msg, m.okeys.Close) || key.Matches(msg, m.okeys.Cancel) {
			m.overlay.Close()
			return m, nil
		}
		return m, m.overlay.Update(msg)
	}

	if !m.inputFocused() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Recommend):
			m.router.Show(SectionRecommendation)
			return m, nil
		case key.Matches(msg, m.keys.Data):
			m.router.Show(SectionData)
			return m, nil
		case key.Matches(msg, m.keys.About):
			m.router.Show(SectionAbout)
			return m, nil
		}
	}

	switch m.router.Section() {
	case SectionRecommendation:
		return m, m.workflow.Update(msg)
	case SectionData:
		if !m.inputFocused() && key.Matches(msg, m.characters.keys.SwapTab) {
			m.router.ToggleTab()
			return m, nil
		}
		if m.router.Tab() == TabAbilities {
			return m, m.abilities.Update(msg)
		}
		return m, m.characters.Update(msg)
	case SectionAbout:
		return m, m.about.Update(msg)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.overlay.IsOpen() {
		return m, nil
	}
	// Wheel events also arrive as presses; only clicks dismiss.
	click := msg.Action == tea.MouseActionPress && !tea.MouseEvent(msg).IsWheel()
	if click && !m.overlay.Contains(msg.X, msg.Y, m.width, m.height) {
		m.overlay.Close()
		return m, nil
	}
	if m.overlay.Active() == modal(m.inspector) {
		return m, m.inspector.Update(msg)
	}
	return m, nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Router returns the section router.
func (m Model) Router() *Router { return m.router }

// Characters returns the hero catalog browser.
func (m Model) Characters() *Browser[types.CharacterRecord] { return m.characters }

// Abilities returns the skill catalog browser.
func (m Model) Abilities() *Browser[types.AbilityRecord] { return m.abilities }

// Workflow returns the recommendation workflow.
func (m Model) Workflow() *Workflow { return m.workflow }

// Overlay returns the modal layer.
func (m Model) Overlay() *Overlay { return m.overlay }

// Status returns the status line text and whether it reports a failure.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }
