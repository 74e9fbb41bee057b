package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"teamforge/cmd/teamforge/ui"
	"teamforge/internal/logging"
	"teamforge/internal/types"
)

// Inspector shows the synergy breakdown of one team in the overlay.
type Inspector struct {
	gateway Gateway
	root    context.Context
	logger  *zap.Logger
	styles  ui.Styles

	seq     uint64
	members []string
	level   int
	loading bool
	report  *types.SynergyReport
	err     error

	viewport viewport.Model
}

// NewInspector creates the synergy inspector.
func NewInspector(ctx *Context) *Inspector {
	return &Inspector{
		gateway:  ctx.Gateway,
		root:     ctx.Root,
		logger:   ctx.Logger(logging.CategorySynergy),
		styles:   ctx.Styles,
		viewport: viewport.New(64, 16),
	}
}

// Inspect starts a new inspection, replacing whatever was shown.
func (i *Inspector) Inspect(members []string, level int) tea.Cmd {
	i.seq++
	seq := i.seq
	i.members = append([]string(nil), members...)
	i.level = level
	i.loading = true
	i.report = nil
	i.err = nil
	i.refreshContent()

	gw, root := i.gateway, i.root
	team := append([]string(nil), members...)
	i.logger.Debug("inspect", zap.Uint64("seq", seq), zap.Strings("members", team), zap.Int("level", level))

	return func() tea.Msg {
		report, err := gw.FetchSynergy(root, team, level)
		return synergyMsg{seq: seq, report: report, err: err}
	}
}

// Close invalidates any in-flight inspection.
func (i *Inspector) Close() {
	i.seq++
	i.loading = false
}

func (i *Inspector) apply(msg synergyMsg) {
	if msg.seq != i.seq {
		i.logger.Debug("discarding stale response", zap.Uint64("seq", msg.seq), zap.Uint64("latest", i.seq))
		return
	}
	i.loading = false
	if msg.err != nil {
		i.err = msg.err
		i.logger.Warn("synergy failed", zap.Error(msg.err))
	} else {
		report := msg.report
		i.report = &report
	}
	i.refreshContent()
}

// Report returns the rendered report, if any.
func (i *Inspector) Report() (types.SynergyReport, bool) {
	if i.report == nil {
		return types.SynergyReport{}, false
	}
	return *i.report, true
}

// Members returns the inspected team.
func (i *Inspector) Members() []string { return i.members }

// Content renders the report body.
func (i *Inspector) Content() string {
	s := i.styles
	var sb strings.Builder

	sb.WriteString(s.Title.Render("Synergy: " + strings.Join(i.members, ", ")))
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render(fmt.Sprintf("Level %d", i.level)))
	sb.WriteString("\n\n")

	switch {
	case i.loading:
		sb.WriteString(s.Muted.Render("Analyzing team..."))
	case i.err != nil:
		sb.WriteString(s.Error.Render("Could not analyze this team: " + describeError(i.err)))
	case i.report != nil:
		sb.WriteString(s.Bold.Render("Overall score: " + ui.FormatScore(i.report.OverallScore)))
		sb.WriteString("\n")
		for _, axis := range i.report.PopulatedAxes() {
			sb.WriteString("\n")
			sb.WriteString(s.Bold.Render(axis.Title()))
			sb.WriteString("\n")
			sb.WriteString(s.Body.Render(ui.FormatExplanation(i.report.Sections[axis])))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (i *Inspector) refreshContent() {
	i.viewport.SetContent(i.Content())
	i.viewport.GotoTop()
}

// SetSize fits the scroll area to the overlay.
func (i *Inspector) SetSize(w, h int) {
	i.viewport.Width = w
	i.viewport.Height = h
	i.refreshContent()
}

// Update scrolls the report.
func (i *Inspector) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.viewport, cmd = i.viewport.Update(msg)
	return cmd
}

// View renders the overlay body.
func (i *Inspector) View() string {
	help := i.styles.Muted.Render("↑/↓ scroll  esc close")
	return i.viewport.View() + "\n" + help
}

// InputFocused is always false; the inspector has no text inputs.
func (i *Inspector) InputFocused() bool { return false }
