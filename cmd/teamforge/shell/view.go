package shell

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// VIEW RENDERING
// =============================================================================

const (
	headerHeight = 2
	footerHeight = 2
)

// View renders the active section with the overlay on top.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	base := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	)
	return m.overlay.Render(base, m.width, m.height)
}

func (m Model) renderHeader() string {
	s := m.ctx.Styles
	labels := make([]string, len(Sections))
	active := 0
	for i, sec := range Sections {
		labels[i] = sec.String()
		if m.router.IsActive(sec) {
			active = i
		}
	}
	title := s.Header.Render("teamforge")
	bar := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", s.RenderTabs(labels, active))
	return bar + "\n" + s.RenderDivider(max(m.width, 1))
}

func (m Model) renderBody() string {
	s := m.ctx.Styles
	bodyH := max(m.height-headerHeight-footerHeight, 5)
	spin := m.spinner.View()

	var body string
	switch m.router.Section() {
	case SectionRecommendation:
		body = m.workflow.View(spin)
	case SectionData:
		labels := make([]string, len(DataTabs))
		for i, t := range DataTabs {
			labels[i] = t.String()
		}
		tabs := s.RenderTabs(labels, int(m.router.Tab()))
		if m.router.Tab() == TabAbilities {
			body = tabs + "\n\n" + m.abilities.View(spin)
		} else {
			body = tabs + "\n\n" + m.characters.View(spin)
		}
	case SectionAbout:
		body = m.about.View()
	}

	return s.Content.Height(bodyH).MaxHeight(bodyH).Render(body)
}

func (m Model) renderFooter() string {
	s := m.ctx.Styles
	status := ""
	if m.status != "" {
		if m.statusErr {
			status = s.Error.Render(m.status)
		} else {
			status = s.Success.Render(m.status)
		}
	} else if !m.booted {
		status = s.Spinner.Render(m.spinner.View()) + s.Muted.Render(" connecting...")
	}
	return s.Footer.Render(status) + "\n" + s.Footer.Render(m.help.ShortHelpView(m.helpBindings()))
}

func (m Model) helpBindings() []key.Binding {
	if m.overlay.IsOpen() {
		return []key.Binding{m.okeys.Close, m.okeys.Cancel}
	}
	g := m.keys
	switch m.router.Section() {
	case SectionRecommendation:
		w := m.workflow.keys
		return []key.Binding{w.Submit, w.NextField, w.Inspect, w.Reset, g.Data, g.About, g.Quit}
	case SectionData:
		c := m.characters.keys
		bindings := []key.Binding{c.Search, c.Filter, c.Prev, c.Next, c.Refresh}
		if m.router.Tab() == TabAbilities {
			bindings = append(bindings, c.Edit)
		}
		return append(bindings, c.Remove, c.SwapTab, g.Recommend, g.Quit)
	default:
		return []key.Binding{g.Recommend, g.Data, g.Quit}
	}
}
