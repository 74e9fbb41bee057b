package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"teamforge/cmd/teamforge/ui"
	"teamforge/internal/api"
	"teamforge/internal/logging"
)

const aboutText = `# teamforge

Browse the hero and skill catalogs of the team service, ask it for
recommended teams and inspect how well a team works together.

## Sections

| Key | Section |
|-----|---------|
| 1 / F1 | Recommend teams |
| 2 / F2 | Hero and skill data |
| 3 / F3 | This page |

## Data

- ` + "`/`" + ` search by name, ` + "`f`" + ` pick a filter
- ` + "`←` `→`" + ` or ` + "`p` `n`" + ` change page, ` + "`r`" + ` reload
- ` + "`e`" + ` edit a skill, ` + "`x`" + ` remove a record
- ` + "`tab`" + ` switch between heroes and skills

## Recommend

- ` + "`tab`" + ` walks the constraint fields, ` + "`enter`" + ` or ` + "`s`" + ` submits
- ` + "`ctrl+r`" + ` restores the defaults
- ` + "`enter`" + ` or ` + "`i`" + ` on a team opens its synergy breakdown

Dialogs close with ` + "`esc`" + `, ` + "`ctrl+q`" + ` or a click outside them.
`

// About renders the help page and the server status.
type About struct {
	logger   *zap.Logger
	styles   ui.Styles
	baseURL  string
	renderer *glamour.TermRenderer

	health    api.HealthStatus
	healthErr error
	checked   bool

	viewport viewport.Model
}

// NewAbout creates the about page.
func NewAbout(ctx *Context) *About {
	a := &About{
		logger:   ctx.Logger(logging.CategoryBoot),
		styles:   ctx.Styles,
		baseURL:  ctx.Config.API.BaseURL,
		viewport: viewport.New(80, 20),
	}
	a.setRenderer(80)
	a.refresh()
	return a
}

func (a *About) setRenderer(width int) {
	style := "dark"
	if !a.styles.Theme.IsDark {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		a.logger.Warn("markdown renderer unavailable", zap.Error(err))
		a.renderer = nil
		return
	}
	a.renderer = r
}

// SetHealth records the result of the startup health check.
func (a *About) SetHealth(status api.HealthStatus, err error) {
	a.health = status
	a.healthErr = err
	a.checked = true
	a.refresh()
}

func (a *About) markdown() (out string) {
	if a.renderer == nil {
		return aboutText
	}
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("markdown render panicked", zap.Any("panic", r))
			out = aboutText
		}
	}()
	rendered, err := a.renderer.Render(aboutText)
	if err != nil {
		return aboutText
	}
	return rendered
}

// Content renders the page body.
func (a *About) Content() string {
	s := a.styles
	var sb strings.Builder
	sb.WriteString(a.markdown())
	sb.WriteString("\n")
	sb.WriteString(s.Label.Render("Server") + s.Body.Render(a.baseURL) + "\n")

	status := s.Muted.Render("checking...")
	switch {
	case !a.checked:
	case a.healthErr != nil:
		status = s.Error.Render(describeError(a.healthErr))
	default:
		status = s.Success.Render(fmt.Sprintf("%s %s", a.health.Status, a.health.Message))
	}
	sb.WriteString(s.Label.Render("Status") + status + "\n")
	return sb.String()
}

func (a *About) refresh() {
	a.viewport.SetContent(a.Content())
}

// SetSize fits the page to the body area.
func (a *About) SetSize(w, h int) {
	if w != a.viewport.Width {
		a.setRenderer(w)
	}
	a.viewport.Width = w
	a.viewport.Height = h
	a.refresh()
}

// Update scrolls the page.
func (a *About) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return cmd
}

// View renders the page.
func (a *About) View() string { return a.viewport.View() }
