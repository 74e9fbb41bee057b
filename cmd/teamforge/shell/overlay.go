package shell

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"teamforge/cmd/teamforge/ui"
	"teamforge/internal/logging"
)

// modal is a component that can occupy the overlay.
type modal interface {
	Close()
	Update(msg tea.Msg) tea.Cmd
	View() string
	InputFocused() bool
}

// Overlay is the single modal layer drawn over the active section. At most
// one modal is open; opening another closes the previous one.
type Overlay struct {
	active modal
	logger *zap.Logger
	styles ui.Styles
	width  int
}

// NewOverlay creates an empty overlay. width fixes the box width; zero
// sizes the box to its content.
func NewOverlay(ctx *Context) *Overlay {
	return &Overlay{
		logger: ctx.Logger(logging.CategoryRouter),
		styles: ctx.Styles,
		width:  ctx.Config.UI.OverlayWidth,
	}
}

// Open shows m, closing any other modal first.
func (o *Overlay) Open(m modal) {
	if o.active != nil && o.active != m {
		o.logger.Debug("overlay replaced")
		o.active.Close()
	}
	o.active = m
}

// Close dismisses the open modal, discarding its state.
func (o *Overlay) Close() {
	if o.active == nil {
		return
	}
	o.active.Close()
	o.active = nil
	o.logger.Debug("overlay closed")
}

// IsOpen reports whether a modal is shown.
func (o *Overlay) IsOpen() bool { return o.active != nil }

// Active returns the open modal, or nil.
func (o *Overlay) Active() modal { return o.active }

// Update forwards msg to the open modal.
func (o *Overlay) Update(msg tea.Msg) tea.Cmd {
	if o.active == nil {
		return nil
	}
	return o.active.Update(msg)
}

func (o *Overlay) box() string {
	style := o.styles.Overlay
	if o.width > 0 {
		style = style.Width(o.width)
	}
	return style.Render(o.active.View())
}

// origin returns the top-left cell of a box of the given size centered in
// a w x h screen.
func origin(w, h, boxW, boxH int) (int, int) {
	x := int(math.Round(float64(w-boxW) * 0.5))
	y := int(math.Round(float64(h-boxH) * 0.5))
	return max(x, 0), max(y, 0)
}

// Render draws the open modal centered over base.
func (o *Overlay) Render(base string, w, h int) string {
	if o.active == nil {
		return base
	}
	box := o.box()
	boxW, boxH := lipgloss.Width(box), lipgloss.Height(box)
	x0, y0 := origin(w, h, boxW, boxH)

	lines := strings.Split(base, "\n")
	for len(lines) < y0+boxH {
		lines = append(lines, "")
	}

	for i, boxLine := range strings.Split(box, "\n") {
		row := y0 + i
		line := lines[row]

		left := ansi.Truncate(line, x0, "")
		if pad := x0 - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if ansi.StringWidth(line) > x0+boxW {
			right = ansi.TruncateLeft(line, x0+boxW, "")
		}
		lines[row] = left + boxLine + right
	}
	return strings.Join(lines, "\n")
}

// Contains reports whether cell (x, y) of a w x h screen lies inside the
// modal box.
func (o *Overlay) Contains(x, y, w, h int) bool {
	if o.active == nil {
		return false
	}
	box := o.box()
	boxW, boxH := lipgloss.Width(box), lipgloss.Height(box)
	x0, y0 := origin(w, h, boxW, boxH)
	return x >= x0 && x < x0+boxW && y >= y0 && y < y0+boxH
}
