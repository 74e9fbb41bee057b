package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"teamforge/cmd/teamforge/ui"
	"teamforge/internal/logging"
	"teamforge/internal/types"
)

// RemoveConfirm asks before a record is removed. Nothing is sent until the
// user confirms.
type RemoveConfirm struct {
	gateway Gateway
	root    context.Context
	logger  *zap.Logger
	styles  ui.Styles
	keys    overlayKeys

	seq  uint64
	kind types.ResourceKind
	name string
	busy bool
	err  error
}

// NewRemoveConfirm creates the removal dialog.
func NewRemoveConfirm(ctx *Context) *RemoveConfirm {
	return &RemoveConfirm{
		gateway: ctx.Gateway,
		root:    ctx.Root,
		logger:  ctx.Logger(logging.CategoryEditor).With(zap.String("modal", "remove")),
		styles:  ctx.Styles,
		keys:    newOverlayKeys(),
	}
}

// Open targets the dialog at one record.
func (c *RemoveConfirm) Open(kind types.ResourceKind, name string) {
	c.kind = kind
	c.name = name
	c.busy = false
	c.err = nil
}

// Target returns the record the dialog asks about.
func (c *RemoveConfirm) Target() (types.ResourceKind, string) { return c.kind, c.name }

// Err returns the failure of the last attempt.
func (c *RemoveConfirm) Err() error { return c.err }

// Confirm issues the removal.
func (c *RemoveConfirm) Confirm() tea.Cmd {
	if c.busy || c.name == "" {
		return nil
	}
	c.seq++
	seq := c.seq
	c.busy = true
	c.err = nil

	gw, root, kind, name := c.gateway, c.root, c.kind, c.name
	c.logger.Info("removing record", zap.Uint64("seq", seq), zap.Stringer("kind", kind), zap.String("name", name))

	return func() tea.Msg {
		message, err := gw.RemoveRecord(root, kind, name)
		return recordRemovedMsg{seq: seq, kind: kind, name: name, message: message, err: err}
	}
}

func (c *RemoveConfirm) apply(msg recordRemovedMsg) bool {
	if msg.seq != c.seq {
		c.logger.Debug("discarding stale response", zap.Uint64("seq", msg.seq), zap.Uint64("latest", c.seq))
		return false
	}
	c.busy = false
	if msg.err != nil {
		c.err = msg.err
		c.logger.Warn("remove failed", zap.Error(msg.err))
		return false
	}
	c.logger.Info("record removed", zap.String("message", msg.message))
	return true
}

// Close invalidates any in-flight removal.
func (c *RemoveConfirm) Close() {
	c.seq++
	c.busy = false
	c.err = nil
}

// Update handles y/n.
func (c *RemoveConfirm) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, c.keys.Confirm):
		return c.Confirm()
	case key.Matches(keyMsg, c.keys.Deny):
		return emit(closeOverlayMsg{})
	}
	return nil
}

// View renders the question.
func (c *RemoveConfirm) View() string {
	s := c.styles
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Remove record"))
	sb.WriteString("\n\n")
	sb.WriteString(s.Body.Render(fmt.Sprintf("Remove %q from the %s catalog? This cannot be undone.", c.name, c.kind)))
	sb.WriteString("\n\n")
	switch {
	case c.busy:
		sb.WriteString(s.Muted.Render("Removing..."))
	case c.err != nil:
		sb.WriteString(s.Error.Render("Not removed: " + describeError(c.err)))
	}
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render("y confirm  n cancel"))
	return sb.String()
}

// InputFocused is false; the dialog only reads single keys.
func (c *RemoveConfirm) InputFocused() bool { return false }
