package shell

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"teamforge/cmd/teamforge/ui"
	"teamforge/internal/logging"
	"teamforge/internal/types"
)

// Editor field indexes; the description textarea comes last.
const (
	fieldName = iota
	fieldKind
	fieldRarity
	fieldTrigger
	fieldDescription
	editorFieldCount
)

var editorLabels = [editorFieldCount]string{"Name", "Kind", "Rarity", "Trigger chance", "Description"}

// Editor is the modal form for one ability record. A single instance is
// reused for every edit.
type Editor struct {
	gateway Gateway
	root    context.Context
	logger  *zap.Logger
	styles  ui.Styles
	keys    overlayKeys

	seq          uint64
	originalName string
	original     types.AbilityRecord
	loaded       types.AbilityRecord
	inputs       []textinput.Model
	description  textarea.Model
	focus        int
	saving       bool
	err          error
}

// NewEditor creates the ability editor.
func NewEditor(ctx *Context) *Editor {
	inputs := make([]textinput.Model, fieldDescription)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 0
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[fieldTrigger].Placeholder = "e.g. 35%"

	desc := textarea.New()
	desc.ShowLineNumbers = false
	desc.CharLimit = 0
	desc.MaxHeight = 0
	desc.SetWidth(56)
	desc.SetHeight(5)

	return &Editor{
		gateway:     ctx.Gateway,
		root:        ctx.Root,
		logger:      ctx.Logger(logging.CategoryEditor),
		styles:      ctx.Styles,
		keys:        newOverlayKeys(),
		inputs:      inputs,
		description: desc,
	}
}

// Open fills the form from rec and remembers its current name as the
// address of the update.
func (e *Editor) Open(rec types.AbilityRecord) tea.Cmd {
	e.originalName = rec.Name
	e.inputs[fieldName].SetValue(rec.Name)
	e.inputs[fieldKind].SetValue(rec.Kind)
	e.inputs[fieldRarity].SetValue(rec.Rarity)
	e.inputs[fieldTrigger].SetValue(rec.TriggerProbability)
	e.description.SetValue(rec.Description)
	// The widgets sanitize what they are given (tabs become spaces), so a
	// field is only sent from the widget once its value moves off this.
	e.original = rec
	e.loaded = e.widgetValues()
	e.saving = false
	e.err = nil
	e.logger.Debug("editor opened", zap.String("original_name", rec.Name))
	return e.setFocus(fieldName)
}

// OriginalName is the name the record had when the editor was opened.
func (e *Editor) OriginalName() string { return e.originalName }

// Record returns the record as currently edited. Fields left untouched
// keep the value they were opened with.
func (e *Editor) Record() types.AbilityRecord {
	cur := e.widgetValues()
	keep := func(now, loaded, original string) string {
		if now == loaded {
			return original
		}
		return now
	}
	rec := types.AbilityRecord{
		Name:               keep(cur.Name, e.loaded.Name, e.original.Name),
		Kind:               keep(cur.Kind, e.loaded.Kind, e.original.Kind),
		Rarity:             keep(cur.Rarity, e.loaded.Rarity, e.original.Rarity),
		TriggerProbability: keep(cur.TriggerProbability, e.loaded.TriggerProbability, e.original.TriggerProbability),
		Description:        keep(cur.Description, e.loaded.Description, e.original.Description),
	}
	if cur.Name != e.loaded.Name {
		rec.Name = strings.TrimSpace(cur.Name)
	}
	return rec
}

func (e *Editor) widgetValues() types.AbilityRecord {
	return types.AbilityRecord{
		Name:               e.inputs[fieldName].Value(),
		Kind:               e.inputs[fieldKind].Value(),
		Rarity:             e.inputs[fieldRarity].Value(),
		TriggerProbability: e.inputs[fieldTrigger].Value(),
		Description:        e.description.Value(),
	}
}

// Err returns the inline error of the last save.
func (e *Editor) Err() error { return e.err }

// Saving reports whether a save is in flight.
func (e *Editor) Saving() bool { return e.saving }

// Save sends the edited record addressed by the original name.
func (e *Editor) Save() tea.Cmd {
	if e.saving {
		return nil
	}
	rec := e.Record()
	if rec.Name == "" {
		e.err = errors.New("name must not be empty")
		return nil
	}

	e.seq++
	seq := e.seq
	e.saving = true
	e.err = nil

	gw, root, original := e.gateway, e.root, e.originalName
	e.logger.Info("saving ability", zap.Uint64("seq", seq), zap.String("original_name", original), zap.String("name", rec.Name))

	return func() tea.Msg {
		message, err := gw.UpdateAbility(root, original, rec)
		return abilitySavedMsg{seq: seq, message: message, err: err}
	}
}

// apply reports whether msg is a successful save of the open form. Failures
// keep the form and its edits with an inline error.
func (e *Editor) apply(msg abilitySavedMsg) bool {
	if msg.seq != e.seq {
		e.logger.Debug("discarding stale response", zap.Uint64("seq", msg.seq), zap.Uint64("latest", e.seq))
		return false
	}
	e.saving = false
	if msg.err != nil {
		e.err = msg.err
		e.logger.Warn("save failed", zap.Error(msg.err))
		return false
	}
	e.logger.Info("ability saved", zap.String("message", msg.message))
	return true
}

// Close discards unsaved edits and invalidates any in-flight save.
func (e *Editor) Close() {
	e.seq++
	e.saving = false
	e.err = nil
	for i := range e.inputs {
		e.inputs[i].Blur()
	}
	e.description.Blur()
}

func (e *Editor) setFocus(field int) tea.Cmd {
	e.focus = (field + editorFieldCount) % editorFieldCount
	for i := range e.inputs {
		e.inputs[i].Blur()
	}
	e.description.Blur()
	if e.focus == fieldDescription {
		return e.description.Focus()
	}
	return e.inputs[e.focus].Focus()
}

// Update handles keys while the editor is the active overlay.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, e.keys.Save):
			return e.Save()
		case key.Matches(keyMsg, e.keys.Next):
			return e.setFocus(e.focus + 1)
		case key.Matches(keyMsg, e.keys.Prev):
			return e.setFocus(e.focus - 1)
		}
	}

	var cmd tea.Cmd
	if e.focus == fieldDescription {
		e.description, cmd = e.description.Update(msg)
	} else {
		e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	}
	return cmd
}

// View renders the form.
func (e *Editor) View() string {
	s := e.styles
	var sb strings.Builder

	sb.WriteString(s.Title.Render("Edit skill: " + e.originalName))
	sb.WriteString("\n")

	for i := 0; i < fieldDescription; i++ {
		sb.WriteString(s.Label.Render(editorLabels[i]))
		sb.WriteString(e.inputs[i].View())
		sb.WriteString("\n")
	}
	sb.WriteString(s.Label.Render(editorLabels[fieldDescription]))
	sb.WriteString("\n")
	sb.WriteString(e.description.View())
	sb.WriteString("\n\n")

	switch {
	case e.saving:
		sb.WriteString(s.Muted.Render("Saving..."))
	case e.err != nil:
		sb.WriteString(s.Error.Render("Not saved: " + describeError(e.err)))
	}
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render("ctrl+s save  tab next field  esc close  ctrl+q cancel"))
	return sb.String()
}

// InputFocused is always true while the editor is open.
func (e *Editor) InputFocused() bool { return true }
