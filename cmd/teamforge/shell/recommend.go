package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"teamforge/cmd/teamforge/ui"
	"teamforge/internal/logging"
	"teamforge/internal/types"
)

// Workflow focus positions. Text inputs first, then the toggle, then the
// result list.
const (
	wfRequired = iota
	wfExcluded
	wfLevel
	wfCount
	wfTroops
	wfDamage
	wfResults
	wfFocusCount
)

var workflowLabels = [wfDamage]string{"Must include", "Exclude", "Level", "Team count", "Troop strength"}

// Workflow collects team constraints, requests recommendations and lists
// the ranked candidates.
type Workflow struct {
	gateway Gateway
	root    context.Context
	logger  *zap.Logger
	styles  ui.Styles
	keys    workflowKeys

	inputs []textinput.Model
	damage bool
	focus  int

	seq        uint64
	loading    bool
	received   bool
	candidates []types.TeamCandidate
	cursor     int
	err        error
	formErr    error
}

// NewWorkflow creates the recommendation form with default constraints.
func NewWorkflow(ctx *Context) *Workflow {
	inputs := make([]textinput.Model, wfDamage)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 20
		inputs[i] = ti
	}
	for _, i := range []int{wfRequired, wfExcluded} {
		inputs[i].CharLimit = 32
		inputs[i].Placeholder = "any"
		inputs[i].ShowSuggestions = true
	}
	for _, i := range []int{wfLevel, wfCount, wfTroops} {
		inputs[i].CharLimit = 7
	}

	w := &Workflow{
		gateway: ctx.Gateway,
		root:    ctx.Root,
		logger:  ctx.Logger(logging.CategoryRecommend),
		styles:  ctx.Styles,
		keys:    newWorkflowKeys(),
		inputs:  inputs,
		focus:   wfResults,
	}
	w.Reset()
	return w
}

// Reset restores every constraint to its default.
func (w *Workflow) Reset() {
	d := types.DefaultTeamConstraints()
	w.inputs[wfRequired].SetValue(d.RequiredMember)
	w.inputs[wfExcluded].SetValue(d.ExcludedMember)
	w.inputs[wfLevel].SetValue(strconv.Itoa(d.TargetLevel))
	w.inputs[wfCount].SetValue(strconv.Itoa(d.TargetCount))
	w.inputs[wfTroops].SetValue(strconv.Itoa(d.TroopStrength))
	w.damage = d.RequireDamageVerification
	w.formErr = nil
}

// SetSuggestions offers names for the member inputs.
func (w *Workflow) SetSuggestions(names []string) {
	w.inputs[wfRequired].SetSuggestions(names)
	w.inputs[wfExcluded].SetSuggestions(names)
}

// Constraints reads the form. Numeric fields must be positive whole
// numbers; an empty troop strength leaves it out of the request.
func (w *Workflow) Constraints() (types.TeamConstraints, error) {
	tc := types.TeamConstraints{
		RequiredMember:            strings.TrimSpace(w.inputs[wfRequired].Value()),
		ExcludedMember:            strings.TrimSpace(w.inputs[wfExcluded].Value()),
		RequireDamageVerification: w.damage,
	}

	var err error
	if tc.TargetLevel, err = positiveInt(workflowLabels[wfLevel], w.inputs[wfLevel].Value(), true); err != nil {
		return tc, err
	}
	if tc.TargetCount, err = positiveInt(workflowLabels[wfCount], w.inputs[wfCount].Value(), true); err != nil {
		return tc, err
	}
	if tc.TroopStrength, err = positiveInt(workflowLabels[wfTroops], w.inputs[wfTroops].Value(), false); err != nil {
		return tc, err
	}
	return tc, nil
}

func positiveInt(label, raw string, required bool) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%s is required", strings.ToLower(label))
		}
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive whole number, got %q", strings.ToLower(label), raw)
	}
	return n, nil
}

// Submit validates the form and requests recommendations. Invalid input is
// reported inline and nothing is sent.
func (w *Workflow) Submit() tea.Cmd {
	tc, err := w.Constraints()
	if err != nil {
		w.formErr = err
		w.logger.Debug("constraints rejected", zap.Error(err))
		return nil
	}
	w.formErr = nil

	w.seq++
	seq := w.seq
	w.loading = true
	w.err = nil

	gw, root := w.gateway, w.root
	w.logger.Info("requesting recommendations",
		zap.Uint64("seq", seq),
		zap.String("required", tc.RequiredMember),
		zap.String("excluded", tc.ExcludedMember),
		zap.Int("count", tc.TargetCount),
		zap.Int("level", tc.TargetLevel),
		zap.Int("troops", tc.TroopStrength),
		zap.Bool("damage_verification", tc.RequireDamageVerification))

	return func() tea.Msg {
		candidates, err := gw.FetchRecommendations(root, tc)
		return recommendationsMsg{seq: seq, candidates: candidates, err: err}
	}
}

func (w *Workflow) apply(msg recommendationsMsg) {
	if msg.seq != w.seq {
		w.logger.Debug("discarding stale response", zap.Uint64("seq", msg.seq), zap.Uint64("latest", w.seq))
		return
	}
	w.loading = false
	if msg.err != nil {
		w.err = msg.err
		w.logger.Warn("recommendation failed", zap.Error(msg.err))
		return
	}
	w.err = nil
	w.received = true
	w.candidates = msg.candidates
	w.cursor = 0
	w.logger.Debug("recommendations applied", zap.Int("candidates", len(msg.candidates)))
}

// Candidates returns the last rendered candidates.
func (w *Workflow) Candidates() []types.TeamCandidate { return w.candidates }

// Err returns the failure of the last request.
func (w *Workflow) Err() error { return w.err }

// FormErr returns the inline validation error, if any.
func (w *Workflow) FormErr() error { return w.formErr }

// Loading reports whether a request is in flight.
func (w *Workflow) Loading() bool { return w.loading }

// SelectedCandidate returns the candidate under the cursor.
func (w *Workflow) SelectedCandidate() (types.TeamCandidate, bool) {
	if w.cursor < 0 || w.cursor >= len(w.candidates) {
		return types.TeamCandidate{}, false
	}
	return w.candidates[w.cursor], true
}

// InspectLevel is the level handed to the inspector: the form's level, or
// the default when the field does not hold a valid one.
func (w *Workflow) InspectLevel() int {
	n, err := positiveInt(workflowLabels[wfLevel], w.inputs[wfLevel].Value(), true)
	if err != nil {
		return types.DefaultTargetLevel
	}
	return n
}

// Inspect asks the shell to analyze the selected candidate.
func (w *Workflow) Inspect() tea.Cmd {
	c, ok := w.SelectedCandidate()
	if !ok {
		return nil
	}
	return emit(inspectRequestMsg{members: c.Members, level: w.InspectLevel()})
}

// InputFocused reports whether a text field has focus.
func (w *Workflow) InputFocused() bool { return w.focus < wfDamage }

func (w *Workflow) setFocus(pos int) tea.Cmd {
	w.focus = (pos + wfFocusCount) % wfFocusCount
	for i := range w.inputs {
		w.inputs[i].Blur()
	}
	if w.focus < wfDamage {
		return w.inputs[w.focus].Focus()
	}
	return nil
}

// acceptSuggestion completes a member field from its suggestion list.
func (w *Workflow) acceptSuggestion() bool {
	if w.focus != wfRequired && w.focus != wfExcluded {
		return false
	}
	in := &w.inputs[w.focus]
	s := in.CurrentSuggestion()
	if s == "" || s == in.Value() {
		return false
	}
	in.SetValue(s)
	in.CursorEnd()
	return true
}

// Update handles input while the recommendation section is shown.
func (w *Workflow) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if w.focus < wfDamage {
			var cmd tea.Cmd
			w.inputs[w.focus], cmd = w.inputs[w.focus].Update(msg)
			return cmd
		}
		return nil
	}

	if key.Matches(keyMsg, w.keys.Reset) {
		w.Reset()
		return nil
	}

	if w.focus == wfResults {
		switch {
		case key.Matches(keyMsg, w.keys.Up):
			if w.cursor > 0 {
				w.cursor--
			}
		case key.Matches(keyMsg, w.keys.Down):
			if w.cursor < len(w.candidates)-1 {
				w.cursor++
			}
		case key.Matches(keyMsg, w.keys.Inspect):
			return w.Inspect()
		case key.Matches(keyMsg, w.keys.Submit):
			return w.Submit()
		case key.Matches(keyMsg, w.keys.NextField):
			return w.setFocus(wfRequired)
		case key.Matches(keyMsg, w.keys.PrevField):
			return w.setFocus(wfDamage)
		}
		return nil
	}

	switch {
	case key.Matches(keyMsg, w.keys.Leave):
		return w.setFocus(wfResults)
	case key.Matches(keyMsg, w.keys.NextField):
		if w.acceptSuggestion() {
			return nil
		}
		return w.setFocus(w.focus + 1)
	case key.Matches(keyMsg, w.keys.PrevField):
		return w.setFocus(w.focus - 1)
	case keyMsg.Type == tea.KeyEnter:
		cmd := w.Submit()
		if cmd == nil {
			return nil
		}
		return tea.Batch(cmd, w.setFocus(wfResults))
	}

	if w.focus == wfDamage {
		switch {
		case key.Matches(keyMsg, w.keys.Toggle):
			w.damage = !w.damage
		case key.Matches(keyMsg, w.keys.Submit):
			return w.Submit()
		}
		return nil
	}

	var cmd tea.Cmd
	w.inputs[w.focus], cmd = w.inputs[w.focus].Update(keyMsg)
	return cmd
}

// View renders the form and the candidate list. spin is the shared spinner
// frame.
func (w *Workflow) View(spin string) string {
	s := w.styles
	var sb strings.Builder

	sb.WriteString(s.Bold.Render("Team constraints") + "\n\n")
	for i := 0; i < wfDamage; i++ {
		label := s.Label.Render(workflowLabels[i])
		if w.focus == i {
			label = s.Label.Foreground(s.Theme.Accent).Render(workflowLabels[i])
		}
		sb.WriteString(label + w.inputs[i].View() + "\n")
	}

	box := "[ ]"
	if w.damage {
		box = "[x]"
	}
	toggle := box + " Require damage verification"
	if w.focus == wfDamage {
		toggle = s.Bold.Foreground(s.Theme.Accent).Render(toggle)
	}
	sb.WriteString(s.Label.Render("") + toggle + "\n")

	if w.formErr != nil {
		sb.WriteString("\n" + s.Error.Render("Check the form: "+w.formErr.Error()) + "\n")
	}
	sb.WriteString("\n" + s.RenderDivider(48) + "\n\n")

	sb.WriteString(w.renderResults(spin))
	return sb.String()
}

func (w *Workflow) renderResults(spin string) string {
	s := w.styles
	switch {
	case w.loading:
		return s.Spinner.Render(spin) + s.Muted.Render(" Finding teams...")
	case w.err != nil:
		return s.Error.Render("Could not fetch recommendations: " + describeError(w.err))
	case !w.received:
		return s.Muted.Render("Press s to recommend teams, tab to edit the constraints.")
	case len(w.candidates) == 0:
		return s.Warning.Render("No team satisfies these constraints.")
	}

	var sb strings.Builder
	sb.WriteString(s.Muted.Render(fmt.Sprintf("%d candidates", len(w.candidates))) + "\n\n")
	for i, c := range w.candidates {
		line := fmt.Sprintf("#%-3d %6s  %s", i+1, ui.FormatScore(c.Score), c.MemberList())
		if i == w.cursor && w.focus == wfResults {
			sb.WriteString(s.Badge.Render(line))
		} else {
			sb.WriteString(s.Body.Render(line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
