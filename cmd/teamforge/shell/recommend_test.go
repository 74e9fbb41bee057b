package shell

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamforge/internal/api"
	"teamforge/internal/types"
)

func submitOnce(t *testing.T, w *Workflow) {
	t.Helper()
	msg, ok := run(t, w.Submit()).(recommendationsMsg)
	require.True(t, ok)
	w.apply(msg)
}

func TestWorkflow_ResetRestoresDefaults(t *testing.T) {
	ctx, _ := newTestContext(t, &fakeGateway{})
	w := NewWorkflow(ctx)

	w.inputs[wfRequired].SetValue("刘备")
	w.inputs[wfExcluded].SetValue("曹操")
	w.inputs[wfLevel].SetValue("30")
	w.inputs[wfCount].SetValue("3")
	w.inputs[wfTroops].SetValue("500")
	w.damage = false

	w.Reset()

	got, err := w.Constraints()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultTeamConstraints(), got)
	assert.Equal(t, 50, got.TargetLevel)
	assert.Equal(t, 10, got.TargetCount)
	assert.Equal(t, 10000, got.TroopStrength)
	assert.True(t, got.RequireDamageVerification)
}

func TestWorkflow_ResetKey(t *testing.T) {
	ctx, _ := newTestContext(t, &fakeGateway{})
	w := NewWorkflow(ctx)
	w.inputs[wfLevel].SetValue("7")

	w.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	assert.Equal(t, "50", w.inputs[wfLevel].Value())
}

func TestWorkflow_InvalidNumberReportedInline(t *testing.T) {
	tests := []struct {
		name  string
		field int
		value string
	}{
		{"letters in level", wfLevel, "abc"},
		{"zero count", wfCount, "0"},
		{"negative troops", wfTroops, "-5"},
		{"empty level", wfLevel, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			ctx, _ := newTestContext(t, gw)
			w := NewWorkflow(ctx)
			w.inputs[tt.field].SetValue(tt.value)

			assert.Nil(t, w.Submit())
			assert.Error(t, w.FormErr())
			assert.Empty(t, gw.constraints, "no request for invalid input")
			assert.Contains(t, w.View(""), "Check the form")
		})
	}
}

func TestWorkflow_EmptyTroopsLeftOut(t *testing.T) {
	ctx, _ := newTestContext(t, &fakeGateway{})
	w := NewWorkflow(ctx)
	w.inputs[wfTroops].SetValue("")

	got, err := w.Constraints()
	require.NoError(t, err)
	assert.Zero(t, got.TroopStrength)
}

func TestWorkflow_SubmitSendsConstraints(t *testing.T) {
	gw := &fakeGateway{}
	ctx, _ := newTestContext(t, gw)
	w := NewWorkflow(ctx)
	w.inputs[wfRequired].SetValue(" 刘备 ")
	w.inputs[wfLevel].SetValue("40")

	submitOnce(t, w)

	require.Len(t, gw.constraints, 1)
	got := gw.constraints[0]
	assert.Equal(t, "刘备", got.RequiredMember)
	assert.Empty(t, got.ExcludedMember)
	assert.Equal(t, 40, got.TargetLevel)
}

func TestWorkflow_RendersRankedCandidates(t *testing.T) {
	gw := &fakeGateway{recommend: func(types.TeamConstraints) ([]types.TeamCandidate, error) {
		return []types.TeamCandidate{
			{Score: 92.26, Members: []string{"刘备", "关羽", "张飞"}},
			{Score: 88, Members: []string{"曹操", "典韦", "许褚"}},
		}, nil
	}}
	ctx, _ := newTestContext(t, gw)
	w := NewWorkflow(ctx)

	submitOnce(t, w)
	view := w.View("")

	assert.Contains(t, view, "#1")
	assert.Contains(t, view, "92.3")
	assert.Contains(t, view, "刘备, 关羽, 张飞")
	assert.Contains(t, view, "#2")
	assert.Contains(t, view, "88.0")
}

func TestWorkflow_ZeroCandidates(t *testing.T) {
	ctx, _ := newTestContext(t, &fakeGateway{})
	w := NewWorkflow(ctx)

	submitOnce(t, w)

	assert.NoError(t, w.Err())
	assert.Contains(t, w.View(""), "No team satisfies these constraints.")
	assert.Nil(t, w.Inspect(), "nothing to inspect")
}

func TestWorkflow_FailureIsDistinctFromEmpty(t *testing.T) {
	gw := &fakeGateway{recommend: func(types.TeamConstraints) ([]types.TeamCandidate, error) {
		return nil, &api.TransportError{Op: "recommend", StatusCode: 502, Err: errors.New("bad gateway")}
	}}
	ctx, _ := newTestContext(t, gw)
	w := NewWorkflow(ctx)

	submitOnce(t, w)
	view := w.View("")

	assert.Contains(t, view, "Could not fetch recommendations")
	assert.Contains(t, view, "502")
	assert.NotContains(t, view, "No team satisfies")
}

func TestWorkflow_InspectHandsMembersAndLevel(t *testing.T) {
	gw := &fakeGateway{recommend: func(types.TeamConstraints) ([]types.TeamCandidate, error) {
		return []types.TeamCandidate{
			{Score: 90, Members: []string{"A", "B", "C"}},
			{Score: 80, Members: []string{"D", "E", "F"}},
		}, nil
	}}
	ctx, _ := newTestContext(t, gw)
	w := NewWorkflow(ctx)
	w.inputs[wfLevel].SetValue("45")
	submitOnce(t, w)

	w.Update(tea.KeyMsg{Type: tea.KeyDown})
	msg := run(t, w.Update(runes("i")))

	assert.Equal(t, inspectRequestMsg{members: []string{"D", "E", "F"}, level: 45}, msg)
}

func TestWorkflow_InspectLevelFallsBack(t *testing.T) {
	ctx, _ := newTestContext(t, &fakeGateway{})
	w := NewWorkflow(ctx)
	w.inputs[wfLevel].SetValue("x")
	assert.Equal(t, types.DefaultTargetLevel, w.InspectLevel())
}

func TestWorkflow_StaleResponseDiscarded(t *testing.T) {
	round := 0
	gw := &fakeGateway{recommend: func(types.TeamConstraints) ([]types.TeamCandidate, error) {
		round++
		if round == 1 {
			return []types.TeamCandidate{{Score: 1, Members: []string{"old"}}}, nil
		}
		return []types.TeamCandidate{{Score: 2, Members: []string{"new"}}}, nil
	}}
	ctx, logs := newTestContext(t, gw)
	w := NewWorkflow(ctx)

	first := w.Submit()
	second := w.Submit()
	late := run(t, first).(recommendationsMsg)
	w.apply(run(t, second).(recommendationsMsg))
	w.apply(late)

	require.Len(t, w.Candidates(), 1)
	assert.Equal(t, []string{"new"}, w.Candidates()[0].Members)
	stale := logs.FilterMessage("discarding stale response").All()
	require.Len(t, stale, 1)
	assert.Equal(t, "recommend", stale[0].LoggerName)
}

func TestWorkflow_FocusAndToggle(t *testing.T) {
	ctx, _ := newTestContext(t, &fakeGateway{})
	w := NewWorkflow(ctx)
	assert.False(t, w.InputFocused(), "starts on the result list")

	w.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, w.InputFocused())

	w.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	w.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, wfDamage, w.focus)
	assert.False(t, w.InputFocused())

	w.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	got, err := w.Constraints()
	require.NoError(t, err)
	assert.False(t, got.RequireDamageVerification)

	w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, wfResults, w.focus)
}

func TestWorkflow_SuggestionCompletion(t *testing.T) {
	ctx, _ := newTestContext(t, &fakeGateway{})
	w := NewWorkflow(ctx)
	w.SetSuggestions([]string{"诸葛亮", "刘备"})

	w.Update(tea.KeyMsg{Type: tea.KeyTab})
	w.Update(runes("诸"))
	w.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, "诸葛亮", w.inputs[wfRequired].Value())
	assert.Equal(t, wfRequired, w.focus, "completion keeps focus")
}
