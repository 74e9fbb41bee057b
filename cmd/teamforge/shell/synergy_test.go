package shell

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamforge/internal/api"
	"teamforge/internal/types"
)

func twoAxisReport() types.SynergyReport {
	return types.SynergyReport{
		OverallScore: 87.46,
		Sections: map[types.AnalysisAxis]json.RawMessage{
			types.AxisRoleBalance: json.RawMessage(`"two damage dealers and one support"`),
			types.AxisTagSynergy:  json.RawMessage(`{"shared_tags":["骑兵"]}`),
		},
	}
}

func TestInspector_RendersPopulatedAxesInOrder(t *testing.T) {
	var gotMembers []string
	var gotLevel int
	gw := &fakeGateway{synergy: func(members []string, level int) (types.SynergyReport, error) {
		gotMembers, gotLevel = members, level
		return twoAxisReport(), nil
	}}
	ctx, _ := newTestContext(t, gw)
	i := NewInspector(ctx)

	i.apply(run(t, i.Inspect([]string{"刘备", "关羽", "张飞"}, 60)).(synergyMsg))

	assert.Equal(t, []string{"刘备", "关羽", "张飞"}, gotMembers)
	assert.Equal(t, 60, gotLevel)

	content := i.Content()
	assert.Contains(t, content, "87.5")
	tag := strings.Index(content, "Tag synergy")
	role := strings.Index(content, "Role balance")
	require.NotEqual(t, -1, tag)
	require.NotEqual(t, -1, role)
	assert.Less(t, tag, role, "sections follow the fixed axis order")
	assert.Contains(t, content, "two damage dealers and one support")
	assert.Contains(t, content, "shared_tags")

	for _, absent := range []string{"Troop type synergy", "Faction bonus", "Ability synergy"} {
		assert.NotContains(t, content, absent)
	}
}

func TestInspector_LoadingThenFailure(t *testing.T) {
	gw := &fakeGateway{synergy: func([]string, int) (types.SynergyReport, error) {
		return types.SynergyReport{}, &api.ApplicationError{Op: "synergy", Message: "unknown hero 貂蝉"}
	}}
	ctx, _ := newTestContext(t, gw)
	i := NewInspector(ctx)

	cmd := i.Inspect([]string{"貂蝉"}, 50)
	assert.Contains(t, i.Content(), "Analyzing team...")

	i.apply(run(t, cmd).(synergyMsg))
	_, ok := i.Report()
	assert.False(t, ok)
	assert.Contains(t, i.Content(), "unknown hero 貂蝉")
}

func TestInspector_NewInspectionReplacesContent(t *testing.T) {
	gw := &fakeGateway{synergy: func(members []string, _ int) (types.SynergyReport, error) {
		return types.SynergyReport{OverallScore: float64(len(members))}, nil
	}}
	ctx, logs := newTestContext(t, gw)
	i := NewInspector(ctx)

	first := i.Inspect([]string{"A"}, 50)
	second := i.Inspect([]string{"A", "B"}, 50)
	late := run(t, first).(synergyMsg)
	i.apply(run(t, second).(synergyMsg))
	i.apply(late)

	report, ok := i.Report()
	require.True(t, ok)
	assert.Equal(t, 2.0, report.OverallScore)
	assert.Equal(t, []string{"A", "B"}, i.Members())
	assert.Equal(t, 1, logs.FilterMessage("discarding stale response").Len())
}

func TestInspector_LateResponseAfterCloseDiscarded(t *testing.T) {
	gw := &fakeGateway{synergy: func([]string, int) (types.SynergyReport, error) {
		return twoAxisReport(), nil
	}}
	ctx, logs := newTestContext(t, gw)
	i := NewInspector(ctx)

	cmd := i.Inspect([]string{"A"}, 50)
	i.Close()
	i.apply(run(t, cmd).(synergyMsg))

	_, ok := i.Report()
	assert.False(t, ok)
	stale := logs.FilterMessage("discarding stale response").All()
	require.Len(t, stale, 1)
	assert.Equal(t, "synergy", stale[0].LoggerName)
}
