package ui

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for black background")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme for white background")
	}

	t.Setenv("COLORFGBG", "")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme when COLORFGBG is unset")
	}
}

func TestThemeFor(t *testing.T) {
	assert.True(t, ThemeFor("dark").IsDark)
	assert.True(t, ThemeFor("DARK").IsDark)
	assert.False(t, ThemeFor("light").IsDark)
}

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Heroes", []string{"Name", "Faction"})
	table.AddRow("曹操", "魏")
	table.AddRow("关羽", "蜀")

	view := table.View(DefaultStyles())
	t.Logf("View:\n%q", view)

	assert.Contains(t, view, "Heroes")
	assert.Contains(t, view, "曹操")
	assert.Less(t, strings.Index(view, "曹操"), strings.Index(view, "关羽"), "rows keep insertion order")
}

func TestSimpleTable_EmptyMessage(t *testing.T) {
	table := NewSimpleTable("", []string{"Name"})
	table.Empty = "no records"
	assert.Contains(t, table.View(DefaultStyles()), "no records")

	table.Empty = ""
	assert.Equal(t, "", table.View(DefaultStyles()))
}

func TestSimpleTable_MaxWidthTruncates(t *testing.T) {
	table := NewSimpleTable("", []string{"Description"})
	table.MaxWidth = 10
	table.AddRow(strings.Repeat("x", 40))

	for _, line := range strings.Split(strings.TrimRight(table.View(DefaultStyles()), "\n"), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 12)
	}
}

func TestRenderTabs(t *testing.T) {
	s := DefaultStyles()
	out := s.RenderTabs([]string{"Recommend", "Data", "About"}, 1)
	assert.Contains(t, out, "Recommend")
	assert.Contains(t, out, "About")
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, Placeholder, Fallback(""))
	assert.Equal(t, Placeholder, Fallback("  "))
	assert.Equal(t, "魏", Fallback("魏"))

	assert.Equal(t, "80.8", FormatScore(80.83))
	assert.Equal(t, "88.0", FormatScore(88.04))
	assert.Equal(t, "0.0", FormatScore(0))

	assert.Equal(t, "97.5", FormatCommand(97.5))
	assert.Equal(t, Placeholder, FormatCommand(0))

	assert.Equal(t, "辅, 谋", FormatTags([]string{"辅", "谋"}))
	assert.Equal(t, Placeholder, FormatTags(nil))
}

func TestFormatExplanation(t *testing.T) {
	assert.Equal(t, "骑兵共鸣", FormatExplanation(json.RawMessage(`"骑兵共鸣"`)))
	assert.Equal(t, "{\n  \"输出\": 2\n}", FormatExplanation(json.RawMessage(`{"输出":2}`)))
	assert.Equal(t, "42", FormatExplanation(json.RawMessage(`42`)))
	assert.Equal(t, Placeholder, FormatExplanation(nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, 5, lipgloss.Width(Truncate("a much longer line", 5)))
	assert.Equal(t, "", Truncate("x", 0))
}
