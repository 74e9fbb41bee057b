package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Placeholder is rendered for empty display values.
const Placeholder = "unknown"

// Fallback is the single default-rendering policy: blank values render as
// Placeholder. The gateway never fills defaults in.
func Fallback(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// FormatScore renders a score rounded to one decimal place.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

// FormatCommand renders a command value; zero means the server sent none.
func FormatCommand(v float64) string {
	if v == 0 {
		return Placeholder
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatTags joins tags for a table cell.
func FormatTags(tags []string) string {
	return Fallback(strings.Join(tags, ", "))
}

// FormatExplanation renders an opaque synergy explanation: strings verbatim,
// anything else as indented JSON.
func FormatExplanation(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Placeholder
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

// Truncate shortens s to width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
