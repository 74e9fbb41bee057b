package shell

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubModal records how often it was closed.
type stubModal struct {
	body   string
	closed int
}

func (s *stubModal) Close() { s.closed++ }
func (s *stubModal) Update(tea.Msg) tea.Cmd { return nil }
func (s *stubModal) View() string { return s.body }
func (s *stubModal) InputFocused() bool { return false }

func TestOverlay_OpenReplacesPrevious(t *testing.T) {
	ctx, _ := newTestContext(t, &fakeGateway{})
	o := NewOverlay(ctx)
	a, b := &stubModal{body: "a"}, &stubModal{body: "b"}

	o.Open(a)
	o.Open(a)
	assert.Zero(t, a.closed, "reopening the same modal keeps it")

	o.Open(b)
	assert.Equal(t, 1, a.closed)
	assert.Same(t, b, o.Active())

	o.Close()
	assert.Equal(t, 1, b.closed)
	assert.False(t, o.IsOpen())
	o.Close()
	assert.Equal(t, 1, b.closed)
}

func TestOverlay_RenderCentersBox(t *testing.T) {
	ctx, _ := newTestContext(t, &fakeGateway{})
	o := NewOverlay(ctx)
	base := strings.Repeat(strings.Repeat(".", 40)+"\n", 19) + strings.Repeat(".", 40)

	assert.Equal(t, base, o.Render(base, 40, 20))

	o.Open(&stubModal{body: "HELLO"})
	out := strings.Split(o.Render(base, 40, 20), "\n")
	require.Len(t, out, 20)

	row := -1
	for i, line := range out {
		if strings.Contains(line, "HELLO") {
			row = i
		}
	}
	require.NotEqual(t, -1, row)
	assert.True(t, strings.HasPrefix(out[row], "..."), "base shows left of the box")
	assert.True(t, strings.HasSuffix(out[row], "..."), "base shows right of the box")
	assert.Equal(t, strings.Repeat(".", 40), out[0])
}

func TestOverlay_Contains(t *testing.T) {
	ctx, _ := newTestContext(t, &fakeGateway{})
	o := NewOverlay(ctx)
	assert.False(t, o.Contains(10, 10, 40, 20))

	o.Open(&stubModal{body: "HELLO"})
	assert.True(t, o.Contains(20, 10, 40, 20))
	assert.False(t, o.Contains(0, 0, 40, 20))
	assert.False(t, o.Contains(39, 19, 40, 20))
}
