package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPanel_Basic(t *testing.T) {
	out := ansi.Strip(RenderPanel("2024-01-01", "Start", 20, 4, false))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "╭─ Start "))
	assert.True(t, strings.HasSuffix(lines[0], "╮"))
	assert.Contains(t, lines[1], "2024-01-01")
	assert.True(t, strings.HasPrefix(lines[3], "╰"))
	for _, line := range lines {
		assert.Equal(t, 20, lipgloss.Width(line), "line %q", line)
	}
}

func TestRenderPanel_LongTitleTruncated(t *testing.T) {
	out := ansi.Strip(RenderPanel("", "A very long panel title", 14, 3, true))
	top := strings.Split(out, "\n")[0]
	assert.Contains(t, top, "...")
	assert.Equal(t, 14, lipgloss.Width(top))
}

func TestRenderPanel_NoTitle(t *testing.T) {
	out := ansi.Strip(RenderPanel("x", "", 6, 3, false))
	require.Equal(t, "╭────╮", strings.Split(out, "\n")[0])
}

func TestRenderPanel_ClipsContentHeight(t *testing.T) {
	out := ansi.Strip(RenderPanel("a\nb\nc\nd", "T", 10, 4, false))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "a")
	assert.Contains(t, lines[2], "b")
	assert.NotContains(t, out, "c")
}

func TestRenderPanel_TinySize(t *testing.T) {
	out := ansi.Strip(RenderPanel("", "Title", 0, 0, false))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "╭─╮", lines[0])
}
