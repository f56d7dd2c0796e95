// Package logview shows recent debug log entries in an overlay without
// leaving the TUI.
package logview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/datecalc/internal/log"
	"github.com/zjrosen/datecalc/internal/ui/overlay"
	"github.com/zjrosen/datecalc/internal/ui/styles"
)

const (
	// MaxEntries bounds the kept entries; the oldest are dropped first.
	MaxEntries = 500

	viewportMaxHeight = 25
	viewportMinHeight = 5
	boxMaxWidth       = 160
	boxMinWidth       = 40
)

// Model is the log overlay state.
type Model struct {
	visible  bool
	minLevel log.Level
	entries  []string
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden log view showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append adds a log entry.
func (m Model) Append(entry string) Model {
	entry = strings.TrimRight(entry, "\n")
	if len(m.entries) >= MaxEntries {
		m.entries = append(m.entries[:0:0], m.entries[len(m.entries)-MaxEntries+1:]...)
	}
	m.entries = append(m.entries, entry)
	if m.visible {
		m = m.refresh()
		m.viewport.GotoBottom()
	}
	return m
}

// Entries returns the entries at or above the current level.
func (m Model) Entries() []string {
	var out []string
	for _, e := range m.entries {
		if m.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// MinLevel returns the current filter level.
func (m Model) MinLevel() log.Level { return m.minLevel }

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool { return m.visible }

// Toggle shows or hides the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m = m.refresh()
		m.viewport.GotoBottom()
	}
	return m
}

// SetSize sets the screen size the overlay is centred in.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m.refresh()
}

// Update handles keys while the overlay is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "c":
		m.entries = nil
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "j", "down":
		m.viewport.ScrollDown(1)
		return m, nil
	case "k", "up":
		m.viewport.ScrollUp(1)
		return m, nil
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+x", "esc":
		m.visible = false
		return m, nil
	default:
		return m, nil
	}
	return m.refresh(), nil
}

// View renders the overlay box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor).Render(strings.Repeat("─", width))

	var b strings.Builder
	b.WriteString(styles.TitleStyle.PaddingLeft(1).Render("Logs"))
	b.WriteString("\n" + divider + "\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n" + divider + "\n")
	b.WriteString(m.filterHint())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Width(width).
		Render(b.String())
}

// Overlay centres the view on bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

func (m Model) refresh() Model {
	if m.width == 0 || m.height == 0 {
		return m
	}
	// header, footer and borders take six lines
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	offset := m.viewport.YOffset
	m.viewport = viewport.New(m.boxWidth()-2, height)
	m.viewport.SetContent(m.content())
	m.viewport.SetYOffset(offset)
	return m
}

func (m Model) content() string {
	entries := m.Entries()
	if len(entries) == 0 {
		return styles.MutedStyle.Italic(true).Render("No logs to display")
	}
	maxWidth := m.boxWidth() - 2
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = colorize(e, maxWidth)
	}
	return strings.Join(lines, "\n")
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) matches(entry string) bool {
	level, ok := Level(entry)
	return !ok || level >= m.minLevel
}

// Level reads the level tag of a formatted entry.
func Level(entry string) (log.Level, bool) {
	for _, l := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo, log.LevelDebug} {
		if strings.Contains(entry, "["+l.String()+"]") {
			return l, true
		}
	}
	return log.LevelDebug, false
}

func colorize(entry string, maxWidth int) string {
	if ansi.StringWidth(entry) > maxWidth {
		entry = ansi.Truncate(entry, maxWidth-3, "...")
	}
	color := styles.TextPrimaryColor
	if level, ok := Level(entry); ok {
		switch level {
		case log.LevelError:
			color = styles.StatusErrorColor
		case log.LevelWarn:
			color = styles.StatusWarningColor
		case log.LevelInfo:
			color = styles.ToastInfoColor
		case log.LevelDebug:
			color = styles.TextMutedColor
		}
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	} {
		style := hint
		if f.level == m.minLevel {
			style = active
		}
		parts = append(parts, style.Render(f.label))
	}
	return strings.Join(parts, "  ")
}
