// Package toaster provides a notification toast overlay component.
package toaster

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/datecalc/internal/ui/overlay"
	"github.com/zjrosen/datecalc/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	StyleInfo Style = iota
	StyleSuccess
	StyleError
)

const (
	// DefaultDuration is how long a toast stays up.
	DefaultDuration = 3 * time.Second

	maxWidth = 60
	maxLines = 3
	// border and padding on each side
	chrome = 4
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	width   int
	height  int
	// seq identifies the toast a DismissMsg belongs to.
	seq int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays message and returns the command that dismisses it after d.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Update handles DismissMsg. A dismissal scheduled for an older toast is
// ignored.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current text.
func (m Model) Message() string {
	return m.message
}

// SetSize updates the viewport dimensions for overlay positioning.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// textWidth is the widest line the toast may hold.
func (m Model) textWidth() int {
	w := maxWidth
	if m.width > 0 {
		w = min(w, m.width-chrome)
	}
	return max(w, 8)
}

// wrap word-wraps the message, cuts words longer than the line, and keeps
// at most maxLines lines.
func (m Model) wrap() string {
	width := m.textWidth()
	lines := strings.Split(wordwrap.String(m.message, width), "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = runewidth.Truncate(lines[maxLines-1]+" …", width, "…")
	}
	for i, line := range lines {
		lines[i] = runewidth.Truncate(line, width, "…")
	}
	return strings.Join(lines, "\n")
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	var color lipgloss.AdaptiveColor
	switch m.style {
	case StyleSuccess:
		color = styles.ToastSuccessColor
	case StyleError:
		color = styles.ToastErrorColor
	default:
		color = styles.ToastInfoColor
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(m.wrap())
}

// Overlay renders the toast at the bottom of bg.
func (m Model) Overlay(bg string) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	seq int
}
