package app

import (
	"strings"
	"time"

	bubbleshelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/datecalc/internal/daterange"
	"github.com/zjrosen/datecalc/internal/keys"
	"github.com/zjrosen/datecalc/internal/ui/styles"
	"github.com/zjrosen/datecalc/internal/ui/summary"
)

const (
	panelHeight   = 11
	durationWidth = 22
	resultWidth   = 28
	panelGap      = 1
)

// View implements tea.Model.
func (m Model) View() string {
	view := lipgloss.JoinVertical(lipgloss.Left, m.panels(), m.statusBar())
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	view = m.logs.Overlay(view)
	view = m.toaster.Overlay(view)
	return zone.Scan(view)
}

// panels lays the four panels out in one row when they fit, else in two.
func (m Model) panels() string {
	calWidth := m.start.Width() + 2
	gap := lipgloss.NewStyle().Width(panelGap).Render("")

	start := styles.RenderPanel(m.start.View(), "Start "+dayTitle(m.start.Selected()), calWidth, panelHeight, m.focus == focusStart)
	end := styles.RenderPanel(m.end.View(), "End "+dayTitle(m.end.Selected()), calWidth, panelHeight, m.focus == focusEnd)
	dur := styles.RenderPanel(m.inputs.View(), "Duration", durationWidth, panelHeight, m.focus == focusInputs)
	result := styles.RenderPanel(summary.View(m.summary), "Result", resultWidth, panelHeight, false)

	oneRow := 2*calWidth + durationWidth + resultWidth + 3*panelGap
	if m.width == 0 || m.width >= oneRow {
		return lipgloss.JoinHorizontal(lipgloss.Top, start, gap, end, gap, dur, gap, result)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, start, gap, end),
		lipgloss.JoinHorizontal(lipgloss.Top, dur, gap, result),
	)
}

func dayTitle(day time.Time) string {
	if day.IsZero() {
		return "-"
	}
	return daterange.FormatDay(day)
}

// statusBar shows the current location and the short help. In debug mode
// the latest log line replaces the location.
func (m Model) statusBar() string {
	h := bubbleshelp.New()
	if m.width > 0 {
		h.Width = m.width
	}
	line := styles.MutedStyle.Render("?" + m.svc.Router.String())
	if m.lastLog != "" {
		line = styles.MutedStyle.Render(strings.TrimSpace(ansi.Strip(m.lastLog)))
	}
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
	}
	return line + "\n" + h.ShortHelpView(keys.App.ShortHelp())
}
