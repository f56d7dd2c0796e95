// Package summary renders the result panel.
package summary

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/datecalc/internal/daterange"
	"github.com/zjrosen/datecalc/internal/ui/styles"
)

const labelWidth = 9

// View renders one "Label  value" line per summary row. Values are right
// aligned to the widest one.
func View(s daterange.Summary) string {
	rows := s.Rows()
	valueWidth := 0
	for _, r := range rows {
		valueWidth = max(valueWidth, lipgloss.Width(r[1]))
	}

	lines := make([]string, 0, len(rows)+1)
	for _, r := range rows {
		value := r[1]
		if value == "" {
			value = "-"
		}
		lines = append(lines,
			styles.LabelStyle.Width(labelWidth).Render(r[0])+
				styles.ValueStyle.Width(valueWidth).Align(lipgloss.Right).Render(value))
	}
	if !s.Valid {
		lines = append(lines, "", styles.MutedStyle.Render("pick an end date"))
	}
	return strings.Join(lines, "\n")
}
