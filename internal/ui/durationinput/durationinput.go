// Package durationinput provides the four numeric duration fields.
package durationinput

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/datecalc/internal/daterange"
	"github.com/zjrosen/datecalc/internal/keys"
	"github.com/zjrosen/datecalc/internal/ui/styles"
)

const (
	charLimit  = 6
	inputWidth = 8
	labelWidth = 7
)

var labels = map[string]string{
	daterange.FieldYears:  "Years",
	daterange.FieldMonths: "Months",
	daterange.FieldWeeks:  "Weeks",
	daterange.FieldDays:   "Days",
}

// ChangedMsg reports a committed edit of one field.
type ChangedMsg struct {
	Field string
	Value int
}

// Model holds one text input per duration field.
type Model struct {
	inputs  []textinput.Model
	active  int
	focused bool
}

// New creates the inputs, all showing 0.
func New() Model {
	m := Model{inputs: make([]textinput.Model, len(daterange.DurationFields))}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = charLimit
		ti.Width = inputWidth
		ti.Placeholder = "0"
		ti.SetValue("0")
		m.inputs[i] = ti
	}
	return m
}

// Active returns the field name under the cursor.
func (m Model) Active() string {
	return daterange.DurationFields[m.active]
}

// Focused reports whether the inputs receive keys.
func (m Model) Focused() bool { return m.focused }

// Focus gives keyboard focus to the active field.
func (m Model) Focus() (Model, tea.Cmd) {
	m.focused = true
	return m, m.inputs[m.active].Focus()
}

// Blur removes focus from every field.
func (m Model) Blur() Model {
	m.focused = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m
}

// Value returns the text of field.
func (m Model) Value(field string) string {
	for i, f := range daterange.DurationFields {
		if f == field {
			return m.inputs[i].Value()
		}
	}
	return ""
}

// SetDuration shows d. A field whose text already means the same number
// keeps its text, and a field the user just cleared stays empty.
func (m Model) SetDuration(d daterange.Duration) Model {
	for i, field := range daterange.DurationFields {
		n, _ := d.Field(field)
		if current, ok := parse(m.inputs[i].Value()); ok && current == n {
			continue
		}
		if i == m.active && m.focused && isPartial(m.inputs[i].Value()) && n == 0 {
			continue
		}
		m.inputs[i].SetValue(strconv.Itoa(n))
	}
	return m
}

// Update handles field navigation and edits. An edit that leaves a valid
// number emits ChangedMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.active], cmd = m.inputs[m.active].Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.Inputs.Next):
		return m.move(1)
	case key.Matches(keyMsg, keys.Inputs.Prev):
		return m.move(-1)
	case key.Matches(keyMsg, keys.Inputs.Increment):
		return m.step(1)
	case key.Matches(keyMsg, keys.Inputs.Decrement):
		return m.step(-1)
	}

	if keyMsg.Type == tea.KeyRunes && !numeric(keyMsg.Runes) {
		return m, nil
	}

	before := m.inputs[m.active].Value()
	var cmd tea.Cmd
	m.inputs[m.active], cmd = m.inputs[m.active].Update(msg)
	after := m.inputs[m.active].Value()
	if after == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.changed(after))
}

func (m Model) move(delta int) (Model, tea.Cmd) {
	m.inputs[m.active].Blur()
	m.active = (m.active + delta + len(m.inputs)) % len(m.inputs)
	return m, m.inputs[m.active].Focus()
}

// step adds delta to the active field. Text that is not a number counts
// as 0.
func (m Model) step(delta int) (Model, tea.Cmd) {
	n, _ := parse(m.inputs[m.active].Value())
	value := strconv.Itoa(n + delta)
	m.inputs[m.active].SetValue(value)
	m.inputs[m.active].CursorEnd()
	return m, m.changed(value)
}

func (m Model) changed(text string) tea.Cmd {
	n, ok := parse(text)
	if !ok {
		if !isPartial(text) {
			return nil
		}
		// Clearing a field means zero.
		n = 0
	}
	field := m.Active()
	return func() tea.Msg {
		return ChangedMsg{Field: field, Value: n}
	}
}

func parse(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

// isPartial reports a cleared field.
func isPartial(s string) bool {
	return strings.TrimSpace(s) == ""
}

func numeric(rs []rune) bool {
	for _, r := range rs {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// View renders one labelled row per field.
func (m Model) View() string {
	rows := make([]string, len(m.inputs))
	for i, field := range daterange.DurationFields {
		label := styles.LabelStyle.Width(labelWidth).Render(labels[field])
		marker := "  "
		if m.focused && i == m.active {
			marker = styles.TitleStyle.Render("> ")
		}
		rows[i] = marker + label + " " + m.inputs[i].View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
