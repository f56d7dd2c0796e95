// Package calendar provides a month grid day picker.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/datecalc/internal/daterange"
	"github.com/zjrosen/datecalc/internal/keys"
	"github.com/zjrosen/datecalc/internal/ui/styles"
)

// Rows is the number of weeks drawn for every month.
const Rows = 6

// cellWidth is the width of one day column including its separator.
const cellWidth = 3

// Config controls how the grid is drawn.
type Config struct {
	FirstDayOfWeek  time.Weekday
	ShowWeekNumbers bool
	ShowOutsideDays bool
}

// DefaultConfig starts weeks on Monday and shows week numbers and outside
// days.
func DefaultConfig() Config {
	return Config{
		FirstDayOfWeek:  time.Monday,
		ShowWeekNumbers: true,
		ShowOutsideDays: true,
	}
}

// SelectedMsg reports a picked day.
type SelectedMsg struct {
	ID  string
	Day time.Time
}

// Model is a month grid with a keyboard cursor and an optional selection.
type Model struct {
	id       string
	cfg      Config
	clock    daterange.Clock
	month    time.Time // first day of the shown month
	cursor   time.Time
	selected time.Time // zero when nothing is selected
	focused  bool
}

// New creates a grid showing the current month. id prefixes the click zones
// and is echoed in SelectedMsg.
func New(id string, cfg Config, clock daterange.Clock) Model {
	if clock == nil {
		clock = daterange.RealClock{}
	}
	today := daterange.Today(clock)
	return Model{
		id:     id,
		cfg:    cfg,
		clock:  clock,
		month:  firstOfMonth(today),
		cursor: today,
	}
}

// ID returns the identifier given to New.
func (m Model) ID() string { return m.id }

// Month returns the first day of the shown month.
func (m Model) Month() time.Time { return m.month }

// Cursor returns the day under the keyboard cursor.
func (m Model) Cursor() time.Time { return m.cursor }

// Selected returns the selected day, or the zero time.
func (m Model) Selected() time.Time { return m.selected }

// Focused reports whether the grid receives keys.
func (m Model) Focused() bool { return m.focused }

// Focus gives the grid keyboard focus.
func (m Model) Focus() Model {
	m.focused = true
	return m
}

// Blur removes keyboard focus.
func (m Model) Blur() Model {
	m.focused = false
	return m
}

// SetSelected marks day as selected and shows its month. The zero time
// clears the selection and leaves the month alone.
func (m Model) SetSelected(day time.Time) Model {
	if day.IsZero() {
		m.selected = time.Time{}
		return m
	}
	day = daterange.Day(day)
	m.selected = day
	m.cursor = day
	m.month = firstOfMonth(day)
	return m
}

// Update handles navigation keys while focused and clicks on day cells.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Calendar.Left):
		m = m.moveCursor(daterange.AddDays(m.cursor, -1))
	case key.Matches(msg, keys.Calendar.Right):
		m = m.moveCursor(daterange.AddDays(m.cursor, 1))
	case key.Matches(msg, keys.Calendar.Up):
		m = m.moveCursor(daterange.AddDays(m.cursor, -7))
	case key.Matches(msg, keys.Calendar.Down):
		m = m.moveCursor(daterange.AddDays(m.cursor, 7))
	case key.Matches(msg, keys.Calendar.PrevMonth):
		m = m.moveCursor(daterange.AddMonths(m.cursor, -1))
	case key.Matches(msg, keys.Calendar.NextMonth):
		m = m.moveCursor(daterange.AddMonths(m.cursor, 1))
	case key.Matches(msg, keys.Calendar.Select):
		return m, m.pick(m.cursor)
	case key.Matches(msg, keys.Calendar.Today):
		today := daterange.Today(m.clock)
		m = m.moveCursor(today)
		return m, m.pick(today)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	if z := zone.Get(m.zoneID("prev")); z != nil && z.InBounds(msg) {
		m.month = daterange.AddMonths(m.month, -1)
		return m, nil
	}
	if z := zone.Get(m.zoneID("next")); z != nil && z.InBounds(msg) {
		m.month = daterange.AddMonths(m.month, 1)
		return m, nil
	}
	if z := zone.Get(m.zoneID("today")); z != nil && z.InBounds(msg) {
		today := daterange.Today(m.clock)
		m = m.moveCursor(today)
		return m, m.pick(today)
	}
	for _, week := range Weeks(m.month, m.cfg.FirstDayOfWeek) {
		for _, day := range week {
			if !m.cfg.ShowOutsideDays && day.Month() != m.month.Month() {
				continue
			}
			if z := zone.Get(m.dayZoneID(day)); z != nil && z.InBounds(msg) {
				m.cursor = day
				return m, m.pick(day)
			}
		}
	}
	return m, nil
}

// moveCursor moves the cursor and follows it into its month.
func (m Model) moveCursor(day time.Time) Model {
	m.cursor = day
	m.month = firstOfMonth(day)
	return m
}

func (m Model) pick(day time.Time) tea.Cmd {
	id := m.id
	return func() tea.Msg {
		return SelectedMsg{ID: id, Day: day}
	}
}

func (m Model) zoneID(part string) string {
	return m.id + ":" + part
}

func (m Model) dayZoneID(day time.Time) string {
	return m.zoneID(day.Format(daterange.DayLayout))
}

// Width returns the rendered width of the grid.
func (m Model) Width() int {
	w := 7 * cellWidth
	if m.cfg.ShowWeekNumbers {
		w += cellWidth
	}
	return w - 1
}

// View renders the header, weekday names, and six weeks.
func (m Model) View() string {
	today := daterange.Today(m.clock)
	lines := make([]string, 0, Rows+3)

	lines = append(lines, m.header())
	lines = append(lines, m.weekdayRow())
	for _, week := range Weeks(m.month, m.cfg.FirstDayOfWeek) {
		lines = append(lines, m.weekRow(week, today))
	}
	lines = append(lines, m.footer())
	return strings.Join(lines, "\n")
}

func (m Model) header() string {
	prev := zone.Mark(m.zoneID("prev"), "‹")
	next := zone.Mark(m.zoneID("next"), "›")
	label := styles.CalendarHeaderStyle.Render(m.month.Format("January 2006"))
	gap := max(m.Width()-lipgloss.Width(label)-4, 0)
	return prev + " " + label + strings.Repeat(" ", gap) + " " + next
}

func (m Model) weekdayRow() string {
	cells := make([]string, 0, 8)
	if m.cfg.ShowWeekNumbers {
		cells = append(cells, styles.CalendarWeekNumberStyle.Render("Wk"))
	}
	for i := range 7 {
		d := time.Weekday((int(m.cfg.FirstDayOfWeek) + i) % 7)
		cells = append(cells, styles.MutedStyle.Render(d.String()[:2]))
	}
	return strings.Join(cells, " ")
}

func (m Model) weekRow(week [7]time.Time, today time.Time) string {
	cells := make([]string, 0, 8)
	if m.cfg.ShowWeekNumbers {
		cells = append(cells, styles.CalendarWeekNumberStyle.Render(fmt.Sprintf("%2d", WeekNumber(week))))
	}
	for _, day := range week {
		cells = append(cells, m.dayCell(day, today))
	}
	return strings.Join(cells, " ")
}

func (m Model) dayCell(day, today time.Time) string {
	outside := day.Month() != m.month.Month()
	if outside && !m.cfg.ShowOutsideDays {
		return "  "
	}

	text := fmt.Sprintf("%2d", day.Day())
	style := styles.CalendarDayStyle
	switch {
	case !m.selected.IsZero() && day.Equal(m.selected):
		style = styles.CalendarSelectedStyle
	case outside:
		style = styles.CalendarOutsideStyle
	case day.Equal(today):
		style = styles.CalendarTodayStyle
	}
	if m.focused && day.Equal(m.cursor) {
		style = style.Inherit(styles.CalendarCursorStyle).Underline(true)
	}
	return zone.Mark(m.dayZoneID(day), style.Render(text))
}

func (m Model) footer() string {
	label := "Set Today"
	if m.focused {
		label = "t Set Today"
	}
	return zone.Mark(m.zoneID("today"), styles.MutedStyle.Render(label))
}

// Weeks returns the six weeks drawn for month, each starting on firstDay.
func Weeks(month time.Time, firstDay time.Weekday) [Rows][7]time.Time {
	first := firstOfMonth(month)
	offset := (int(first.Weekday()) - int(firstDay) + 7) % 7
	day := daterange.AddDays(first, -offset)

	var weeks [Rows][7]time.Time
	for w := range Rows {
		for d := range 7 {
			weeks[w][d] = day
			day = daterange.AddDays(day, 1)
		}
	}
	return weeks
}

// WeekNumber returns the ISO week of the row, taken from its Thursday.
func WeekNumber(week [7]time.Time) int {
	for _, day := range week {
		if day.Weekday() == time.Thursday {
			_, wk := day.ISOWeek()
			return wk
		}
	}
	_, wk := week[0].ISOWeek()
	return wk
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}
