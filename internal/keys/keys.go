// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// AppKeyMap holds global bindings handled by the app model.
type AppKeyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	Back      key.Binding
	Forward   key.Binding
	Yank      key.Binding
	Theme     key.Binding
	Help      key.Binding
	Logs      key.Binding
	Escape    key.Binding
	Quit      key.Binding
}

// CalendarKeyMap holds bindings for a focused month grid.
type CalendarKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Select    key.Binding
	Today     key.Binding
}

// InputKeyMap holds bindings for the duration inputs.
type InputKeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Increment key.Binding
	Decrement key.Binding
}

// App is the global keymap.
var App = AppKeyMap{
	NextFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next panel"),
	),
	PrevFocus: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous panel"),
	),
	Back: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "history back"),
	),
	Forward: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "history forward"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy location"),
	),
	Theme: key.NewBinding(
		key.WithKeys("T"),
		key.WithHelp("T", "next theme"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "debug log (with --debug)"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Calendar is the month grid keymap.
var Calendar = CalendarKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous week"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next week"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous day"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next day"),
	),
	PrevMonth: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous month"),
	),
	NextMonth: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next month"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "pick day"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "set today"),
	),
}

// Inputs is the duration field keymap.
var Inputs = InputKeyMap{
	Next: key.NewBinding(
		key.WithKeys("down", "enter"),
		key.WithHelp("↓/enter", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous field"),
	),
	Increment: key.NewBinding(
		key.WithKeys("+", "ctrl+up"),
		key.WithHelp("+", "increment"),
	),
	Decrement: key.NewBinding(
		key.WithKeys("-", "ctrl+down"),
		key.WithHelp("-", "decrement"),
	),
}

// ShortHelp returns the bindings shown in the status line.
func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Back, k.Forward, k.Yank, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k AppKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextFocus, k.PrevFocus, k.Escape},
		{k.Back, k.Forward, k.Yank, k.Theme},
		{k.Help, k.Logs, k.Quit},
	}
}

// Bindings returns every calendar binding in help order.
func (k CalendarKeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.PrevMonth, k.NextMonth, k.Select, k.Today}
}

// Bindings returns every input binding in help order.
func (k InputKeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Increment, k.Decrement}
}

// Section is a titled group of bindings for help rendering.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// HelpSections groups every binding for the help overlay.
func HelpSections() []Section {
	app := App.FullHelp()
	return []Section{
		{Title: "Panels", Bindings: app[0]},
		{Title: "Calendar", Bindings: Calendar.Bindings()},
		{Title: "Duration", Bindings: Inputs.Bindings()},
		{Title: "History", Bindings: app[1]},
		{Title: "General", Bindings: app[2]},
	}
}
