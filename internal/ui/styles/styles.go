// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused panels
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	CalendarHeaderColor     = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}
	CalendarSelectedColor   = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#3498DB"}
	CalendarTodayColor      = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"}
	CalendarOutsideColor    = lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#4A4A4A"}
	CalendarWeekNumberColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#777777"}
	CalendarCursorColor     = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	ToastInfoColor    = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}
	ToastSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
)

// Styles derived from the colors above. They are rebuilt by ApplyTheme.
var (
	TitleStyle lipgloss.Style
	LabelStyle lipgloss.Style
	ValueStyle lipgloss.Style
	MutedStyle lipgloss.Style
	ErrorStyle lipgloss.Style

	CalendarHeaderStyle     lipgloss.Style
	CalendarDayStyle        lipgloss.Style
	CalendarSelectedStyle   lipgloss.Style
	CalendarTodayStyle      lipgloss.Style
	CalendarOutsideStyle    lipgloss.Style
	CalendarWeekNumberStyle lipgloss.Style
	CalendarCursorStyle     lipgloss.Style
)

func init() {
	buildStyles()
}

func buildStyles() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	LabelStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	ValueStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)

	CalendarHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(CalendarHeaderColor)
	CalendarDayStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	CalendarSelectedStyle = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(CalendarSelectedColor)
	CalendarTodayStyle = lipgloss.NewStyle().Bold(true).Foreground(CalendarTodayColor)
	CalendarOutsideStyle = lipgloss.NewStyle().Foreground(CalendarOutsideColor)
	CalendarWeekNumberStyle = lipgloss.NewStyle().Foreground(CalendarWeekNumberColor)
	CalendarCursorStyle = lipgloss.NewStyle().Underline(true).Foreground(CalendarCursorColor)
}
