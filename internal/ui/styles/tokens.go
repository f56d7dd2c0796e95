package styles

// ColorToken names a themeable color slot. Tokens are the keys accepted in
// the theme.colors section of the config file.
type ColorToken string

const (
	// Text
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Calendar grid
	TokenCalendarHeader     ColorToken = "calendar.header"
	TokenCalendarSelected   ColorToken = "calendar.selected"
	TokenCalendarToday      ColorToken = "calendar.today"
	TokenCalendarOutside    ColorToken = "calendar.outside"
	TokenCalendarWeekNumber ColorToken = "calendar.weeknum"
	TokenCalendarCursor     ColorToken = "calendar.cursor"

	// Toasts
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
)

// AllTokens returns every known token in display order.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenBorderDefault,
		TokenBorderFocus,
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,
		TokenCalendarHeader,
		TokenCalendarSelected,
		TokenCalendarToday,
		TokenCalendarOutside,
		TokenCalendarWeekNumber,
		TokenCalendarCursor,
		TokenToastInfo,
		TokenToastSuccess,
		TokenToastError,
	}
}
