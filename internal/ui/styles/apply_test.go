package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func resetTheme(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		require.NoError(t, ApplyTheme(ThemeConfig{}))
	})
}

func TestApplyTheme_Default(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
	require.Equal(t, DefaultPreset.Colors[TokenCalendarSelected], CalendarSelectedColor.Dark)
}

func TestApplyTheme_Preset(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "nord"}))
	require.Equal(t, NordPreset.Colors[TokenCalendarHeader], CalendarHeaderColor.Dark)
	require.Equal(t, NordPreset.Colors[TokenCalendarHeader], CalendarHeaderColor.Light)
}

func TestApplyTheme_PresetFallsBackToDefault(t *testing.T) {
	resetTheme(t)
	// dracula has no cursor color of its own
	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "dracula"}))
	require.Equal(t, DefaultPreset.Colors[TokenCalendarCursor], CalendarCursorColor.Dark)
}

func TestApplyTheme_ColorOverride(t *testing.T) {
	resetTheme(t)
	err := ApplyTheme(ThemeConfig{
		Preset: "catppuccin-mocha",
		Colors: map[string]string{
			"calendar.today": "#00FF00",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "#00FF00", CalendarTodayColor.Dark)
	require.Equal(t, CatppuccinMochaPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
}

func TestApplyTheme_Errors(t *testing.T) {
	resetTheme(t)
	tests := []struct {
		name string
		cfg  ThemeConfig
		msg  string
	}{
		{"unknown preset", ThemeConfig{Preset: "solarized"}, "unknown theme preset"},
		{"unknown token", ThemeConfig{Colors: map[string]string{"issue.open": "#FFFFFF"}}, "unknown color token"},
		{"bad hex", ThemeConfig{Colors: map[string]string{"text.primary": "red"}}, "invalid hex color"},
		{"bad mode", ThemeConfig{Mode: "sepia"}, "invalid theme mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ApplyTheme(tt.cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestApplyTheme_Mode(t *testing.T) {
	resetTheme(t)
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(true) })

	require.NoError(t, ApplyTheme(ThemeConfig{Mode: "light"}))
	require.False(t, lipgloss.HasDarkBackground())

	require.NoError(t, ApplyTheme(ThemeConfig{Mode: "DARK"}))
	require.True(t, lipgloss.HasDarkBackground())
}

func TestApplyTheme_RunsRebuilders(t *testing.T) {
	resetTheme(t)
	calls := 0
	saved := styleRebuilders
	t.Cleanup(func() { styleRebuilders = saved })

	RegisterStyleRebuilder(func() { calls++ })
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, 1, calls)
}

func TestIsValidHexColor(t *testing.T) {
	valid := []string{"#FFF", "#fff", "#A1B2C3", "#000000"}
	invalid := []string{"", "FFF", "#FF", "#FFFF", "#GGGGGG", "#1234567"}
	for _, s := range valid {
		require.True(t, isValidHexColor(s), s)
	}
	for _, s := range invalid {
		require.False(t, isValidHexColor(s), s)
	}
}
