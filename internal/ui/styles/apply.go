package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme modes accepted by ApplyTheme. An empty mode keeps terminal detection.
const (
	ModeDark  = "dark"
	ModeLight = "light"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
// Packages that import styles register here since styles cannot import them.
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback run after ApplyTheme updates colors.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

// ApplyTheme starts from the default colors, layers the preset on top, then
// the individual overrides, and finally rebuilds every style.
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != DefaultPreset.Name {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	switch strings.ToLower(cfg.Mode) {
	case "":
	case ModeDark:
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		lipgloss.SetHasDarkBackground(false)
	default:
		return fmt.Errorf("invalid theme mode: %s (must be dark or light)", cfg.Mode)
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

func colorSlots() map[ColorToken]*lipgloss.AdaptiveColor {
	return map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:        &TextPrimaryColor,
		TokenTextSecondary:      &TextSecondaryColor,
		TokenTextMuted:          &TextMutedColor,
		TokenBorderDefault:      &BorderDefaultColor,
		TokenBorderFocus:        &BorderFocusColor,
		TokenStatusSuccess:      &StatusSuccessColor,
		TokenStatusWarning:      &StatusWarningColor,
		TokenStatusError:        &StatusErrorColor,
		TokenCalendarHeader:     &CalendarHeaderColor,
		TokenCalendarSelected:   &CalendarSelectedColor,
		TokenCalendarToday:      &CalendarTodayColor,
		TokenCalendarOutside:    &CalendarOutsideColor,
		TokenCalendarWeekNumber: &CalendarWeekNumberColor,
		TokenCalendarCursor:     &CalendarCursorColor,
		TokenToastInfo:          &ToastInfoColor,
		TokenToastSuccess:       &ToastSuccessColor,
		TokenToastError:         &ToastErrorColor,
	}
}

func applyColors(colors map[ColorToken]string) {
	slots := colorSlots()
	for token, hex := range colors {
		if slot, ok := slots[token]; ok {
			// Themes use one color for both backgrounds.
			*slot = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
}

func rebuildStyles() {
	buildStyles()
	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

// isValidHexColor accepts #RGB and #RRGGBB.
func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}
