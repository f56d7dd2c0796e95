package styles

import (
	"maps"
	"slices"
)

// Preset is a named set of token colors.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// DefaultPreset defines every token; other presets may override a subset.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Neutral dark palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextSecondary: "#BBBBBB",
		TokenTextMuted:     "#696969",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#FFFFFF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenCalendarHeader:     "#54A0FF",
		TokenCalendarSelected:   "#3498DB",
		TokenCalendarToday:      "#FECA57",
		TokenCalendarOutside:    "#4A4A4A",
		TokenCalendarWeekNumber: "#777777",
		TokenCalendarCursor:     "#FFFFFF",

		TokenToastInfo:    "#54A0FF",
		TokenToastSuccess: "#73F59F",
		TokenToastError:   "#FF8787",
	},
}

var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Soothing pastel theme (dark)",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CDD6F4", // text
		TokenTextSecondary: "#BAC2DE", // subtext1
		TokenTextMuted:     "#6C7086", // overlay0

		TokenBorderDefault: "#6C7086", // overlay0
		TokenBorderFocus:   "#CDD6F4", // text

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		TokenCalendarHeader:     "#89B4FA", // blue
		TokenCalendarSelected:   "#CBA6F7", // mauve
		TokenCalendarToday:      "#F9E2AF", // yellow
		TokenCalendarOutside:    "#45475A", // surface1
		TokenCalendarWeekNumber: "#7F849C", // overlay1
		TokenCalendarCursor:     "#CDD6F4", // text

		TokenToastInfo:    "#89B4FA", // blue
		TokenToastSuccess: "#A6E3A1", // green
		TokenToastError:   "#F38BA8", // red
	},
}

var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#F8F8F2", // foreground
		TokenTextSecondary: "#F8F8F2", // foreground
		TokenTextMuted:     "#6272A4", // comment

		TokenBorderDefault: "#6272A4", // comment
		TokenBorderFocus:   "#F8F8F2", // foreground

		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#F1FA8C", // yellow
		TokenStatusError:   "#FF5555", // red

		TokenCalendarHeader:     "#8BE9FD", // cyan
		TokenCalendarSelected:   "#BD93F9", // purple
		TokenCalendarToday:      "#FFB86C", // orange
		TokenCalendarOutside:    "#44475A", // current line
		TokenCalendarWeekNumber: "#6272A4", // comment

		TokenToastInfo: "#8BE9FD", // cyan
	},
}

var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, bluish color palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#ECEFF4", // snow storm 3
		TokenTextSecondary: "#E5E9F0", // snow storm 2
		TokenTextMuted:     "#4C566A", // polar night 4

		TokenBorderDefault: "#4C566A", // polar night 4
		TokenBorderFocus:   "#ECEFF4", // snow storm 3

		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusWarning: "#EBCB8B", // aurora yellow
		TokenStatusError:   "#BF616A", // aurora red

		TokenCalendarHeader:     "#88C0D0", // frost 2
		TokenCalendarSelected:   "#5E81AC", // frost 4
		TokenCalendarToday:      "#EBCB8B", // aurora yellow
		TokenCalendarOutside:    "#3B4252", // polar night 2
		TokenCalendarWeekNumber: "#4C566A", // polar night 4

		TokenToastInfo: "#81A1C1", // frost 3
	},
}

var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "Maximum readability",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextSecondary: "#FFFFFF",
		TokenTextMuted:     "#FFFFFF",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenCalendarHeader:     "#00FFFF",
		TokenCalendarSelected:   "#0000FF",
		TokenCalendarToday:      "#FFFF00",
		TokenCalendarOutside:    "#808080",
		TokenCalendarWeekNumber: "#FFFFFF",
		TokenCalendarCursor:     "#FFFF00",

		TokenToastInfo:    "#00FFFF",
		TokenToastSuccess: "#00FF00",
		TokenToastError:   "#FF0000",
	},
}

// Presets maps preset names to presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// PresetNames returns the registered preset names, sorted.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}
