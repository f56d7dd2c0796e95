package styles

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateString shortens s to at most maxWidth terminal cells, ending in
// "..." when anything was cut.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
