package styles

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		width    int
		expected string
	}{
		{"fits", "Start", 10, "Start"},
		{"exact", "Start", 5, "Start"},
		{"cut", "Duration", 6, "Dur..."},
		{"tiny", "Duration", 2, ".."},
		{"zero", "Duration", 0, ""},
		{"wide runes", "日付計算機", 7, "日付..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.in, tt.width)
			require.Equal(t, tt.expected, got)
			require.LessOrEqual(t, runewidth.StringWidth(got), max(tt.width, 0))
		})
	}
}
