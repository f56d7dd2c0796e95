package location

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/datecalc/internal/querystore"
)

func TestFormat(t *testing.T) {
	require.Equal(t, "", Format(nil))
	require.Equal(t, "", Format(querystore.Query{}))
	require.Equal(t, "end=2024-01-01&weeks=2", Format(querystore.Query{"weeks": "2", "end": "2024-01-01"}))
	require.Equal(t, "note=a+b%26c", Format(querystore.Query{"note": "a b&c"}))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want querystore.Query
	}{
		{"empty", "", querystore.Query{}},
		{"question mark", "?start=2024-01-01", querystore.Query{"start": "2024-01-01"}},
		{"spaces", "  years=1&months=2 ", querystore.Query{"years": "1", "months": "2"}},
		{"first value wins", "days=1&days=2", querystore.Query{"days": "1"}},
		{"escaped", "note=a+b%26c", querystore.Query{"note": "a b&c"}},
		{"empty value", "days=", querystore.Query{"days": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("start=%zz")
	require.Error(t, err)
}

func TestFormatParse_RoundTrip(t *testing.T) {
	gen := rapid.MapOf(rapid.StringMatching(`[a-z]{1,6}`), rapid.String())
	rapid.Check(t, func(rt *rapid.T) {
		q := querystore.Query(gen.Draw(rt, "query"))

		got, err := Parse(Format(q))

		require.NoError(rt, err)
		require.True(rt, querystore.EqualShallow(q, got), "%v != %v", q, got)
	})
}
