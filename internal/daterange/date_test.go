package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, ok := ParseDay(s)
	require.True(t, ok, "bad test date %q", s)
	return d
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2024-03-05", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"2024-3-5", false},
		{"2024-03-05T00:00:00", false},
		{" 2024-03-05", false},
		{"", false},
		{"yesterday", false},
		{"0001-01-01", true},
		{"9999-12-31", true},
		{"0000-01-01", false},
		{"10000-01-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, ok := ParseDay(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.in, FormatDay(d))
				require.Equal(t, time.Local, d.Location())
			}
		})
	}
}

func TestFormatDay_Zero(t *testing.T) {
	require.Equal(t, "", FormatDay(time.Time{}))
}

func TestFormatDay_OutOfRangeYears(t *testing.T) {
	past := Add(day(t, "9999-12-01"), Duration{Months: 1})
	require.Equal(t, 10000, past.Year())
	require.False(t, Encodable(past))
	require.Equal(t, "", FormatDay(past))

	before := Sub(day(t, "0001-01-01"), Duration{Days: 1})
	require.Equal(t, "", FormatDay(before))
}

func TestDay_TruncatesToMidnight(t *testing.T) {
	d := Day(time.Date(2024, 5, 6, 23, 59, 1, 5, time.Local))
	require.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local), d)
}

func TestToday_UsesClock(t *testing.T) {
	clock := FixedClock(time.Date(2024, 7, 4, 15, 30, 0, 0, time.Local))
	require.Equal(t, "2024-07-04", FormatDay(Today(clock)))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		start string
		n     int
		want  string
	}{
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2024-01-15", 12, "2025-01-15"},
		{"2024-01-15", -13, "2022-12-15"},
		{"2024-11-30", 3, "2025-02-28"},
		{"2024-05-10", 0, "2024-05-10"},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			require.Equal(t, tt.want, FormatDay(AddMonths(day(t, tt.start), tt.n)))
		})
	}
}

func TestAddDays_CrossesBoundaries(t *testing.T) {
	require.Equal(t, "2025-01-01", FormatDay(AddDays(day(t, "2024-12-31"), 1)))
	require.Equal(t, "2024-02-29", FormatDay(AddDays(day(t, "2024-03-01"), -1)))
	require.Equal(t, "2023-12-18", FormatDay(AddDays(day(t, "2024-01-01"), -14)))
}

func TestAddAndSub(t *testing.T) {
	require.Equal(t, "2025-01-01", FormatDay(Add(day(t, "2024-01-01"), Duration{Years: 1})))
	require.Equal(t, "2023-12-18", FormatDay(Sub(day(t, "2024-01-01"), Duration{Weeks: 2})))
	require.Equal(t, "2024-03-09", FormatDay(Add(day(t, "2024-01-31"), Duration{Months: 1, Weeks: 1, Days: 2})))
}

func TestDaysBetween(t *testing.T) {
	require.Equal(t, 366, DaysBetween(day(t, "2024-01-01"), day(t, "2025-01-01")))
	require.Equal(t, -14, DaysBetween(day(t, "2024-01-01"), day(t, "2023-12-18")))
	require.Equal(t, 0, DaysBetween(day(t, "2024-01-01"), day(t, "2024-01-01")))
	// Spans a daylight saving change in most northern zones.
	require.Equal(t, 31, DaysBetween(day(t, "2024-03-01"), day(t, "2024-04-01")))
}

func TestDaysBetween_Centuries(t *testing.T) {
	require.Equal(t, 118338, DaysBetween(day(t, "1700-01-01"), day(t, "2024-01-01")))
	require.Equal(t, -118338, DaysBetween(day(t, "2024-01-01"), day(t, "1700-01-01")))
	require.Equal(t, 3652058, DaysBetween(day(t, "0001-01-01"), day(t, "9999-12-31")))

	start := day(t, "2000-01-01")
	require.Equal(t, 3652425, DaysBetween(start, Add(start, Duration{Years: 10000})))
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2024-01-31", "2024-02-29", 1},
		{"2024-01-31", "2024-02-28", 0},
		{"2024-01-15", "2024-03-14", 1},
		{"2024-01-15", "2024-03-15", 2},
		{"2024-03-31", "2024-02-29", -1},
		{"2024-03-15", "2024-01-16", -1},
		{"2024-01-01", "2026-06-01", 29},
	}
	for _, tt := range tests {
		t.Run(tt.start+"_"+tt.end, func(t *testing.T) {
			require.Equal(t, tt.want, MonthsBetween(day(t, tt.start), day(t, tt.end)))
		})
	}
}

func TestOptimizedDiff(t *testing.T) {
	tests := []struct {
		start, end string
		want       Duration
	}{
		{"2024-01-01", "2025-01-01", Duration{Years: 1}},
		{"2024-01-15", "2024-03-20", Duration{Months: 2, Days: 5}},
		{"2024-01-01", "2024-01-23", Duration{Weeks: 3, Days: 1}},
		{"2024-01-01", "2023-12-18", Duration{Weeks: -2}},
		{"2020-02-29", "2023-03-01", Duration{Years: 3, Days: 1}},
		{"2024-05-05", "2024-05-05", Duration{}},
	}
	for _, tt := range tests {
		t.Run(tt.start+"_"+tt.end, func(t *testing.T) {
			start, end := day(t, tt.start), day(t, tt.end)
			got := OptimizedDiff(start, end)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.end, FormatDay(Add(start, got)))
		})
	}
}

func drawDay(rt *rapid.T, label string) time.Time {
	y := rapid.IntRange(1900, 2200).Draw(rt, label+"-year")
	m := time.Month(rapid.IntRange(1, 12).Draw(rt, label+"-month"))
	d := rapid.IntRange(1, daysIn(y, m)).Draw(rt, label+"-day")
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestOptimizedDiff_AddLandsOnEnd(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		start := drawDay(rt, "start")
		end := drawDay(rt, "end")

		diff := OptimizedDiff(start, end)

		require.Equal(rt, FormatDay(end), FormatDay(Add(start, diff)), "diff %s", diff)
		require.Less(rt, abs(diff.Months), 12)
		require.Less(rt, abs(diff.Weeks), 5)
		require.Less(rt, abs(diff.Days), 7)
	})
}

func TestDaysBetween_MatchesAddDays(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		start := drawDay(rt, "start")
		n := rapid.IntRange(-5000, 5000).Draw(rt, "n")

		require.Equal(rt, n, DaysBetween(start, AddDays(start, n)))
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
