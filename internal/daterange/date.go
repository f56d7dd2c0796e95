// Package daterange implements the date-range calculator domain: calendar
// arithmetic on local calendar days, the field codecs that bind a start date,
// an end date and a duration to query parameters, and the result summary.
package daterange

import (
	"time"
)

// DayLayout is the external encoding of a calendar day.
const DayLayout = "2006-01-02"

// Years outside MinYear..MaxYear have no four-digit encoding. Arithmetic may
// still reach them, but they never format or parse.
const (
	MinYear = 1
	MaxYear = 9999
)

const secondsPerDay = 24 * 60 * 60

// Day truncates t to local midnight of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Today returns local midnight of the clock's current day.
func Today(clock Clock) time.Time {
	return Day(clock.Now())
}

// ParseDay parses a fixed-width YYYY-MM-DD date as a local calendar day.
func ParseDay(s string) (time.Time, bool) {
	if len(s) != len(DayLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DayLayout, s, time.Local)
	if err != nil || !Encodable(t) {
		return time.Time{}, false
	}
	return t, true
}

// Encodable reports whether t is a non-zero time whose year fits DayLayout.
func Encodable(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	y := t.Year()
	return y >= MinYear && y <= MaxYear
}

// FormatDay formats a day as YYYY-MM-DD. The zero time and days outside
// MinYear..MaxYear format to "", so FormatDay only writes what ParseDay reads.
func FormatDay(t time.Time) string {
	if !Encodable(t) {
		return ""
	}
	return t.Format(DayLayout)
}

// AddDays moves day by n calendar days.
func AddDays(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, time.Local)
}

// AddMonths moves day by n calendar months. When the target month is
// shorter, the result is clamped to its last day, so January 31 plus one
// month is the last day of February.
func AddMonths(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	total := int(m) - 1 + n
	ty := y + floorDiv(total, 12)
	tm := time.Month(total - floorDiv(total, 12)*12 + 1)
	if last := daysIn(ty, tm); d > last {
		d = last
	}
	return time.Date(ty, tm, d, 0, 0, 0, 0, time.Local)
}

// Add moves day forward by dur: years and months first, then weeks and days.
func Add(day time.Time, dur Duration) time.Time {
	moved := AddMonths(day, dur.Years*12+dur.Months)
	return AddDays(moved, dur.Weeks*7+dur.Days)
}

// Sub moves day backward by dur.
func Sub(day time.Time, dur Duration) time.Time {
	return Add(day, dur.Negate())
}

// DaysBetween returns the number of calendar days from start to end.
// It is negative when end is before start. Counting goes through Unix
// seconds, which unlike time.Duration do not overflow past ~292 years.
func DaysBetween(start, end time.Time) int {
	return int((utcDay(end).Unix() - utcDay(start).Unix()) / secondsPerDay)
}

// MonthsBetween returns the number of whole calendar months from start to
// end: the largest count that, added to start, does not pass end. It is
// negative when end is before start.
func MonthsBetween(start, end time.Time) int {
	sy, sm, _ := start.Date()
	ey, em, _ := end.Date()
	n := (ey-sy)*12 + int(em-sm)

	start, end = Day(start), Day(end)
	if !end.Before(start) {
		for n > 0 && AddMonths(start, n).After(end) {
			n--
		}
		return n
	}
	for n < 0 && AddMonths(start, n).Before(end) {
		n++
	}
	return n
}

// OptimizedDiff splits the distance from start to end into years, months,
// weeks and days. Whole months are taken first and the remaining calendar
// days are split into weeks and days, so Add(start, OptimizedDiff(start, end))
// always lands on end.
func OptimizedDiff(start, end time.Time) Duration {
	start, end = Day(start), Day(end)
	months := MonthsBetween(start, end)
	rest := DaysBetween(AddMonths(start, months), end)
	return Duration{
		Years:  months / 12,
		Months: months % 12,
		Weeks:  rest / 7,
		Days:   rest % 7,
	}
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
