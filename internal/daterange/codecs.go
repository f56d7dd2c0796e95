package daterange

import (
	"strconv"
	"strings"
	"time"

	"github.com/zjrosen/datecalc/internal/querystore"
)

// Field names. They double as the query parameter keys.
const (
	FieldStart  = "start"
	FieldEnd    = "end"
	FieldYears  = "years"
	FieldMonths = "months"
	FieldWeeks  = "weeks"
	FieldDays   = "days"
)

// DurationFields lists the duration components in display order.
var DurationFields = []string{FieldYears, FieldMonths, FieldWeeks, FieldDays}

// Fields lists every field in display order.
var Fields = []string{FieldStart, FieldEnd, FieldYears, FieldMonths, FieldWeeks, FieldDays}

// Registry returns the codecs for the calculator record. clock supplies
// "today" when no date can be derived.
//
// Defaults only see values parsed from the query itself:
//   - start is end minus the supplied duration, or today without an end
//   - end is start plus the supplied duration, or absent without a start
//   - each duration field is the distance between start and end when both
//     are supplied, or 0
//
// With a duration but neither date, start becomes today, end stays absent and
// the supplied duration is kept.
func Registry(clock Clock) querystore.Registry {
	if clock == nil {
		clock = RealClock{}
	}
	number := querystore.Codec{
		Parse:     ParseNumber,
		Serialize: SerializeNumber,
		Default:   durationDefault,
	}
	return querystore.Registry{
		FieldStart: {
			Parse:     parseDate,
			Serialize: SerializeDate,
			Default: func(_ string, _ any, parsed querystore.Record) any {
				if end, ok := parsed[FieldEnd].(time.Time); ok {
					return Sub(end, DurationOf(parsed))
				}
				return Today(clock)
			},
		},
		FieldEnd: {
			Parse:     parseDate,
			Serialize: SerializeDate,
			Default: func(_ string, v any, parsed querystore.Record) any {
				if start, ok := parsed[FieldStart].(time.Time); ok {
					return Add(start, DurationOf(parsed))
				}
				return v
			},
		},
		FieldYears:  number,
		FieldMonths: number,
		FieldWeeks:  number,
		FieldDays:   number,
	}
}

func parseDate(raw string, present bool) any {
	if !present {
		return nil
	}
	day, ok := ParseDay(raw)
	if !ok {
		return nil
	}
	return day
}

// SerializeDate writes a time.Time as YYYY-MM-DD. Anything else, including
// the zero time, is omitted.
func SerializeDate(v any) string {
	t, ok := v.(time.Time)
	if !ok {
		return ""
	}
	return FormatDay(t)
}

// ParseNumber parses a base-10 integer, ignoring surrounding spaces.
// Missing and non-numeric values parse to nil.
func ParseNumber(raw string, present bool) any {
	if !present {
		return nil
	}
	// Strict on purpose: "12abc" and "1.5" are absent, not 12 and 1.
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return n
}

// SerializeNumber writes non-zero ints in base 10. Zero and non-ints are
// omitted.
func SerializeNumber(v any) string {
	n, ok := v.(int)
	if !ok || n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func durationDefault(field string, _ any, parsed querystore.Record) any {
	start, okStart := parsed[FieldStart].(time.Time)
	end, okEnd := parsed[FieldEnd].(time.Time)
	if !okStart || !okEnd {
		return 0
	}
	n, _ := OptimizedDiff(start, end).Field(field)
	return n
}

// DurationOf reads the duration fields of rec. Absent or non-int fields
// count as 0.
func DurationOf(rec querystore.Record) Duration {
	get := func(field string) int {
		n, _ := rec[field].(int)
		return n
	}
	return Duration{
		Years:  get(FieldYears),
		Months: get(FieldMonths),
		Weeks:  get(FieldWeeks),
		Days:   get(FieldDays),
	}
}
