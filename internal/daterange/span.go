package daterange

import (
	"fmt"
	"time"

	"github.com/zjrosen/datecalc/internal/querystore"
)

// Span is a typed view of a calculator record.
type Span struct {
	Start    time.Time
	End      time.Time
	HasStart bool
	HasEnd   bool
	Duration Duration
}

// SpanOf reads a record into a Span.
func SpanOf(rec querystore.Record) Span {
	s := Span{Duration: DurationOf(rec)}
	s.Start, s.HasStart = rec[FieldStart].(time.Time)
	s.End, s.HasEnd = rec[FieldEnd].(time.Time)
	return s
}

// StartPicked is the update for choosing a new start day: the end moves so
// the duration is kept.
func StartPicked(rec querystore.Record, day time.Time) querystore.Record {
	day = Day(day)
	return querystore.Record{
		FieldStart: day,
		FieldEnd:   Add(day, SpanOf(rec).Duration),
	}
}

// EndPicked is the update for choosing a new end day: the duration is
// recomputed from the current start. Without a start the picked day becomes
// both ends.
func EndPicked(rec querystore.Record, day time.Time) querystore.Record {
	day = Day(day)
	start := day
	if s := SpanOf(rec); s.HasStart {
		start = s.Start
	}
	d := OptimizedDiff(start, day)
	return querystore.Record{
		FieldStart:  start,
		FieldEnd:    day,
		FieldYears:  d.Years,
		FieldMonths: d.Months,
		FieldWeeks:  d.Weeks,
		FieldDays:   d.Days,
	}
}

// DurationChanged is the update for editing one duration component: the end
// moves to start plus the new duration.
func DurationChanged(rec querystore.Record, field string, n int) (querystore.Record, error) {
	s := SpanOf(rec)
	d, err := s.Duration.With(field, n)
	if err != nil {
		return nil, fmt.Errorf("duration changed: %w", err)
	}
	out := querystore.Record{field: n}
	if s.HasStart {
		out[FieldEnd] = Add(s.Start, d)
	}
	return out, nil
}
