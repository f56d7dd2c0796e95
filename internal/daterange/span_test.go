package daterange

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/datecalc/internal/querystore"
)

func TestSpanOf(t *testing.T) {
	rec := parse(querystore.Query{"start": "2024-01-01", "months": "2"})

	s := SpanOf(rec)

	require.True(t, s.HasStart)
	require.True(t, s.HasEnd)
	require.Equal(t, "2024-03-01", FormatDay(s.End))
	require.Equal(t, Duration{Months: 2}, s.Duration)

	empty := SpanOf(querystore.Record{})
	require.False(t, empty.HasStart)
	require.False(t, empty.HasEnd)
	require.True(t, empty.Duration.IsZero())
}

func TestStartPicked_KeepsDuration(t *testing.T) {
	rec := parse(querystore.Query{"start": "2024-01-01", "weeks": "2"})

	partial := StartPicked(rec, day(t, "2024-02-10"))

	require.Len(t, partial, 2)
	requireDate(t, "2024-02-10", partial[FieldStart])
	requireDate(t, "2024-02-24", partial[FieldEnd])
}

func TestEndPicked_RecomputesDuration(t *testing.T) {
	rec := parse(querystore.Query{"start": "2024-01-15"})

	partial := EndPicked(rec, day(t, "2025-03-20"))

	requireDate(t, "2024-01-15", partial[FieldStart])
	requireDate(t, "2025-03-20", partial[FieldEnd])
	require.Equal(t, 1, partial[FieldYears])
	require.Equal(t, 2, partial[FieldMonths])
	require.Equal(t, 0, partial[FieldWeeks])
	require.Equal(t, 5, partial[FieldDays])
}

func TestEndPicked_WithoutStart(t *testing.T) {
	partial := EndPicked(querystore.Record{}, day(t, "2024-04-04"))

	requireDate(t, "2024-04-04", partial[FieldStart])
	require.Equal(t, 0, partial[FieldDays])
}

func TestDurationChanged_MovesEnd(t *testing.T) {
	rec := parse(querystore.Query{"start": "2024-01-01", "weeks": "1"})

	partial, err := DurationChanged(rec, FieldMonths, 1)

	require.NoError(t, err)
	require.Equal(t, 1, partial[FieldMonths])
	requireDate(t, "2024-02-08", partial[FieldEnd])
}

func TestDurationChanged_UnknownField(t *testing.T) {
	_, err := DurationChanged(querystore.Record{}, FieldStart, 1)
	require.ErrorContains(t, err, `unknown duration field "start"`)
}

func TestDurationChanged_NoStart(t *testing.T) {
	partial, err := DurationChanged(querystore.Record{}, FieldDays, 4)

	require.NoError(t, err)
	require.Equal(t, querystore.Record{FieldDays: 4}, partial)
}
