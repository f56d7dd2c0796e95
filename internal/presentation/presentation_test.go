package presentation

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/datecalc/internal/daterange"
	"github.com/zjrosen/datecalc/internal/location"
	"github.com/zjrosen/datecalc/internal/querystore"
)

var clock = daterange.FixedClock(time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local))

func TestFromRecord(t *testing.T) {
	reg := daterange.Registry(clock)
	rec := querystore.ParseRecord(reg, querystore.Query{"start": "2024-01-01", "years": "1"})

	dto := FromRecord(reg, rec)

	require.Equal(t, "end=2025-01-01&start=2024-01-01&years=1", dto.Query)
	require.Equal(t, "2024-01-01", dto.Start)
	require.Equal(t, "2025-01-01", dto.End)
	require.Equal(t, DurationDTO{Years: 1}, dto.Duration)
	require.NotNil(t, dto.Summary.Days)
	require.Equal(t, 366, *dto.Summary.Days)
	require.Equal(t, int64(31_622_400), *dto.Summary.Seconds)
}

func TestFromRecord_NoEnd(t *testing.T) {
	reg := daterange.Registry(clock)
	rec := querystore.ParseRecord(reg, querystore.Query{})

	dto := FromRecord(reg, rec)

	require.Equal(t, "2024-06-15", dto.Start)
	require.Empty(t, dto.End)
	require.Nil(t, dto.Summary.Days)

	data, err := json.Marshal(dto)
	require.NoError(t, err)
	require.NotContains(t, string(data), `"end"`)
	require.Contains(t, string(data), `"summary":{}`)
}

func TestFormatCalc(t *testing.T) {
	reg := daterange.Registry(clock)
	rec := querystore.ParseRecord(reg, querystore.Query{"start": "2024-01-01", "weeks": "2"})
	dto := FromRecord(reg, rec)
	var buf bytes.Buffer

	err := NewFormatter(&buf).FormatCalc(dto, daterange.Summarize(daterange.SpanOf(rec).Start, daterange.SpanOf(rec).End))

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "?end=2024-01-15&start=2024-01-01&weeks=2\n")
	assert.Contains(t, out, "Duration  0y 0m 2w 0d\n")
	assert.Contains(t, out, "Days      14\n")
	assert.Contains(t, out, "Hours     336\n")
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	entries := FromEntries([]location.Entry{
		{ID: uuid.New(), Seq: 1, Query: querystore.Query{"start": "2024-01-01"}, UpdatedAt: now.Add(-3 * time.Hour)},
		{ID: uuid.New(), Seq: 2, Query: querystore.Query{"start": "2024-02-01"}, Current: true, UpdatedAt: now.Add(-30 * time.Second)},
	})
	var buf bytes.Buffer

	err := NewFormatter(&buf).WithNow(func() time.Time { return now }).FormatHistory(entries, false)

	require.NoError(t, err)
	require.Equal(t,
		"     1  3h ago   ?start=2024-01-01\n"+
			"*    2  now      ?start=2024-02-01\n",
		buf.String())
}

func TestFormatHistory_Diff(t *testing.T) {
	now := time.Now()
	entries := []HistoryEntryDTO{
		{Seq: 1, Query: "start=2024-01-01", UpdatedAt: now},
		{Seq: 2, Query: "start=2024-02-01", UpdatedAt: now},
	}
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf).FormatHistory(entries, true))

	require.Contains(t, buf.String(), "?start=2024-01-01\n")
	require.Contains(t, buf.String(), "?start=2024-0[-1-]{+2+}-01\n")
}

func TestDiffQueries_Identical(t *testing.T) {
	require.Equal(t, "days=3", DiffQueries("days=3", "days=3"))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{-time.Hour, "now"},
		{10 * time.Second, "now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{8 * 24 * time.Hour, "1w ago"},
		{90 * 24 * time.Hour, "3mo ago"},
		{400 * 24 * time.Hour, "1y ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, RelativeTime(now.Add(-tt.ago), now))
		})
	}
}
