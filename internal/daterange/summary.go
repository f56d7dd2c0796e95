package daterange

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zjrosen/datecalc/internal/cachemanager"
)

// Summary is the result panel for a span. Counts are whole units from start
// to end and are negative when end is before start.
type Summary struct {
	Valid   bool
	Start   time.Time
	End     time.Time
	Days    int
	Weeks   int
	Months  int
	Years   int
	Hours   int64
	Minutes int64
	Seconds int64
}

// Summarize computes the summary of start to end. A zero end (no end date)
// gives an invalid summary.
func Summarize(start, end time.Time) Summary {
	if start.IsZero() || end.IsZero() {
		return Summary{Start: start, End: end}
	}
	start, end = Day(start), Day(end)
	days := DaysBetween(start, end)
	months := MonthsBetween(start, end)
	elapsed := end.Unix() - start.Unix()
	return Summary{
		Valid:   true,
		Start:   start,
		End:     end,
		Days:    days,
		Weeks:   days / 7,
		Months:  months,
		Years:   months / 12,
		Hours:   elapsed / 3600,
		Minutes: elapsed / 60,
		Seconds: elapsed,
	}
}

var printer = message.NewPrinter(language.English)

// FormatNumber formats n with thousands separators, e.g. 1,234,567.
func FormatNumber[N ~int | ~int64](n N) string {
	return printer.Sprintf("%d", n)
}

// Rows returns the labelled, formatted values of s in display order.
// Counts of an invalid summary render as "".
func (s Summary) Rows() [][2]string {
	num := func(n int64) string {
		if !s.Valid {
			return ""
		}
		return FormatNumber(n)
	}
	return [][2]string{
		{"Start", FormatDay(s.Start)},
		{"End", FormatDay(s.End)},
		{"Days", num(int64(s.Days))},
		{"Weeks", num(int64(s.Weeks))},
		{"Months", num(int64(s.Months))},
		{"Years", num(int64(s.Years))},
		{"Hours", num(s.Hours)},
		{"Minutes", num(s.Minutes)},
		{"Seconds", num(s.Seconds)},
	}
}

// Summarizer memoizes summaries by span.
type Summarizer struct {
	cache *cachemanager.ReadThroughCache[string, Summary, [2]time.Time]
}

// NewSummarizer creates a Summarizer storing results in cache for ttl.
func NewSummarizer(cache cachemanager.CacheManager[string, Summary], ttl time.Duration) *Summarizer {
	load := func(_ context.Context, span [2]time.Time) (Summary, error) {
		return Summarize(span[0], span[1]), nil
	}
	return &Summarizer{
		cache: cachemanager.NewReadThroughCache[string, Summary, [2]time.Time](cache, load, ttl, false),
	}
}

// Summarize returns the summary of start to end.
func (s *Summarizer) Summarize(ctx context.Context, start, end time.Time) Summary {
	key := spanKey(start) + "|" + spanKey(end)
	sum, _ := s.cache.Get(ctx, key, [2]time.Time{start, end})
	return sum
}

func spanKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(Day(t).Unix(), 10)
}

// SummarizeSpan returns the summary of span. A span without an end gives an
// invalid summary.
func (s *Summarizer) SummarizeSpan(ctx context.Context, span Span) Summary {
	return s.Summarize(ctx, span.Start, span.End)
}
