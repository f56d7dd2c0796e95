package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/datecalc/internal/daterange"
)

// Formatter writes CLI output.
type Formatter struct {
	writer io.Writer
	now    func() time.Time
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
		now:    time.Now,
	}
}

// WithNow sets the reference time for relative timestamps.
func (f *Formatter) WithNow(now func() time.Time) *Formatter {
	f.now = now
	return f
}

// JSON writes v as indented JSON.
func (f *Formatter) JSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatCalc writes the canonical query followed by the result rows.
func (f *Formatter) FormatCalc(calc CalcDTO, summary daterange.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "?%s\n\n", calc.Query)
	fmt.Fprintf(&b, "%-9s %s\n", "Duration",
		fmt.Sprintf("%dy %dm %dw %dd", calc.Duration.Years, calc.Duration.Months, calc.Duration.Weeks, calc.Duration.Days))
	for _, row := range summary.Rows() {
		value := row[1]
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "%-9s %s\n", row[0], value)
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatHistory writes one line per entry, oldest first. The current entry
// is marked with '*'. With diff set, each entry after the first shows the
// character diff from the previous query as [-removed-]{+added+}.
func (f *Formatter) FormatHistory(entries []HistoryEntryDTO, diff bool) error {
	var b strings.Builder
	now := f.now()
	for i, e := range entries {
		marker := " "
		if e.Current {
			marker = "*"
		}
		query := "?" + e.Query
		if diff && i > 0 {
			query = "?" + DiffQueries(entries[i-1].Query, e.Query)
		}
		fmt.Fprintf(&b, "%s %4d  %-8s %s\n", marker, e.Seq, RelativeTime(e.UpdatedAt, now), query)
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// DiffQueries renders the character diff from a to b.
func DiffQueries(a, b string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(a, b, false))

	var out strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			out.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			out.WriteString("{+" + d.Text + "+}")
		default:
			out.WriteString(d.Text)
		}
	}
	return out.String()
}

// RelativeTime formats t relative to now: "now", "5m ago", "3h ago",
// "2d ago", "1w ago", "3mo ago", "1y ago".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}
