// Package presentation shapes calculator results and history entries for
// CLI output.
package presentation

import (
	"time"

	"github.com/zjrosen/datecalc/internal/daterange"
	"github.com/zjrosen/datecalc/internal/location"
	"github.com/zjrosen/datecalc/internal/querystore"
)

// DurationDTO is the duration of a span.
type DurationDTO struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Weeks  int `json:"weeks"`
	Days   int `json:"days"`
}

// SummaryDTO is the result panel. Counts are omitted when there is no end.
type SummaryDTO struct {
	Days    *int   `json:"days,omitempty"`
	Weeks   *int   `json:"weeks,omitempty"`
	Months  *int   `json:"months,omitempty"`
	Years   *int   `json:"years,omitempty"`
	Hours   *int64 `json:"hours,omitempty"`
	Minutes *int64 `json:"minutes,omitempty"`
	Seconds *int64 `json:"seconds,omitempty"`
}

// CalcDTO is the outcome of one calculation.
type CalcDTO struct {
	// Query is the canonical location string, without the leading '?'.
	Query    string      `json:"query"`
	Start    string      `json:"start"`
	End      string      `json:"end,omitempty"`
	Duration DurationDTO `json:"duration"`
	Summary  SummaryDTO  `json:"summary"`
}

// FromRecord converts a parsed record to a CalcDTO.
func FromRecord(reg querystore.Registry, rec querystore.Record) CalcDTO {
	span := daterange.SpanOf(rec)
	dto := CalcDTO{
		Query: location.Format(querystore.SerializeRecord(reg, rec)),
		Duration: DurationDTO{
			Years:  span.Duration.Years,
			Months: span.Duration.Months,
			Weeks:  span.Duration.Weeks,
			Days:   span.Duration.Days,
		},
	}
	if span.HasStart {
		dto.Start = daterange.FormatDay(span.Start)
	}
	if span.HasEnd {
		dto.End = daterange.FormatDay(span.End)
	}
	if span.HasStart && span.HasEnd {
		dto.Summary = FromSummary(daterange.Summarize(span.Start, span.End))
	}
	return dto
}

// FromSummary converts a summary. An invalid summary yields an empty DTO.
func FromSummary(s daterange.Summary) SummaryDTO {
	if !s.Valid {
		return SummaryDTO{}
	}
	return SummaryDTO{
		Days:    &s.Days,
		Weeks:   &s.Weeks,
		Months:  &s.Months,
		Years:   &s.Years,
		Hours:   &s.Hours,
		Minutes: &s.Minutes,
		Seconds: &s.Seconds,
	}
}

// HistoryEntryDTO is one history entry.
type HistoryEntryDTO struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	Query     string    `json:"query"`
	Current   bool      `json:"current"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromEntries converts history entries, keeping their order.
func FromEntries(entries []location.Entry) []HistoryEntryDTO {
	dtos := make([]HistoryEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = HistoryEntryDTO{
			ID:        e.ID.String(),
			Seq:       e.Seq,
			Query:     location.Format(e.Query),
			Current:   e.Current,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		}
	}
	return dtos
}
