package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/datecalc/internal/location"
)

// entryModel is a row of history_entries. Times are Unix milliseconds and
// the query is stored in its URL-encoded form.
type entryModel struct {
	Seq       int64
	ID        string
	Query     string
	CreatedAt int64
	UpdatedAt int64
}

func (m *entryModel) toDomain(currentSeq int64) (location.Entry, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return location.Entry{}, fmt.Errorf("invalid entry id %q: %w", m.ID, err)
	}
	q, err := location.Parse(m.Query)
	if err != nil {
		return location.Entry{}, fmt.Errorf("invalid entry query: %w", err)
	}
	return location.Entry{
		ID:        id,
		Seq:       m.Seq,
		Query:     q,
		Current:   m.Seq == currentSeq,
		CreatedAt: time.UnixMilli(m.CreatedAt),
		UpdatedAt: time.UnixMilli(m.UpdatedAt),
	}, nil
}
