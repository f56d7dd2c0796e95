package location

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/datecalc/internal/querystore"
)

// ErrNoEntries is returned when the history has no entries yet.
var ErrNoEntries = errors.New("history has no entries")

// Entry is one history entry.
type Entry struct {
	ID        uuid.UUID
	Seq       int64
	Query     querystore.Query
	Current   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HistoryRepository stores a linear navigation history with a cursor, the way
// a browser history does. Pushing truncates every entry after the cursor.
type HistoryRepository interface {
	// Current returns the entry under the cursor, or ErrNoEntries.
	Current(ctx context.Context) (Entry, error)
	// Push appends q after the cursor, dropping forward entries, and moves
	// the cursor to it.
	Push(ctx context.Context, q querystore.Query) (Entry, error)
	// ReplaceCurrent rewrites the entry under the cursor. On an empty
	// history it creates the first entry.
	ReplaceCurrent(ctx context.Context, q querystore.Query) (Entry, error)
	// Move shifts the cursor by delta entries. moved is false when the
	// cursor is already at the boundary in that direction.
	Move(ctx context.Context, delta int) (entry Entry, moved bool, err error)
	// List returns the newest limit entries, oldest first. limit <= 0
	// means all.
	List(ctx context.Context, limit int) ([]Entry, error)
}

// MemoryHistory is a HistoryRepository kept in memory.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []Entry
	cursor  int
	nextSeq int64
	now     func() time.Time
}

// NewMemoryHistory creates an empty in-memory history.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{cursor: -1, nextSeq: 1, now: time.Now}
}

// Current implements HistoryRepository.
func (h *MemoryHistory) Current(_ context.Context) (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor < 0 {
		return Entry{}, ErrNoEntries
	}
	return h.entryAt(h.cursor), nil
}

// Push implements HistoryRepository.
func (h *MemoryHistory) Push(_ context.Context, q querystore.Query) (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.now()
	h.entries = append(h.entries[:h.cursor+1], Entry{
		ID:        uuid.New(),
		Seq:       h.nextSeq,
		Query:     q.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	})
	h.nextSeq++
	h.cursor = len(h.entries) - 1
	return h.entryAt(h.cursor), nil
}

// ReplaceCurrent implements HistoryRepository.
func (h *MemoryHistory) ReplaceCurrent(ctx context.Context, q querystore.Query) (Entry, error) {
	h.mu.Lock()
	if h.cursor < 0 {
		h.mu.Unlock()
		return h.Push(ctx, q)
	}
	defer h.mu.Unlock()
	h.entries[h.cursor].Query = q.Clone()
	h.entries[h.cursor].UpdatedAt = h.now()
	return h.entryAt(h.cursor), nil
}

// Move implements HistoryRepository.
func (h *MemoryHistory) Move(_ context.Context, delta int) (Entry, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor < 0 {
		return Entry{}, false, ErrNoEntries
	}
	target := min(max(h.cursor+delta, 0), len(h.entries)-1)
	moved := target != h.cursor
	h.cursor = target
	return h.entryAt(h.cursor), moved, nil
}

// List implements HistoryRepository.
func (h *MemoryHistory) List(_ context.Context, limit int) ([]Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	from := 0
	if limit > 0 && limit < len(h.entries) {
		from = len(h.entries) - limit
	}
	out := make([]Entry, 0, len(h.entries)-from)
	for i := from; i < len(h.entries); i++ {
		out = append(out, h.entryAt(i))
	}
	return out, nil
}

func (h *MemoryHistory) entryAt(i int) Entry {
	e := h.entries[i]
	e.Query = e.Query.Clone()
	e.Current = i == h.cursor
	return e
}

var _ HistoryRepository = (*MemoryHistory)(nil)
