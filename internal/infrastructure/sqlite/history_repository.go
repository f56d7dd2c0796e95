package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/datecalc/internal/location"
	"github.com/zjrosen/datecalc/internal/querystore"
)

const entryColumns = `seq, id, query, created_at, updated_at`

// historyRepository implements location.HistoryRepository using SQLite.
// The cursor is a single row in history_cursor pointing at an entry seq.
type historyRepository struct {
	db  *sql.DB
	now func() time.Time
}

func newHistoryRepository(db *sql.DB) *historyRepository {
	return &historyRepository{db: db, now: time.Now}
}

var _ location.HistoryRepository = (*historyRepository)(nil)

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanEntry(scanner interface{ Scan(...any) error }) (*entryModel, error) {
	var m entryModel
	err := scanner.Scan(&m.Seq, &m.ID, &m.Query, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

// cursorSeq returns the seq under the cursor, or location.ErrNoEntries.
func cursorSeq(ctx context.Context, q querier) (int64, error) {
	var seq int64
	err := q.QueryRowContext(ctx, `SELECT seq FROM history_cursor WHERE singleton = 1`).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, location.ErrNoEntries
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cursor: %w", err)
	}
	return seq, nil
}

func entryBySeq(ctx context.Context, q querier, seq int64) (location.Entry, error) {
	row := q.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM history_entries WHERE seq = ?`, seq)
	m, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return location.Entry{}, location.ErrNoEntries
	}
	if err != nil {
		return location.Entry{}, fmt.Errorf("failed to read entry: %w", err)
	}
	return m.toDomain(seq)
}

func setCursor(ctx context.Context, tx *sql.Tx, seq int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO history_cursor (singleton, seq) VALUES (1, ?)
		 ON CONFLICT (singleton) DO UPDATE SET seq = excluded.seq`,
		seq,
	)
	if err != nil {
		return fmt.Errorf("failed to move cursor: %w", err)
	}
	return nil
}

// withTx runs fn in a transaction and commits when fn succeeds.
func (r *historyRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Current implements location.HistoryRepository.
func (r *historyRepository) Current(ctx context.Context) (location.Entry, error) {
	seq, err := cursorSeq(ctx, r.db)
	if err != nil {
		return location.Entry{}, err
	}
	return entryBySeq(ctx, r.db, seq)
}

// Push implements location.HistoryRepository.
func (r *historyRepository) Push(ctx context.Context, q querystore.Query) (location.Entry, error) {
	var entry location.Entry
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		seq, err := cursorSeq(ctx, tx)
		switch {
		case errors.Is(err, location.ErrNoEntries):
		case err != nil:
			return err
		default:
			if _, err := tx.ExecContext(ctx, `DELETE FROM history_entries WHERE seq > ?`, seq); err != nil {
				return fmt.Errorf("failed to drop forward entries: %w", err)
			}
		}

		now := r.now().UnixMilli()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO history_entries (id, query, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			uuid.NewString(), location.Format(q), now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
		newSeq, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		if err := setCursor(ctx, tx, newSeq); err != nil {
			return err
		}
		entry, err = entryBySeq(ctx, tx, newSeq)
		return err
	})
	return entry, err
}

// ReplaceCurrent implements location.HistoryRepository.
func (r *historyRepository) ReplaceCurrent(ctx context.Context, q querystore.Query) (location.Entry, error) {
	var entry location.Entry
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		seq, err := cursorSeq(ctx, tx)
		if errors.Is(err, location.ErrNoEntries) {
			return errEmpty
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE history_entries SET query = ?, updated_at = ? WHERE seq = ?`,
			location.Format(q), r.now().UnixMilli(), seq,
		); err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}
		entry, err = entryBySeq(ctx, tx, seq)
		return err
	})
	if errors.Is(err, errEmpty) {
		return r.Push(ctx, q)
	}
	return entry, err
}

var errEmpty = errors.New("empty history")

// Move implements location.HistoryRepository.
func (r *historyRepository) Move(ctx context.Context, delta int) (location.Entry, bool, error) {
	var (
		entry location.Entry
		moved bool
	)
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		seq, err := cursorSeq(ctx, tx)
		if err != nil {
			return err
		}
		target := seq
		if delta < 0 {
			err = tx.QueryRowContext(ctx,
				`SELECT COALESCE(MIN(seq), ?) FROM (
					SELECT seq FROM history_entries WHERE seq < ? ORDER BY seq DESC LIMIT ?
				)`, seq, seq, -delta,
			).Scan(&target)
		} else if delta > 0 {
			err = tx.QueryRowContext(ctx,
				`SELECT COALESCE(MAX(seq), ?) FROM (
					SELECT seq FROM history_entries WHERE seq > ? ORDER BY seq ASC LIMIT ?
				)`, seq, seq, delta,
			).Scan(&target)
		}
		if err != nil {
			return fmt.Errorf("failed to find target entry: %w", err)
		}

		moved = target != seq
		if moved {
			if err := setCursor(ctx, tx, target); err != nil {
				return err
			}
		}
		entry, err = entryBySeq(ctx, tx, target)
		return err
	})
	return entry, moved, err
}

// List implements location.HistoryRepository.
func (r *historyRepository) List(ctx context.Context, limit int) ([]location.Entry, error) {
	current, err := cursorSeq(ctx, r.db)
	if errors.Is(err, location.ErrNoEntries) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + entryColumns + ` FROM history_entries ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []location.Entry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		e, err := m.toDomain(current)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	slices.Reverse(entries)
	return entries, nil
}
