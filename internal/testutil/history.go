package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/datecalc/internal/location"
	"github.com/zjrosen/datecalc/internal/querystore"
)

// RunHistoryRepositoryTests checks the behaviour every
// location.HistoryRepository must share. newRepo must return an empty
// repository.
func RunHistoryRepositoryTests(t *testing.T, newRepo func(t *testing.T) location.HistoryRepository) {
	t.Helper()

	q := func(v string) querystore.Query { return querystore.Query{"start": v} }

	t.Run("empty history", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Current(ctx)
		require.True(t, errors.Is(err, location.ErrNoEntries), "got %v", err)

		_, _, err = repo.Move(ctx, -1)
		require.ErrorIs(t, err, location.ErrNoEntries)

		entries, err := repo.List(ctx, 0)
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("push moves cursor", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Push(ctx, q("2024-01-01"))
		require.NoError(t, err)
		second, err := repo.Push(ctx, q("2024-02-01"))
		require.NoError(t, err)

		require.NotEqual(t, first.ID, second.ID)
		require.Greater(t, second.Seq, first.Seq)

		cur, err := repo.Current(ctx)
		require.NoError(t, err)
		require.Equal(t, second.ID, cur.ID)
		require.Equal(t, q("2024-02-01"), cur.Query)
		require.True(t, cur.Current)
	})

	t.Run("replace rewrites current entry", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		pushed, err := repo.Push(ctx, q("2024-01-01"))
		require.NoError(t, err)
		replaced, err := repo.ReplaceCurrent(ctx, querystore.Query{"start": "2024-01-01", "days": "3"})
		require.NoError(t, err)

		require.Equal(t, pushed.ID, replaced.ID)
		require.Equal(t, "3", replaced.Query["days"])

		entries, err := repo.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("replace on empty history creates entry", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		e, err := repo.ReplaceCurrent(ctx, q("2024-01-01"))
		require.NoError(t, err)

		cur, err := repo.Current(ctx)
		require.NoError(t, err)
		require.Equal(t, e.ID, cur.ID)
	})

	t.Run("move back and forward", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		for _, v := range []string{"a", "b", "c"} {
			_, err := repo.Push(ctx, q(v))
			require.NoError(t, err)
		}

		e, moved, err := repo.Move(ctx, -1)
		require.NoError(t, err)
		require.True(t, moved)
		require.Equal(t, q("b"), e.Query)

		e, moved, err = repo.Move(ctx, -5)
		require.NoError(t, err)
		require.True(t, moved, "clamped to the oldest entry")
		require.Equal(t, q("a"), e.Query)

		e, moved, err = repo.Move(ctx, -1)
		require.NoError(t, err)
		require.False(t, moved)
		require.Equal(t, q("a"), e.Query)

		e, moved, err = repo.Move(ctx, 2)
		require.NoError(t, err)
		require.True(t, moved)
		require.Equal(t, q("c"), e.Query)

		_, moved, err = repo.Move(ctx, 1)
		require.NoError(t, err)
		require.False(t, moved)
	})

	t.Run("push truncates forward entries", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		for _, v := range []string{"a", "b", "c"} {
			_, err := repo.Push(ctx, q(v))
			require.NoError(t, err)
		}
		_, _, err := repo.Move(ctx, -2)
		require.NoError(t, err)

		_, err = repo.Push(ctx, q("d"))
		require.NoError(t, err)

		entries, err := repo.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.Equal(t, q("a"), entries[0].Query)
		require.Equal(t, q("d"), entries[1].Query)
		require.False(t, entries[0].Current)
		require.True(t, entries[1].Current)

		_, moved, err := repo.Move(ctx, 1)
		require.NoError(t, err)
		require.False(t, moved)
	})

	t.Run("list limit keeps newest", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		for _, v := range []string{"a", "b", "c", "d"} {
			_, err := repo.Push(ctx, q(v))
			require.NoError(t, err)
		}

		entries, err := repo.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.Equal(t, q("c"), entries[0].Query)
		require.Equal(t, q("d"), entries[1].Query)
	})

	t.Run("empty query", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Push(ctx, querystore.Query{})
		require.NoError(t, err)

		cur, err := repo.Current(ctx)
		require.NoError(t, err)
		require.Empty(t, cur.Query)
	})
}
