package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanbanbox-be/internal/models"
)

func TestMemoryTransactionCommits(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	err := m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		return tx.PutBoard(ctx, &models.Board{ID: "b1", Title: "Roadmap"})
	})
	require.NoError(t, err)

	err = m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		b, err := tx.Board(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, "Roadmap", b.Title)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryTransactionRollsBackAtomically(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	boom := errors.New("boom")

	require.NoError(t, m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		return tx.PutBoard(ctx, &models.Board{ID: "b1", Title: "before"})
	}))

	// A failing transaction must leave no partial writes behind, even ones
	// performed before the failure.
	err := m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.PutBoard(ctx, &models.Board{ID: "b1", Title: "after"}); err != nil {
			return err
		}
		if err := tx.PutList(ctx, &models.List{ID: "l1", BoardID: "b1"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		b, err := tx.Board(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, "before", b.Title)
		_, err = tx.List(ctx, "l1")
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	}))
}

func TestMemoryCancelledContextRejected(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		t.Fatal("transaction body must not run after cancellation")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryReadsReturnCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		return tx.PutCard(ctx, &models.Card{ID: "c1", ListID: "l1", Title: "A", LabelIDs: []string{"lb1"}})
	}))

	// Mutating a read result without PutCard must not leak into the store.
	require.NoError(t, m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		c, err := tx.Card(ctx, "c1")
		require.NoError(t, err)
		c.Title = "mutated"
		c.LabelIDs[0] = "mutated"
		return nil
	}))

	require.NoError(t, m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		c, err := tx.Card(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "A", c.Title)
		assert.Equal(t, []string{"lb1"}, c.LabelIDs)
		return nil
	}))
}

func TestMemorySortedReads(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		for _, c := range []models.Card{
			{ID: "c3", ListID: "l1", Order: 300},
			{ID: "c1", ListID: "l1", Order: 100},
			{ID: "c2", ListID: "l1", Order: 200},
			{ID: "cx", ListID: "l2", Order: 50},
		} {
			c := c
			if err := tx.PutCard(ctx, &c); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		cards, err := tx.Cards(ctx, "l1")
		require.NoError(t, err)
		ids := make([]string, len(cards))
		for i, c := range cards {
			ids[i] = c.ID
		}
		assert.Equal(t, []string{"c1", "c2", "c3"}, ids)
		return nil
	}))
}

func TestMemoryListDeleteCascades(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.PutList(ctx, &models.List{ID: "l1", BoardID: "b1"}); err != nil {
			return err
		}
		if err := tx.PutCard(ctx, &models.Card{ID: "c1", ListID: "l1", BoardID: "b1"}); err != nil {
			return err
		}
		return tx.PutComment(ctx, &models.Comment{ID: "cm1", CardID: "c1"})
	}))

	require.NoError(t, m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		return tx.DeleteList(ctx, "l1")
	}))

	require.NoError(t, m.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		_, err := tx.Card(ctx, "c1")
		assert.ErrorIs(t, err, ErrNotFound)
		comments, err := tx.Comments(ctx, "c1")
		require.NoError(t, err)
		assert.Empty(t, comments)
		return nil
	}))
}
