package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/store"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	_, err := st.Get(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	sess, err := game.NewSession(game.Config{Bound: 'C', Dims: 3, Seed: 9}, game.NewGenerator(9), nil)
	require.NoError(t, err)
	e := &store.Entry{ID: "g1", Session: sess, Created: time.Now()}
	require.NoError(t, st.Save(ctx, e))
	require.Equal(t, 1, st.Len())

	got, err := st.Get(ctx, "g1")
	require.NoError(t, err)
	require.Same(t, e, got)

	require.NoError(t, st.Delete(ctx, "g1"))
	require.NoError(t, st.Delete(ctx, "g1"))
	require.Equal(t, 0, st.Len())
}

func TestMemoryStorePrune(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	now := time.Now()
	require.NoError(t, st.Save(ctx, &store.Entry{ID: "old", Created: now.Add(-2 * time.Hour)}))
	require.NoError(t, st.Save(ctx, &store.Entry{ID: "new", Created: now}))

	require.Equal(t, 1, st.Prune(ctx, now.Add(-time.Hour)))
	_, err := st.Get(ctx, "old")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Get(ctx, "new")
	require.NoError(t, err)
}
