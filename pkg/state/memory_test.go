package state

import (
	"context"
	"testing"

	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStateManager(t *testing.T) {
	ctx := context.Background()
	m := NewInMemoryStateManager()

	_, err := m.Get(ctx, "g1")
	assert.ErrorIs(t, err, ErrNoState)
	assert.Error(t, m.Set(ctx, "g1", nil))

	s := types.NewSnapshot([]types.Seat{{ID: "a", Name: "Alice"}}, 1500)
	require.NoError(t, m.Set(ctx, "g1", s))

	// later writes to the caller's copy are not visible
	s.Players[0].Money = 1
	got, err := m.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 1500, got.Players[0].Money)

	got.Players[0].Money = 2
	again, err := m.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 1500, again.Players[0].Money)

	require.NoError(t, m.Set(ctx, "g2", s))
	all, err := m.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 1, all["g2"].Players[0].Money)

	require.NoError(t, m.Delete(ctx, "g1"))
	_, err = m.Get(ctx, "g1")
	assert.ErrorIs(t, err, ErrNoState)
}
