package cards

import (
	"testing"

	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckSizes(t *testing.T) {
	assert.Len(t, Cards(types.DeckChance), 14)
	assert.Len(t, Cards(types.DeckCommunityChest), 15)
	assert.Empty(t, Cards("unknown"))
}

func TestDeckEntriesAreTagged(t *testing.T) {
	for _, deck := range []types.Deck{types.DeckChance, types.DeckCommunityChest} {
		for _, d := range Cards(deck) {
			assert.Equal(t, deck, d.Deck, d.ID)
			assert.NotNil(t, d.Effect, d.ID)
			assert.NotEmpty(t, d.Text, d.ID)
		}
	}
}

func TestDraw(t *testing.T) {
	var gotN int
	d := Draw(types.DeckCommunityChest, func(n int) int {
		gotN = n
		return 1
	})
	assert.Equal(t, 15, gotN)
	assert.Equal(t, "cc2", d.ID)
	assert.Equal(t, GainMoney{Amount: 200}, d.Effect)
}

func TestLookup(t *testing.T) {
	d, ok := Lookup("ch8")
	require.True(t, ok)
	assert.Equal(t, MoveRelative{Delta: -3}, d.Effect)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestIsJailFree(t *testing.T) {
	assert.True(t, IsJailFree(types.Card{ID: "ch7"}))
	assert.True(t, IsJailFree(types.Card{ID: "cc5"}))
	assert.False(t, IsJailFree(types.Card{ID: "cc6"}))
	assert.False(t, IsJailFree(types.Card{ID: "missing"}))
}
