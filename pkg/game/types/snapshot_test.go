package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	s := NewSnapshot([]Seat{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}}, 1500)
	s.SetProperty(1, Property{Owner: "a"})
	s.Players[0].HeldCards = append(s.Players[0].HeldCards, Card{ID: "ch7", Deck: DeckChance})
	s.Auction = &Auction{PropertyID: 3, ActiveBidders: []string{"a", "b"}}
	s.Trades = append(s.Trades, Trade{
		ID:           "t1",
		FromPlayerID: "a",
		ToPlayerID:   "b",
		Offering:     TradeSide{Properties: []int{1}},
		Status:       TradePending,
	})
	winner := "a"
	s.Winner = &winner
	s.CurrentCard = &Card{ID: "cc1"}
	return s
}

func TestNewSnapshot(t *testing.T) {
	s := NewSnapshot([]Seat{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}}, 1500)

	require.Len(t, s.Players, 2)
	for _, p := range s.Players {
		assert.Equal(t, 1500, p.Money)
		assert.Equal(t, 0, p.Position)
		assert.False(t, p.InJail)
		assert.Empty(t, p.HeldCards)
	}
	assert.Empty(t, s.Properties)
	assert.Equal(t, [2]int{1, 1}, s.Dice)
	assert.Nil(t, s.Winner)
}

func TestCloneIsDeep(t *testing.T) {
	s := testSnapshot()
	c := s.Clone()
	require.Equal(t, s, c)

	c.Players[0].Money = 1
	c.Players[0].HeldCards[0].ID = "changed"
	c.SetProperty(1, Property{Owner: "b"})
	c.Auction.ActiveBidders[0] = "z"
	c.Trades[0].Offering.Properties[0] = 39
	*c.Winner = "b"
	c.CurrentCard.ID = "other"
	c.Log = append(c.Log, "more")

	assert.Equal(t, 1500, s.Players[0].Money)
	assert.Equal(t, "ch7", s.Players[0].HeldCards[0].ID)
	assert.Equal(t, "a", s.Property(1).Owner)
	assert.Equal(t, "a", s.Auction.ActiveBidders[0])
	assert.Equal(t, 1, s.Trades[0].Offering.Properties[0])
	assert.Equal(t, "a", *s.Winner)
	assert.Equal(t, "cc1", s.CurrentCard.ID)
	assert.Len(t, s.Log, 1)
}

func TestAuctionBidders(t *testing.T) {
	a := &Auction{ActiveBidders: []string{"a", "b", "c"}}
	assert.True(t, a.HasBidder("b"))
	a.RemoveBidder("b")
	assert.False(t, a.HasBidder("b"))
	assert.Equal(t, []string{"a", "c"}, a.ActiveBidders)
}

func TestAllowedOutOfTurn(t *testing.T) {
	assert.True(t, AllowedOutOfTurn(ActionPlaceBid))
	assert.True(t, AllowedOutOfTurn(ActionResetGame))
	assert.False(t, AllowedOutOfTurn(ActionRollDice))
	assert.False(t, AllowedOutOfTurn(ActionResolveAuction))
	assert.False(t, AllowedOutOfTurn(ActionDeclareBankruptcy))
}

func TestCloneKeepsNilAndEmptySlices(t *testing.T) {
	s := &Snapshot{
		Players: []Player{{ID: "a", HeldCards: []Card{}}},
		Trades: []Trade{{
			ID:         "t1",
			Offering:   TradeSide{Properties: []int{}},
			Requesting: TradeSide{},
		}},
	}
	c := s.Clone()
	require.Equal(t, s, c)

	assert.NotNil(t, c.Players[0].HeldCards)
	assert.NotNil(t, c.Trades[0].Offering.Properties)
	assert.Nil(t, c.Trades[0].Requesting.Properties)
	assert.Nil(t, c.Properties)
	assert.Nil(t, c.Log)
}
