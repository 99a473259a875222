package cards

import (
	"github.com/cbodonnell/tycoon/pkg/game/board"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// Effect is what happens to the player who draws a card.
type Effect interface {
	effect()
}

// MoveAbsolute sends the player to a fixed tile.
type MoveAbsolute struct {
	Tile int
}

// MoveRelative moves the player by Delta tiles (negative moves backwards).
type MoveRelative struct {
	Delta int
}

// MoveToNearest sends the player to the next tile of a group.
type MoveToNearest struct {
	Group board.Group
}

// GainMoney credits Amount to the player; negative amounts are payments to the bank.
type GainMoney struct {
	Amount int
}

// SendToJail jails the player.
type SendToJail struct{}

// GrantJailFreeCard lets the player keep the card for later.
type GrantJailFreeCard struct{}

func (MoveAbsolute) effect()      {}
func (MoveRelative) effect()      {}
func (MoveToNearest) effect()     {}
func (GainMoney) effect()         {}
func (SendToJail) effect()        {}
func (GrantJailFreeCard) effect() {}

// Definition is a card together with its effect.
type Definition struct {
	types.Card
	Effect Effect
}

func chance(id, text string, e Effect) Definition {
	return Definition{Card: types.Card{ID: id, Deck: types.DeckChance, Text: text}, Effect: e}
}

func chest(id, text string, e Effect) Definition {
	return Definition{Card: types.Card{ID: id, Deck: types.DeckCommunityChest, Text: text}, Effect: e}
}

var chanceDeck = []Definition{
	chance("ch1", "Advance to Go (Collect $200)", MoveAbsolute{Tile: board.GoTile}),
	chance("ch2", "Advance to Illinois Ave", MoveAbsolute{Tile: 24}),
	chance("ch3", "Advance to St. Charles Place", MoveAbsolute{Tile: 11}),
	chance("ch4", "Advance to nearest Utility", MoveToNearest{Group: board.GroupUtility}),
	chance("ch5", "Advance to nearest Railroad", MoveToNearest{Group: board.GroupRailroad}),
	chance("ch6", "Bank pays you dividend of $50", GainMoney{Amount: 50}),
	chance("ch7", "Get Out of Jail Free", GrantJailFreeCard{}),
	chance("ch8", "Go Back 3 Spaces", MoveRelative{Delta: -3}),
	chance("ch9", "Go to Jail", SendToJail{}),
	chance("ch10", "Make general repairs on all your property", GainMoney{Amount: -25}),
	chance("ch11", "Speeding fine $15", GainMoney{Amount: -15}),
	chance("ch12", "Take a trip to Reading Railroad", MoveAbsolute{Tile: 5}),
	chance("ch13", "You have been elected Chairman of the Board. Pay $50", GainMoney{Amount: -50}),
	chance("ch14", "Your building loan matures. Collect $150", GainMoney{Amount: 150}),
}

var communityChestDeck = []Definition{
	chest("cc1", "Advance to Go (Collect $200)", MoveAbsolute{Tile: board.GoTile}),
	chest("cc2", "Bank error in your favor. Collect $200", GainMoney{Amount: 200}),
	chest("cc3", "Doctor's fee. Pay $50", GainMoney{Amount: -50}),
	chest("cc4", "From sale of stock you get $50", GainMoney{Amount: 50}),
	chest("cc5", "Get Out of Jail Free", GrantJailFreeCard{}),
	chest("cc6", "Go to Jail", SendToJail{}),
	chest("cc7", "Holiday Fund matures. Receive $100", GainMoney{Amount: 100}),
	chest("cc8", "Income tax refund. Collect $20", GainMoney{Amount: 20}),
	chest("cc9", "It is your birthday. Collect $10", GainMoney{Amount: 10}),
	chest("cc10", "Life insurance matures. Collect $100", GainMoney{Amount: 100}),
	chest("cc11", "Pay hospital fees of $100", GainMoney{Amount: -100}),
	chest("cc12", "Pay school fees of $50", GainMoney{Amount: -50}),
	chest("cc13", "Receive $25 consultancy fee", GainMoney{Amount: 25}),
	chest("cc14", "You have won second prize in a beauty contest. Collect $10", GainMoney{Amount: 10}),
	chest("cc15", "You inherit $100", GainMoney{Amount: 100}),
}

var byID = func() map[string]Definition {
	m := make(map[string]Definition, len(chanceDeck)+len(communityChestDeck))
	for _, d := range chanceDeck {
		m[d.ID] = d
	}
	for _, d := range communityChestDeck {
		m[d.ID] = d
	}
	return m
}()

// Intn returns a uniform integer in [0, n).
type Intn func(n int) int

// Cards returns a copy of the deck.
func Cards(deck types.Deck) []Definition {
	var src []Definition
	switch deck {
	case types.DeckChance:
		src = chanceDeck
	case types.DeckCommunityChest:
		src = communityChestDeck
	}
	out := make([]Definition, len(src))
	copy(out, src)
	return out
}

// Draw picks a card uniformly at random. Decks are never depleted.
func Draw(deck types.Deck, intn Intn) Definition {
	d := Cards(deck)
	return d[intn(len(d))]
}

// Lookup returns the definition of a card by id.
func Lookup(id string) (Definition, bool) {
	d, ok := byID[id]
	return d, ok
}

// IsJailFree reports whether the card can be used to leave jail.
func IsJailFree(c types.Card) bool {
	d, ok := Lookup(c.ID)
	if !ok {
		return false
	}
	_, ok = d.Effect.(GrantJailFreeCard)
	return ok
}
