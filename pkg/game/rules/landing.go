package rules

import (
	"fmt"

	"github.com/cbodonnell/tycoon/pkg/game/board"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// Landing is the fixed side effect of a special tile.
type Landing struct {
	MoneyChange int
	SendToJail  bool
	Draw        types.Deck
	Message     string
}

// LandingEffect returns the special effect of landing on tileID.
// Ownable tiles and corners without an effect return the zero value.
func LandingEffect(tileID int) Landing {
	tile, ok := board.Get(tileID)
	if !ok {
		return Landing{}
	}
	switch tile.Kind {
	case board.KindIncomeTax:
		return Landing{MoneyChange: -IncomeTax, Message: fmt.Sprintf("paid $%d Income Tax", IncomeTax)}
	case board.KindLuxuryTax:
		return Landing{MoneyChange: -LuxuryTax, Message: fmt.Sprintf("paid $%d Luxury Tax", LuxuryTax)}
	case board.KindGoToJail:
		return Landing{SendToJail: true, Message: "was sent to Jail"}
	case board.KindChance:
		return Landing{Draw: types.DeckChance}
	case board.KindCommunityChest:
		return Landing{Draw: types.DeckCommunityChest}
	}
	return Landing{}
}
