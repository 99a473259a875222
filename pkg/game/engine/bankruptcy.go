package engine

import (
	"fmt"

	"github.com/cbodonnell/tycoon/pkg/game/types"
)

func (t *tx) declareBankruptcy() error {
	p := t.actor
	p.Bankrupt = true
	p.Money = 0
	p.InJail = false
	p.JailTurns = 0

	// holdings go back to the bank
	for id, prop := range t.s.Properties {
		if prop.Owner == p.ID {
			delete(t.s.Properties, id)
		}
	}

	if a := t.s.Auction; a != nil {
		a.RemoveBidder(p.ID)
		if a.HighestBidder == p.ID {
			a.HighestBidder = ""
			a.HighestBid = 0
		}
		if len(a.ActiveBidders) == 0 {
			t.s.Auction = nil
		}
	}

	trades := t.s.Trades[:0]
	for _, tr := range t.s.Trades {
		if !tr.Involves(p.ID) {
			trades = append(trades, tr)
		}
	}
	t.s.Trades = trades

	t.announceAndRecord(fmt.Sprintf("%s declared BANKRUPTCY and left the game!", p.Name))

	active := t.s.ActivePlayers()
	if len(active) == 1 {
		winner := active[0]
		t.s.Winner = &winner.ID
		t.s.Auction = nil
		t.s.HasRolled = false
		t.s.RollAgain = false
		t.s.CurrentCard = nil
		t.record(fmt.Sprintf("GAME OVER! %s is the WINNER!", winner.Name))
		return nil
	}

	if next, ok := nextActiveIndex(t.s.Players, t.s.TurnIndex); ok {
		t.s.TurnIndex = next
	}
	t.s.HasRolled = false
	t.s.RollAgain = false
	t.s.CurrentCard = nil
	return nil
}

func (t *tx) resetGame() error {
	for i := range t.s.Players {
		p := &t.s.Players[i]
		p.Money = t.rules.StartingMoney
		p.Position = 0
		p.InJail = false
		p.JailTurns = 0
		p.HeldCards = []types.Card{}
		p.Bankrupt = false
	}
	t.s.Properties = make(map[int]types.Property)
	t.s.TurnIndex = 0
	t.s.Dice = [2]int{1, 1}
	t.s.HasRolled = false
	t.s.RollAgain = false
	t.s.CurrentCard = nil
	t.s.Auction = nil
	t.s.Trades = []types.Trade{}
	t.s.Winner = nil
	t.s.Log = []string{"New Game Ready"}
	t.announce("Game Reset")
	return nil
}
