package engine

import (
	"fmt"

	"github.com/cbodonnell/tycoon/pkg/game/rules"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// checkSide verifies that owner can still give up everything in side.
// Mortgaged properties may be traded; properties in a group with buildings may not.
func (t *tx) checkSide(owner *types.Player, side types.TradeSide) error {
	if side.Money < 0 {
		return invalidTarget("trade amounts must not be negative")
	}
	if owner.Money < side.Money {
		return ruleViolation("%s has insufficient funds", owner.Name)
	}
	for _, id := range side.Properties {
		tl, err := tile(id)
		if err != nil {
			return err
		}
		prop := t.s.Property(id)
		if prop.Owner != owner.ID {
			return ruleViolation("%s does not own %s", owner.Name, tl.Name)
		}
		if prop.Houses > 0 {
			return ruleViolation("buildings on %s must be sold first", tl.Name)
		}
		if tl.Buildable() && rules.GroupHasBuildings(t.s, tl.Group) {
			return ruleViolation("buildings in the group of %s must be sold first", tl.Name)
		}
	}
	return nil
}

func copySide(side types.TradeSide) types.TradeSide {
	return types.TradeSide{
		Money:      side.Money,
		Properties: append([]int{}, side.Properties...),
	}
}

func (t *tx) proposeTrade(a types.ProposeTrade) error {
	p := t.actor
	if a.TargetPlayerID == "" {
		return invalidTarget("missing target player")
	}
	target, ok := t.s.Player(a.TargetPlayerID)
	if !ok {
		return invalidTarget("target player not found")
	}
	if target.ID == p.ID {
		return invalidTarget("cannot trade with yourself")
	}
	if target.Bankrupt {
		return ruleViolation("%s is bankrupt", target.Name)
	}
	if a.Offering.Money == 0 && len(a.Offering.Properties) == 0 &&
		a.Requesting.Money == 0 && len(a.Requesting.Properties) == 0 {
		return invalidTarget("trade is empty")
	}
	if err := t.checkSide(p, a.Offering); err != nil {
		return err
	}
	if err := t.checkSide(target, a.Requesting); err != nil {
		return err
	}

	t.s.Trades = append(t.s.Trades, types.Trade{
		ID:           t.newID(),
		FromPlayerID: p.ID,
		ToPlayerID:   target.ID,
		Offering:     copySide(a.Offering),
		Requesting:   copySide(a.Requesting),
		Status:       types.TradePending,
		CreatedAt:    t.nowMillis(),
	})
	t.announceAndRecord(fmt.Sprintf("%s proposed a trade to %s", p.Name, target.Name))
	return nil
}

// pendingTrade finds a trade that is still open.
func (t *tx) pendingTrade(tradeID string) (int, *types.Trade, error) {
	if tradeID == "" {
		return -1, nil, invalidTarget("missing trade id")
	}
	idx := t.s.TradeIndex(tradeID)
	if idx < 0 {
		return -1, nil, invalidTarget("trade not found")
	}
	tr := &t.s.Trades[idx]
	if tr.Status != types.TradePending {
		return -1, nil, ruleViolation("trade already finalized")
	}
	return idx, tr, nil
}

func (t *tx) playerName(id string) string {
	if p, ok := t.s.Player(id); ok {
		return p.Name
	}
	return id
}

func (t *tx) cancelTrade(tradeID string) error {
	idx, tr, err := t.pendingTrade(tradeID)
	if err != nil {
		return err
	}
	if tr.FromPlayerID != t.actor.ID {
		return ruleViolation("not your trade")
	}
	msg := fmt.Sprintf("%s cancelled a trade with %s", t.actor.Name, t.playerName(tr.ToPlayerID))
	t.s.RemoveTrade(idx)
	t.announceAndRecord(msg)
	return nil
}

func (t *tx) rejectTrade(tradeID string) error {
	idx, tr, err := t.pendingTrade(tradeID)
	if err != nil {
		return err
	}
	if tr.ToPlayerID != t.actor.ID {
		return ruleViolation("trade was not offered to you")
	}
	msg := fmt.Sprintf("%s rejected trade from %s", t.actor.Name, t.playerName(tr.FromPlayerID))
	t.s.RemoveTrade(idx)
	t.announceAndRecord(msg)
	return nil
}

func (t *tx) acceptTrade(tradeID string) error {
	idx, tr, err := t.pendingTrade(tradeID)
	if err != nil {
		return err
	}
	receiver := t.actor
	if tr.ToPlayerID != receiver.ID {
		return ruleViolation("trade was not offered to you")
	}
	sender, ok := t.s.Player(tr.FromPlayerID)
	if !ok || sender.Bankrupt {
		return ruleViolation("the proposer has left the game")
	}

	// holdings may have changed since the proposal
	if err := t.checkSide(sender, tr.Offering); err != nil {
		return err
	}
	if err := t.checkSide(receiver, tr.Requesting); err != nil {
		return err
	}

	sender.Money += tr.Requesting.Money - tr.Offering.Money
	receiver.Money += tr.Offering.Money - tr.Requesting.Money
	transfer := func(ids []int, to string) {
		for _, id := range ids {
			prop := t.s.Property(id)
			prop.Owner = to
			t.s.SetProperty(id, prop)
		}
	}
	transfer(tr.Offering.Properties, receiver.ID)
	transfer(tr.Requesting.Properties, sender.ID)

	t.s.RemoveTrade(idx)
	t.announceAndRecord(fmt.Sprintf("%s and %s completed a trade!", sender.Name, receiver.Name))
	return nil
}
