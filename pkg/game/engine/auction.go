package engine

import (
	"fmt"

	"github.com/cbodonnell/tycoon/pkg/game/board"
	"github.com/cbodonnell/tycoon/pkg/game/rules"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

func (t *tx) declineBuy() error {
	p := t.actor
	if t.s.Auction != nil {
		return ruleViolation("an auction is in progress")
	}
	tl := board.MustGet(p.Position)
	if !tl.Ownable() {
		return Wrap(RuleViolation, rules.ErrNotOwnable)
	}
	if t.s.Property(tl.ID).Owned() {
		return Wrap(RuleViolation, rules.ErrAlreadyOwned)
	}

	bidders := make([]string, 0, len(t.s.Players))
	for _, pl := range t.s.Players {
		if !pl.Bankrupt {
			bidders = append(bidders, pl.ID)
		}
	}
	t.s.Auction = &types.Auction{
		PropertyID:    tl.ID,
		ActiveBidders: bidders,
		EndTime:       t.deadline(),
	}
	t.announceAndRecord(fmt.Sprintf("Auction started for %s", tl.Name))
	return nil
}

// deadline is the bidding deadline counted from now.
func (t *tx) deadline() int64 {
	return t.now().Add(t.rules.AuctionDuration).UnixMilli()
}

func (t *tx) placeBid(amount int) error {
	a := t.s.Auction
	p := t.actor
	if a == nil {
		return ruleViolation("no active auction")
	}
	if !a.HasBidder(p.ID) {
		return ruleViolation("you are not in this auction")
	}
	if amount <= a.HighestBid {
		return ruleViolation("bid must be higher than $%d", a.HighestBid)
	}
	if amount > p.Money {
		return Wrap(RuleViolation, rules.ErrInsufficientFunds)
	}
	a.HighestBid = amount
	a.HighestBidder = p.ID
	a.EndTime = t.deadline()
	t.announce(fmt.Sprintf("%s bid $%d", p.Name, amount))
	return nil
}

func (t *tx) foldAuction() error {
	a := t.s.Auction
	p := t.actor
	if a == nil {
		return ruleViolation("no active auction")
	}
	if a.HighestBidder == p.ID {
		return ruleViolation("cannot fold while highest bidder")
	}
	if !a.HasBidder(p.ID) {
		return ruleViolation("you are not in this auction")
	}
	a.RemoveBidder(p.ID)
	t.announce(fmt.Sprintf("%s folded", p.Name))

	switch len(a.ActiveBidders) {
	case 1:
		price := a.HighestBid
		if price < t.rules.AuctionFloor {
			price = t.rules.AuctionFloor
		}
		t.sell(a.ActiveBidders[0], price)
	case 0:
		t.s.Auction = nil
		t.announceAndRecord("Auction ended with no winner.")
	}
	return nil
}

func (t *tx) resolveAuction() error {
	a := t.s.Auction
	if a == nil {
		return ruleViolation("no active auction")
	}
	if t.nowMillis() < a.EndTime {
		return NewError(TimingViolation, "auction is still open")
	}
	if a.HighestBidder == "" {
		t.s.Auction = nil
		t.announceAndRecord("Auction ended with no bids")
		return nil
	}
	t.sell(a.HighestBidder, a.HighestBid)
	return nil
}

// sell closes the auction by selling its property to the winner.
func (t *tx) sell(winnerID string, price int) {
	a := t.s.Auction
	t.s.Auction = nil
	tl := board.MustGet(a.PropertyID)
	winner, ok := t.s.Player(winnerID)
	if !ok {
		t.announceAndRecord("Auction ended with no winner.")
		return
	}
	winner.Money -= price
	t.s.SetProperty(tl.ID, types.Property{Owner: winner.ID})
	t.announceAndRecord(fmt.Sprintf("%s won auction for %s at $%d", winner.Name, tl.Name, price))
}
