package engine

import (
	"fmt"

	"github.com/cbodonnell/tycoon/pkg/game/board"
	"github.com/cbodonnell/tycoon/pkg/game/cards"
	"github.com/cbodonnell/tycoon/pkg/game/rules"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// maxJailTurns is the number of failed jail rolls before bail is forced.
const maxJailTurns = 3

func (t *tx) rollDice() error {
	p := t.actor
	if t.s.HasRolled && !p.InJail {
		return ruleViolation("you have already rolled")
	}

	d1, d2 := t.rollDie(), t.rollDie()
	t.s.Dice = [2]int{d1, d2}
	total := d1 + d2
	doubles := d1 == d2

	if p.InJail {
		p.JailTurns++
		switch {
		case doubles:
			p.InJail = false
			p.JailTurns = 0
			t.record(fmt.Sprintf("%s rolled doubles and escaped Jail!", p.Name))
		case p.JailTurns >= maxJailTurns && p.Money >= t.rules.Bail:
			p.Money -= t.rules.Bail
			p.InJail = false
			p.JailTurns = 0
			t.record(fmt.Sprintf("%s paid $%d bail.", p.Name, t.rules.Bail))
		case p.JailTurns >= maxJailTurns:
			p.JailTurns = maxJailTurns
			t.s.HasRolled = true
			t.s.RollAgain = false
			t.announceAndRecord(fmt.Sprintf("%s failed doubles and stays in Jail.", p.Name))
			return nil
		default:
			t.s.HasRolled = true
			t.s.RollAgain = false
			t.announceAndRecord(fmt.Sprintf("%s stays in Jail.", p.Name))
			return nil
		}
	}

	// doubles owe another roll
	t.s.HasRolled = !doubles
	t.s.RollAgain = doubles

	old := p.Position
	p.Position = board.Advance(old, total)
	msg := fmt.Sprintf("%s rolled %d to %s", p.Name, total, board.MustGet(p.Position).Name)
	if doubles {
		msg += " (Doubles! Roll again)"
	}
	var audit []string
	if rules.PassedGo(old, p.Position) {
		p.Money += t.rules.GoSalary
		audit = append(audit, fmt.Sprintf("%s passed GO (+ $%d)", p.Name, t.rules.GoSalary))
	}

	audit = append(audit, t.land(total)...)

	t.record(msg)
	t.record(audit...)
	// a drawn card is the headline of the roll
	if t.drawn != "" {
		t.announce(t.drawn)
	} else {
		t.announce(msg)
	}
	return nil
}

// land resolves rent, special tiles and card draws for the actor's
// current position and returns the audit lines.
func (t *tx) land(diceTotal int) []string {
	p := t.actor
	var audit []string
	prop := t.s.Property(p.Position)
	if prop.Owned() && prop.Owner != p.ID {
		if rent := rules.Rent(t.s, p.Position, diceTotal); rent > 0 {
			owner, ok := t.s.Player(prop.Owner)
			if ok {
				p.Money -= rent
				owner.Money += rent
				audit = append(audit, fmt.Sprintf("%s paid $%d rent to %s", p.Name, rent, owner.Name))
			}
		}
	}

	effect := rules.LandingEffect(p.Position)
	if effect.Message != "" {
		audit = append(audit, fmt.Sprintf("%s %s", p.Name, effect.Message))
	}
	p.Money += effect.MoneyChange
	if effect.SendToJail {
		t.sendToJail()
		return audit
	}
	if effect.Draw != "" {
		audit = append(audit, t.drawCard(effect.Draw)...)
	}
	return audit
}

// drawCard draws from the deck, shows the card and applies its effect.
func (t *tx) drawCard(deck types.Deck) []string {
	p := t.actor
	def := cards.Draw(deck, t.random.Intn)
	card := def.Card
	t.s.CurrentCard = &card

	t.drawn = fmt.Sprintf("%s drew %s: \"%s\"", p.Name, deckLabel(deck), card.Text)
	audit := []string{t.drawn}
	switch eff := def.Effect.(type) {
	case cards.GrantJailFreeCard:
		p.HeldCards = append(p.HeldCards, card)
	case cards.GainMoney:
		p.Money += eff.Amount
	case cards.MoveAbsolute:
		from := p.Position
		p.Position = eff.Tile
		if eff.Tile == board.GoTile && eff.Tile < from {
			p.Money += t.rules.GoSalary
			audit = append(audit, fmt.Sprintf("%s passed GO (+ $%d)", p.Name, t.rules.GoSalary))
		}
	case cards.MoveRelative:
		p.Position = board.Advance(p.Position, eff.Delta)
	case cards.MoveToNearest:
		if id, ok := board.Nearest(p.Position, eff.Group); ok {
			p.Position = id
		}
	case cards.SendToJail:
		t.sendToJail()
	}
	return audit
}

func deckLabel(deck types.Deck) string {
	if deck == types.DeckChance {
		return "Chance"
	}
	return "Community Chest"
}

// sendToJail jails the actor and ends their roll phase.
func (t *tx) sendToJail() {
	p := t.actor
	p.Position = board.JailTile
	p.InJail = true
	p.JailTurns = 0
	t.s.HasRolled = true
	t.s.RollAgain = false
}

func (t *tx) endTurn() error {
	p := t.actor
	if p.Money < 0 {
		return ruleViolation("you are in debt: sell assets or declare bankruptcy")
	}
	if t.s.RollAgain {
		return ruleViolation("you rolled doubles and must roll again")
	}
	next, ok := nextActiveIndex(t.s.Players, t.s.TurnIndex)
	if !ok {
		return ruleViolation("no other player can take a turn")
	}
	t.s.TurnIndex = next
	t.s.HasRolled = false
	t.s.RollAgain = false
	t.s.CurrentCard = nil
	t.announceAndRecord(fmt.Sprintf("%s ended their turn", p.Name))
	return nil
}

func (t *tx) payBail() error {
	p := t.actor
	if !p.InJail {
		return ruleViolation("you are not in jail")
	}
	if p.Money < t.rules.Bail {
		return Wrap(RuleViolation, rules.ErrInsufficientFunds)
	}
	p.Money -= t.rules.Bail
	p.InJail = false
	p.JailTurns = 0
	t.announceAndRecord(fmt.Sprintf("%s paid $%d bail", p.Name, t.rules.Bail))
	return nil
}

func (t *tx) useJailFreeCard() error {
	p := t.actor
	if !p.InJail {
		return ruleViolation("you are not in jail")
	}
	idx := -1
	for i, c := range p.HeldCards {
		if cards.IsJailFree(c) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ruleViolation("you have no Get Out of Jail Free card")
	}
	p.HeldCards = append(p.HeldCards[:idx], p.HeldCards[idx+1:]...)
	p.InJail = false
	p.JailTurns = 0
	t.announceAndRecord(fmt.Sprintf("%s used a Get Out of Jail Free card", p.Name))
	return nil
}

func (t *tx) dismissCard() error {
	t.s.CurrentCard = nil
	t.announce(fmt.Sprintf("%s dismissed the card", t.actor.Name))
	return nil
}

// nextActiveIndex returns the first non-bankrupt seat after from, wrapping
// around the table. It reports false when no other seat is active, in
// which case the win check has already named a winner.
func nextActiveIndex(players []types.Player, from int) (int, bool) {
	n := len(players)
	for step := 1; step < n; step++ {
		i := (from + step) % n
		if !players[i].Bankrupt {
			return i, true
		}
	}
	return from, false
}
