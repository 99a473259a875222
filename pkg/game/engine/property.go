package engine

import (
	"fmt"

	"github.com/cbodonnell/tycoon/pkg/game/board"
	"github.com/cbodonnell/tycoon/pkg/game/rules"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// tile resolves a property id from a payload.
func tile(propertyID int) (board.Tile, error) {
	t, ok := board.Get(propertyID)
	if !ok {
		return board.Tile{}, invalidTarget("property %d does not exist", propertyID)
	}
	return t, nil
}

func (t *tx) buyProperty() error {
	p := t.actor
	if t.s.Auction != nil {
		return ruleViolation("an auction is in progress")
	}
	tl := board.MustGet(p.Position)
	if err := rules.CanBuy(t.s, tl.ID, p.Money); err != nil {
		return Wrap(RuleViolation, err)
	}
	p.Money -= tl.Price
	t.s.SetProperty(tl.ID, types.Property{Owner: p.ID})
	t.announceAndRecord(fmt.Sprintf("%s bought %s", p.Name, tl.Name))
	return nil
}

func (t *tx) mortgage(propertyID int) error {
	tl, err := tile(propertyID)
	if err != nil {
		return err
	}
	p := t.actor
	if err := rules.CanMortgage(t.s, tl.ID, p.ID); err != nil {
		return Wrap(RuleViolation, err)
	}
	value := rules.MortgageValue(tl)
	prop := t.s.Property(tl.ID)
	prop.Mortgaged = true
	t.s.SetProperty(tl.ID, prop)
	p.Money += value
	t.announceAndRecord(fmt.Sprintf("%s mortgaged %s for $%d", p.Name, tl.Name, value))
	return nil
}

func (t *tx) unmortgage(propertyID int) error {
	tl, err := tile(propertyID)
	if err != nil {
		return err
	}
	p := t.actor
	if err := rules.CanUnmortgage(t.s, tl.ID, p.ID, p.Money); err != nil {
		return Wrap(RuleViolation, err)
	}
	cost := rules.UnmortgageCost(tl)
	prop := t.s.Property(tl.ID)
	prop.Mortgaged = false
	t.s.SetProperty(tl.ID, prop)
	p.Money -= cost
	t.announceAndRecord(fmt.Sprintf("%s unmortgaged %s for $%d", p.Name, tl.Name, cost))
	return nil
}

func (t *tx) buildHouse(propertyID int) error {
	tl, err := tile(propertyID)
	if err != nil {
		return err
	}
	p := t.actor
	if err := rules.CanBuildHouse(t.s, tl.ID, p.ID, p.Money); err != nil {
		return Wrap(RuleViolation, err)
	}
	prop := t.s.Property(tl.ID)
	prop.Houses++
	t.s.SetProperty(tl.ID, prop)
	p.Money -= tl.HouseCost
	t.announceAndRecord(fmt.Sprintf("%s built a %s on %s", p.Name, buildingName(prop.Houses), tl.Name))
	return nil
}

func (t *tx) sellHouse(propertyID int) error {
	tl, err := tile(propertyID)
	if err != nil {
		return err
	}
	p := t.actor
	if err := rules.CanSellHouse(t.s, tl.ID, p.ID); err != nil {
		return Wrap(RuleViolation, err)
	}
	prop := t.s.Property(tl.ID)
	sold := buildingName(prop.Houses)
	prop.Houses--
	t.s.SetProperty(tl.ID, prop)
	refund := rules.HouseRefund(tl)
	p.Money += refund
	t.announceAndRecord(fmt.Sprintf("%s sold a %s on %s for $%d", p.Name, sold, tl.Name, refund))
	return nil
}

func buildingName(houses int) string {
	if houses == board.MaxHouses {
		return "Hotel"
	}
	return "House"
}
