// Package rules holds the numeric rules of the game as pure functions over a snapshot.
package rules

import (
	"errors"

	"github.com/cbodonnell/tycoon/pkg/game/board"
	"github.com/cbodonnell/tycoon/pkg/game/types"
)

const (
	railroadBaseRent    = 25
	utilitySingleFactor = 4
	utilityPairFactor   = 10
	// IncomeTax is charged on the Income Tax tile
	IncomeTax = 200
	// LuxuryTax is charged on the Luxury Tax tile
	LuxuryTax = 100
)

var (
	ErrNotOwnable        = errors.New("property cannot be owned")
	ErrNotBuildable      = errors.New("houses cannot be built on this property")
	ErrAlreadyOwned      = errors.New("property is already owned")
	ErrNotOwner          = errors.New("you do not own this property")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyMortgaged  = errors.New("property is already mortgaged")
	ErrNotMortgaged      = errors.New("property is not mortgaged")
	ErrHasBuildings      = errors.New("sell all buildings in this group first")
	ErrNoMonopoly        = errors.New("you must own every property in the group")
	ErrGroupMortgaged    = errors.New("a property in this group is mortgaged")
	ErrMaxBuildings      = errors.New("property already has a hotel")
	ErrNoBuildings       = errors.New("property has no buildings to sell")
	ErrUnevenBuild       = errors.New("houses must be built evenly across the group")
	ErrUnevenSell        = errors.New("houses must be sold evenly across the group")
	ErrTileOutOfRange    = errors.New("tile does not exist")
)

// Rent returns what a visitor owes the owner of tileID. Unowned and
// mortgaged properties charge nothing.
func Rent(s *types.Snapshot, tileID int, diceTotal int) int {
	tile, ok := board.Get(tileID)
	if !ok || !tile.Ownable() {
		return 0
	}
	p := s.Property(tileID)
	if !p.Owned() || p.Mortgaged {
		return 0
	}
	switch tile.Kind {
	case board.KindRailroad:
		return RailroadRent(CountOwned(s, p.Owner, board.GroupRailroad))
	case board.KindUtility:
		return UtilityRent(CountOwned(s, p.Owner, board.GroupUtility), diceTotal)
	case board.KindStreet:
		return StreetRent(tile, p.Houses)
	}
	return 0
}

// StreetRent indexes the tile's rent table by house count, 5 being the hotel.
func StreetRent(tile board.Tile, houses int) int {
	if houses < 0 || houses >= len(tile.Rent) {
		return 0
	}
	return tile.Rent[houses]
}

// RailroadRent doubles for every railroad the owner holds.
func RailroadRent(owned int) int {
	if owned < 1 {
		return 0
	}
	return railroadBaseRent << (owned - 1)
}

// UtilityRent multiplies the dice total by 4 for one utility, 10 for both.
func UtilityRent(owned int, diceTotal int) int {
	switch {
	case owned >= 2:
		return diceTotal * utilityPairFactor
	case owned == 1:
		return diceTotal * utilitySingleFactor
	}
	return 0
}

// CountOwned counts the tiles of a group held by the owner.
func CountOwned(s *types.Snapshot, owner string, g board.Group) int {
	n := 0
	for _, id := range board.Members(g) {
		if s.Property(id).Owner == owner {
			n++
		}
	}
	return n
}

// MortgageValue is half the price, rounded down.
func MortgageValue(tile board.Tile) int {
	return tile.Price / 2
}

// UnmortgageCost is the mortgage value plus 10% interest, rounded down.
func UnmortgageCost(tile board.Tile) int {
	return MortgageValue(tile) * 11 / 10
}

// HouseRefund is what the bank pays back for one sold building.
func HouseRefund(tile board.Tile) int {
	return tile.HouseCost / 2
}

// HasMonopoly reports whether the owner holds every tile of a buildable group.
func HasMonopoly(s *types.Snapshot, owner string, g board.Group) bool {
	members := board.Members(g)
	if owner == "" || len(members) == 0 {
		return false
	}
	for _, id := range members {
		if board.MustGet(id).Kind != board.KindStreet {
			return false
		}
		if s.Property(id).Owner != owner {
			return false
		}
	}
	return true
}

func groupMortgaged(s *types.Snapshot, g board.Group) bool {
	for _, id := range board.Members(g) {
		if s.Property(id).Mortgaged {
			return true
		}
	}
	return false
}

func groupHouses(s *types.Snapshot, g board.Group) (min, max int) {
	min = board.MaxHouses
	for _, id := range board.Members(g) {
		h := s.Property(id).Houses
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	return min, max
}

// GroupHasBuildings reports whether any tile in the group carries houses or a hotel.
func GroupHasBuildings(s *types.Snapshot, g board.Group) bool {
	_, max := groupHouses(s, g)
	return max > 0
}

// CanBuy checks that the player may buy tileID outright.
func CanBuy(s *types.Snapshot, tileID int, money int) error {
	tile, ok := board.Get(tileID)
	if !ok {
		return ErrTileOutOfRange
	}
	if !tile.Ownable() {
		return ErrNotOwnable
	}
	if s.Property(tileID).Owned() {
		return ErrAlreadyOwned
	}
	if money < tile.Price {
		return ErrInsufficientFunds
	}
	return nil
}

// CanMortgage checks that the player may mortgage tileID.
func CanMortgage(s *types.Snapshot, tileID int, playerID string) error {
	tile, ok := board.Get(tileID)
	if !ok {
		return ErrTileOutOfRange
	}
	if !tile.Ownable() {
		return ErrNotOwnable
	}
	p := s.Property(tileID)
	if p.Owner != playerID {
		return ErrNotOwner
	}
	if p.Mortgaged {
		return ErrAlreadyMortgaged
	}
	if tile.Buildable() {
		if GroupHasBuildings(s, tile.Group) {
			return ErrHasBuildings
		}
	}
	return nil
}

// CanUnmortgage checks that the player may lift the mortgage on tileID.
func CanUnmortgage(s *types.Snapshot, tileID int, playerID string, money int) error {
	tile, ok := board.Get(tileID)
	if !ok {
		return ErrTileOutOfRange
	}
	if !tile.Ownable() {
		return ErrNotOwnable
	}
	p := s.Property(tileID)
	if p.Owner != playerID {
		return ErrNotOwner
	}
	if !p.Mortgaged {
		return ErrNotMortgaged
	}
	if money < UnmortgageCost(tile) {
		return ErrInsufficientFunds
	}
	return nil
}

// CanBuildHouse checks the monopoly, mortgage, even-build and funds rules.
func CanBuildHouse(s *types.Snapshot, tileID int, playerID string, money int) error {
	tile, ok := board.Get(tileID)
	if !ok {
		return ErrTileOutOfRange
	}
	if !tile.Buildable() {
		return ErrNotBuildable
	}
	p := s.Property(tileID)
	if p.Owner != playerID {
		return ErrNotOwner
	}
	if !HasMonopoly(s, playerID, tile.Group) {
		return ErrNoMonopoly
	}
	if groupMortgaged(s, tile.Group) {
		return ErrGroupMortgaged
	}
	if p.Houses >= board.MaxHouses {
		return ErrMaxBuildings
	}
	if min, _ := groupHouses(s, tile.Group); p.Houses > min {
		return ErrUnevenBuild
	}
	if money < tile.HouseCost {
		return ErrInsufficientFunds
	}
	return nil
}

// CanSellHouse checks ownership and the even-build rule for selling.
func CanSellHouse(s *types.Snapshot, tileID int, playerID string) error {
	tile, ok := board.Get(tileID)
	if !ok {
		return ErrTileOutOfRange
	}
	if !tile.Buildable() {
		return ErrNotBuildable
	}
	p := s.Property(tileID)
	if p.Owner != playerID {
		return ErrNotOwner
	}
	if p.Houses == 0 {
		return ErrNoBuildings
	}
	if groupMortgaged(s, tile.Group) {
		return ErrGroupMortgaged
	}
	if _, max := groupHouses(s, tile.Group); p.Houses < max {
		return ErrUnevenSell
	}
	return nil
}

// PassedGo reports whether moving forward from old to new crossed or landed on GO.
func PassedGo(old, new int) bool {
	return new < old
}
