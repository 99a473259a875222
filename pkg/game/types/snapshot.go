package types

import "slices"

// Deck identifies one of the two card decks.
type Deck string

const (
	DeckChance         Deck = "CHANCE"
	DeckCommunityChest Deck = "COMMUNITY_CHEST"
)

// Card is a drawn card as it is shown to players.
// The effect of a card is looked up by ID in the cards package.
type Card struct {
	ID   string `json:"id"`
	Deck Deck   `json:"deck"`
	Text string `json:"text"`
}

// Player is one seat at the table. Seat order never changes.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Money     int    `json:"money"`
	Position  int    `json:"position"`
	InJail    bool   `json:"inJail"`
	JailTurns int    `json:"jailTurns"`
	HeldCards []Card `json:"heldCards"`
	Bankrupt  bool   `json:"bankrupt"`
}

// Property is the mutable state of an ownable tile.
// Houses counts 0-4 houses, 5 means a hotel.
type Property struct {
	Owner     string `json:"owner,omitempty"`
	Houses    int    `json:"houses"`
	Mortgaged bool   `json:"mortgaged"`
}

// Owned reports whether the property has an owner.
func (p Property) Owned() bool {
	return p.Owner != ""
}

// Auction is the single open bidding round of a game.
type Auction struct {
	PropertyID    int      `json:"propertyId"`
	HighestBid    int      `json:"highestBid"`
	HighestBidder string   `json:"highestBidder,omitempty"`
	ActiveBidders []string `json:"activeBidders"`
	// EndTime is the bidding deadline in unix milliseconds
	EndTime int64 `json:"endTime"`
}

// HasBidder reports whether the player is still bidding.
func (a *Auction) HasBidder(playerID string) bool {
	for _, id := range a.ActiveBidders {
		if id == playerID {
			return true
		}
	}
	return false
}

// RemoveBidder drops the player from the active bidders.
func (a *Auction) RemoveBidder(playerID string) {
	kept := a.ActiveBidders[:0]
	for _, id := range a.ActiveBidders {
		if id != playerID {
			kept = append(kept, id)
		}
	}
	a.ActiveBidders = kept
}

type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCancelled TradeStatus = "cancelled"
)

// TradeSide is what one party gives up in a trade.
type TradeSide struct {
	Money      int   `json:"money"`
	Properties []int `json:"properties"`
}

// Trade is a proposal from one player to another.
type Trade struct {
	ID           string      `json:"id"`
	FromPlayerID string      `json:"fromPlayerId"`
	ToPlayerID   string      `json:"toPlayerId"`
	Offering     TradeSide   `json:"offering"`
	Requesting   TradeSide   `json:"requesting"`
	Status       TradeStatus `json:"status"`
	CreatedAt    int64       `json:"createdAt"`
}

// Involves reports whether the player is either party of the trade.
func (t Trade) Involves(playerID string) bool {
	return t.FromPlayerID == playerID || t.ToPlayerID == playerID
}

// Snapshot is the complete state of one game.
type Snapshot struct {
	TurnIndex   int              `json:"turnIndex"`
	Players     []Player         `json:"players"`
	Properties  map[int]Property `json:"properties"`
	Dice        [2]int           `json:"dice"`
	HasRolled   bool             `json:"hasRolled"`
	// RollAgain is set while a doubles roll owes the current player another roll.
	RollAgain   bool             `json:"rollAgain"`
	CurrentCard *Card            `json:"currentCard"`
	Auction     *Auction         `json:"auction"`
	Trades      []Trade          `json:"trades"`
	Winner      *string          `json:"winner"`
	LastAction  string           `json:"lastAction"`
	Log         []string         `json:"log"`
}

// Seat is a player identity used to create a snapshot.
type Seat struct {
	ID   string
	Name string
}

// NewSnapshot creates the initial state of a game for the given seats.
func NewSnapshot(seats []Seat, startingMoney int) *Snapshot {
	s := &Snapshot{
		Players:    make([]Player, 0, len(seats)),
		Properties: make(map[int]Property),
		Dice:       [2]int{1, 1},
		Trades:     []Trade{},
		LastAction: "Game created",
		Log:        []string{"Game created"},
	}
	for _, seat := range seats {
		s.AddPlayer(seat, startingMoney)
	}
	return s
}

// AddPlayer seats a new player at the end of the table.
func (s *Snapshot) AddPlayer(seat Seat, startingMoney int) {
	s.Players = append(s.Players, Player{
		ID:        seat.ID,
		Name:      seat.Name,
		Money:     startingMoney,
		HeldCards: []Card{},
	})
}

// PlayerIndex returns the seat index of the player, or -1.
func (s *Snapshot) PlayerIndex(playerID string) int {
	for i := range s.Players {
		if s.Players[i].ID == playerID {
			return i
		}
	}
	return -1
}

// Player returns a pointer to the player with the given id.
func (s *Snapshot) Player(playerID string) (*Player, bool) {
	idx := s.PlayerIndex(playerID)
	if idx < 0 {
		return nil, false
	}
	return &s.Players[idx], true
}

// CurrentPlayer returns the player whose turn it is.
func (s *Snapshot) CurrentPlayer() *Player {
	return &s.Players[s.TurnIndex]
}

// Property returns the state of a tile. Unknown tiles report no owner.
func (s *Snapshot) Property(tileID int) Property {
	return s.Properties[tileID]
}

// SetProperty stores the state of a tile.
func (s *Snapshot) SetProperty(tileID int, p Property) {
	if s.Properties == nil {
		s.Properties = make(map[int]Property)
	}
	s.Properties[tileID] = p
}

// ActivePlayers returns the players that are not bankrupt.
func (s *Snapshot) ActivePlayers() []Player {
	var active []Player
	for _, p := range s.Players {
		if !p.Bankrupt {
			active = append(active, p)
		}
	}
	return active
}

// TradeIndex returns the index of the trade with the given id, or -1.
func (s *Snapshot) TradeIndex(tradeID string) int {
	for i := range s.Trades {
		if s.Trades[i].ID == tradeID {
			return i
		}
	}
	return -1
}

// RemoveTrade deletes the trade at index i.
func (s *Snapshot) RemoveTrade(i int) {
	s.Trades = append(s.Trades[:i], s.Trades[i+1:]...)
}

// Finished reports whether a winner has been declared.
func (s *Snapshot) Finished() bool {
	return s.Winner != nil
}

// Clone returns a deep copy of the snapshot. Nil slices and maps stay nil.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		TurnIndex:  s.TurnIndex,
		Players:    slices.Clone(s.Players),
		Dice:       s.Dice,
		HasRolled:  s.HasRolled,
		RollAgain:  s.RollAgain,
		Trades:     slices.Clone(s.Trades),
		LastAction: s.LastAction,
		Log:        slices.Clone(s.Log),
	}
	for i := range c.Players {
		c.Players[i].HeldCards = slices.Clone(c.Players[i].HeldCards)
	}
	if s.Properties != nil {
		c.Properties = make(map[int]Property, len(s.Properties))
		for id, p := range s.Properties {
			c.Properties[id] = p
		}
	}
	if s.CurrentCard != nil {
		card := *s.CurrentCard
		c.CurrentCard = &card
	}
	if s.Auction != nil {
		a := *s.Auction
		a.ActiveBidders = slices.Clone(s.Auction.ActiveBidders)
		c.Auction = &a
	}
	for i := range c.Trades {
		c.Trades[i].Offering.Properties = slices.Clone(c.Trades[i].Offering.Properties)
		c.Trades[i].Requesting.Properties = slices.Clone(c.Trades[i].Requesting.Properties)
	}
	if s.Winner != nil {
		w := *s.Winner
		c.Winner = &w
	}
	return c
}
