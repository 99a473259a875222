// Package engine applies player actions to a game snapshot.
//
// Apply never mutates the snapshot it is given and never performs I/O.
// Randomness, time and id generation are injected so that results are
// reproducible in tests.
package engine

import (
	"math/rand"
	"time"

	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/google/uuid"
)

// Randomizer is the source of dice rolls and card draws.
type Randomizer interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a new unique id.
type IDGenerator func() string

type defaultRandomizer struct{}

func (defaultRandomizer) Intn(n int) int {
	return rand.Intn(n)
}

// RuleConfig holds the tunable numbers of the ruleset.
type RuleConfig struct {
	StartingMoney   int
	GoSalary        int
	Bail            int
	AuctionDuration time.Duration
	// AuctionFloor is what the last bidder standing pays when nobody bid
	AuctionFloor int
}

// DefaultRuleConfig returns the standard rules.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		StartingMoney:   1500,
		GoSalary:        200,
		Bail:            50,
		AuctionDuration: 10 * time.Second,
		AuctionFloor:    10,
	}
}

// Result is a successful transition.
type Result struct {
	Snapshot *types.Snapshot
	Message  string
}

type Engine struct {
	rules  RuleConfig
	random Randomizer
	now    Clock
	newID  IDGenerator
}

// NewEngineOptions contains options for creating a new Engine.
// Zero values fall back to the defaults.
type NewEngineOptions struct {
	Rules       *RuleConfig
	Randomizer  Randomizer
	Clock       Clock
	IDGenerator IDGenerator
}

func NewEngine(opts NewEngineOptions) *Engine {
	e := &Engine{
		rules:  DefaultRuleConfig(),
		random: opts.Randomizer,
		now:    opts.Clock,
		newID:  opts.IDGenerator,
	}
	if opts.Rules != nil {
		e.rules = *opts.Rules
	}
	if e.random == nil {
		e.random = defaultRandomizer{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	return e
}

// Rules returns the rule configuration of the engine.
func (e *Engine) Rules() RuleConfig {
	return e.rules
}

// NewSnapshot creates the initial state of a game for the given seats.
func (e *Engine) NewSnapshot(seats []types.Seat) *types.Snapshot {
	return types.NewSnapshot(seats, e.rules.StartingMoney)
}

// Apply validates the action for actorID and returns the next snapshot.
// The input snapshot is left untouched whether or not the action succeeds.
func (e *Engine) Apply(s *types.Snapshot, actorID string, action types.Action) (Result, error) {
	if s == nil {
		return Result{}, invalidTarget("game has no state")
	}
	if action == nil {
		return Result{}, invalidTarget("missing action")
	}
	idx := s.PlayerIndex(actorID)
	if idx < 0 {
		return Result{}, NewError(UnknownPlayer, "player %s is not in this game", actorID)
	}
	_, reset := action.(types.ResetGame)
	if !reset {
		if s.Finished() {
			return Result{}, ruleViolation("the game is over")
		}
		if s.Players[idx].Bankrupt {
			return Result{}, ruleViolation("you are bankrupt")
		}
	}
	if idx != s.TurnIndex && !types.AllowedOutOfTurn(action.Name()) {
		return Result{}, NewError(NotYourTurn, "it is not your turn")
	}

	next := s.Clone()
	t := &tx{
		Engine: e,
		s:      next,
		actor:  &next.Players[idx],
	}

	var err error
	switch a := action.(type) {
	case types.RollDice:
		err = t.rollDice()
	case types.BuyProperty:
		err = t.buyProperty()
	case types.DeclineBuy:
		err = t.declineBuy()
	case types.EndTurn:
		err = t.endTurn()
	case types.Mortgage:
		err = t.mortgage(a.PropertyID)
	case types.Unmortgage:
		err = t.unmortgage(a.PropertyID)
	case types.BuildHouse:
		err = t.buildHouse(a.PropertyID)
	case types.SellHouse:
		err = t.sellHouse(a.PropertyID)
	case types.PayBail:
		err = t.payBail()
	case types.UseJailFreeCard:
		err = t.useJailFreeCard()
	case types.DismissCard:
		err = t.dismissCard()
	case types.PlaceBid:
		err = t.placeBid(a.Amount)
	case types.FoldAuction:
		err = t.foldAuction()
	case types.ResolveAuction:
		err = t.resolveAuction()
	case types.ProposeTrade:
		err = t.proposeTrade(a)
	case types.CancelTrade:
		err = t.cancelTrade(a.TradeID)
	case types.RejectTrade:
		err = t.rejectTrade(a.TradeID)
	case types.AcceptTrade:
		err = t.acceptTrade(a.TradeID)
	case types.DeclareBankruptcy:
		err = t.declareBankruptcy()
	case types.ResetGame:
		err = t.resetGame()
	default:
		err = invalidTarget("unknown action %s", action.Name())
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Snapshot: next, Message: t.message}, nil
}

// tx is one action being applied to a working copy of the snapshot.
type tx struct {
	*Engine
	s       *types.Snapshot
	actor   *types.Player
	message string
	// drawn is the card line of the current roll, if a card was drawn.
	drawn string
}

// announce sets the headline of the action.
func (t *tx) announce(msg string) {
	t.message = msg
	t.s.LastAction = msg
}

// record appends lines to the game log.
func (t *tx) record(lines ...string) {
	t.s.Log = append(t.s.Log, lines...)
}

// announceAndRecord sets the headline and logs it.
func (t *tx) announceAndRecord(msg string) {
	t.announce(msg)
	t.record(msg)
}

func (t *tx) nowMillis() int64 {
	return t.now().UnixMilli()
}

func (t *tx) rollDie() int {
	return t.random.Intn(6) + 1
}
