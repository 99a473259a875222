package types

// ActionName is the wire name of an action.
type ActionName string

const (
	ActionRollDice          ActionName = "ROLL_DICE"
	ActionBuyProperty       ActionName = "BUY_PROPERTY"
	ActionDeclineBuy        ActionName = "DECLINE_BUY"
	ActionEndTurn           ActionName = "END_TURN"
	ActionMortgage          ActionName = "MORTGAGE"
	ActionUnmortgage        ActionName = "UNMORTGAGE"
	ActionBuildHouse        ActionName = "BUILD_HOUSE"
	ActionSellHouse         ActionName = "SELL_HOUSE"
	ActionPayBail           ActionName = "PAY_BAIL"
	ActionUseJailFreeCard   ActionName = "USE_GOJF"
	ActionDismissCard       ActionName = "DISMISS_CARD"
	ActionPlaceBid          ActionName = "PLACE_BID"
	ActionFoldAuction       ActionName = "FOLD_AUCTION"
	ActionResolveAuction    ActionName = "RESOLVE_AUCTION"
	ActionProposeTrade      ActionName = "PROPOSE_TRADE"
	ActionCancelTrade       ActionName = "CANCEL_TRADE"
	ActionRejectTrade       ActionName = "REJECT_TRADE"
	ActionAcceptTrade       ActionName = "ACCEPT_TRADE"
	ActionDeclareBankruptcy ActionName = "DECLARE_BANKRUPTCY"
	ActionResetGame         ActionName = "RESET_GAME"
)

// outOfTurn lists the actions any seated player may take at any time.
var outOfTurn = map[ActionName]bool{
	ActionPayBail:         true,
	ActionUseJailFreeCard: true,
	ActionPlaceBid:        true,
	ActionFoldAuction:     true,
	ActionProposeTrade:    true,
	ActionCancelTrade:     true,
	ActionRejectTrade:     true,
	ActionAcceptTrade:     true,
	ActionResetGame:       true,
}

// AllowedOutOfTurn reports whether the action may be taken by a player
// whose turn it is not.
func AllowedOutOfTurn(name ActionName) bool {
	return outOfTurn[name]
}

// Action is a request to change the game. The set of implementations is closed.
type Action interface {
	Name() ActionName
	action()
}

type RollDice struct{}
type BuyProperty struct{}
type DeclineBuy struct{}
type EndTurn struct{}
type PayBail struct{}
type UseJailFreeCard struct{}
type DismissCard struct{}
type FoldAuction struct{}
type ResolveAuction struct{}
type DeclareBankruptcy struct{}
type ResetGame struct{}

type Mortgage struct {
	PropertyID int
}

type Unmortgage struct {
	PropertyID int
}

type BuildHouse struct {
	PropertyID int
}

type SellHouse struct {
	PropertyID int
}

type PlaceBid struct {
	Amount int
}

type ProposeTrade struct {
	TargetPlayerID string
	Offering       TradeSide
	Requesting     TradeSide
}

type CancelTrade struct {
	TradeID string
}

type RejectTrade struct {
	TradeID string
}

type AcceptTrade struct {
	TradeID string
}

func (RollDice) Name() ActionName          { return ActionRollDice }
func (BuyProperty) Name() ActionName       { return ActionBuyProperty }
func (DeclineBuy) Name() ActionName        { return ActionDeclineBuy }
func (EndTurn) Name() ActionName           { return ActionEndTurn }
func (Mortgage) Name() ActionName          { return ActionMortgage }
func (Unmortgage) Name() ActionName        { return ActionUnmortgage }
func (BuildHouse) Name() ActionName        { return ActionBuildHouse }
func (SellHouse) Name() ActionName         { return ActionSellHouse }
func (PayBail) Name() ActionName           { return ActionPayBail }
func (UseJailFreeCard) Name() ActionName   { return ActionUseJailFreeCard }
func (DismissCard) Name() ActionName       { return ActionDismissCard }
func (PlaceBid) Name() ActionName          { return ActionPlaceBid }
func (FoldAuction) Name() ActionName       { return ActionFoldAuction }
func (ResolveAuction) Name() ActionName    { return ActionResolveAuction }
func (ProposeTrade) Name() ActionName      { return ActionProposeTrade }
func (CancelTrade) Name() ActionName       { return ActionCancelTrade }
func (RejectTrade) Name() ActionName       { return ActionRejectTrade }
func (AcceptTrade) Name() ActionName       { return ActionAcceptTrade }
func (DeclareBankruptcy) Name() ActionName { return ActionDeclareBankruptcy }
func (ResetGame) Name() ActionName         { return ActionResetGame }

func (RollDice) action()          {}
func (BuyProperty) action()       {}
func (DeclineBuy) action()        {}
func (EndTurn) action()           {}
func (Mortgage) action()          {}
func (Unmortgage) action()        {}
func (BuildHouse) action()        {}
func (SellHouse) action()         {}
func (PayBail) action()           {}
func (UseJailFreeCard) action()   {}
func (DismissCard) action()       {}
func (PlaceBid) action()          {}
func (FoldAuction) action()       {}
func (ResolveAuction) action()    {}
func (ProposeTrade) action()      {}
func (CancelTrade) action()       {}
func (RejectTrade) action()       {}
func (AcceptTrade) action()       {}
func (DeclareBankruptcy) action() {}
func (ResetGame) action()         {}
