package messages

import (
	"errors"

	"github.com/cbodonnell/tycoon/pkg/game/engine"
	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/mitchellh/mapstructure"
)

const (
	// MessageBufferSize represents the maximum size of an inbound request body
	MessageBufferSize = 64 * 1024
)

// Message types
const (
	MessageTypeServerSnapshot = "snapshot"
	MessageTypeServerError    = "error"
)

// ActionRequest is a client's request to apply an action to a game.
type ActionRequest struct {
	ActorID string                 `json:"actorId"`
	Action  string                 `json:"action"`
	Payload map[string]interface{} `json:"payload"`
}

// ActionResponse is returned when an action was applied and stored.
type ActionResponse struct {
	Snapshot *types.Snapshot `json:"snapshot"`
	Message  string          `json:"message"`
}

// ErrorResponse is returned when an action was refused.
type ErrorResponse struct {
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

// ServerSnapshot is pushed to viewers after every stored change.
type ServerSnapshot struct {
	Type     string          `json:"type"`
	GameID   string          `json:"gameId"`
	Version  int64           `json:"version"`
	Message  string          `json:"message"`
	Snapshot *types.Snapshot `json:"snapshot"`
}

type tradeSidePayload struct {
	Money      int   `json:"money"`
	Properties []int `json:"properties"`
}

type actionPayload struct {
	PropertyID     *int             `json:"propertyId"`
	Amount         *int             `json:"amount"`
	TargetPlayerID string           `json:"targetPlayerId"`
	Offering       tradeSidePayload `json:"offering"`
	Requesting     tradeSidePayload `json:"requesting"`
	TradeID        string           `json:"tradeId"`
}

func decodePayload(payload map[string]interface{}) (*actionPayload, error) {
	p := &actionPayload{}
	if len(payload) == 0 {
		return p, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, engine.NewError(engine.InvalidTarget, "malformed payload: %v", err)
	}
	return p, nil
}

func (p *actionPayload) propertyID() (int, error) {
	if p.PropertyID == nil {
		return 0, engine.NewError(engine.InvalidTarget, "missing propertyId")
	}
	return *p.PropertyID, nil
}

func side(s tradeSidePayload) types.TradeSide {
	props := s.Properties
	if props == nil {
		props = []int{}
	}
	return types.TradeSide{Money: s.Money, Properties: props}
}

// ParseAction builds the typed action named by name from a loosely typed
// payload. Unknown names and missing required fields are InvalidTarget errors.
func ParseAction(name string, payload map[string]interface{}) (types.Action, error) {
	p, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}

	switch types.ActionName(name) {
	case types.ActionRollDice:
		return types.RollDice{}, nil
	case types.ActionBuyProperty:
		return types.BuyProperty{}, nil
	case types.ActionDeclineBuy:
		return types.DeclineBuy{}, nil
	case types.ActionEndTurn:
		return types.EndTurn{}, nil
	case types.ActionPayBail:
		return types.PayBail{}, nil
	case types.ActionUseJailFreeCard:
		return types.UseJailFreeCard{}, nil
	case types.ActionDismissCard:
		return types.DismissCard{}, nil
	case types.ActionFoldAuction:
		return types.FoldAuction{}, nil
	case types.ActionResolveAuction:
		return types.ResolveAuction{}, nil
	case types.ActionDeclareBankruptcy:
		return types.DeclareBankruptcy{}, nil
	case types.ActionResetGame:
		return types.ResetGame{}, nil
	case types.ActionMortgage, types.ActionUnmortgage, types.ActionBuildHouse, types.ActionSellHouse:
		id, err := p.propertyID()
		if err != nil {
			return nil, err
		}
		switch types.ActionName(name) {
		case types.ActionMortgage:
			return types.Mortgage{PropertyID: id}, nil
		case types.ActionUnmortgage:
			return types.Unmortgage{PropertyID: id}, nil
		case types.ActionBuildHouse:
			return types.BuildHouse{PropertyID: id}, nil
		default:
			return types.SellHouse{PropertyID: id}, nil
		}
	case types.ActionPlaceBid:
		if p.Amount == nil {
			return nil, engine.NewError(engine.InvalidTarget, "missing amount")
		}
		return types.PlaceBid{Amount: *p.Amount}, nil
	case types.ActionProposeTrade:
		return types.ProposeTrade{
			TargetPlayerID: p.TargetPlayerID,
			Offering:       side(p.Offering),
			Requesting:     side(p.Requesting),
		}, nil
	case types.ActionCancelTrade:
		return types.CancelTrade{TradeID: p.TradeID}, nil
	case types.ActionRejectTrade:
		return types.RejectTrade{TradeID: p.TradeID}, nil
	case types.ActionAcceptTrade:
		return types.AcceptTrade{TradeID: p.TradeID}, nil
	}
	return nil, engine.NewError(engine.InvalidTarget, "unknown action %q", name)
}

// NewErrorResponse describes err for the client. Errors that carry no
// engine kind are reported as internal.
func NewErrorResponse(err error) ErrorResponse {
	var e *engine.Error
	if errors.As(err, &e) {
		return ErrorResponse{Reason: string(e.Kind), Detail: e.Detail}
	}
	return ErrorResponse{Reason: "Internal", Detail: err.Error()}
}
