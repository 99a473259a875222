package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/tycoon/pkg/game"
	"github.com/cbodonnell/tycoon/pkg/game/engine"
	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/log"
)

// AuctionResolver finds auctions past their deadline and applies actions.
// *game.GameManager satisfies it.
type AuctionResolver interface {
	ExpiredAuctions(ctx context.Context, now time.Time) ([]game.ExpiredAuction, error)
	Apply(ctx context.Context, gameID string, actorID string, action types.Action) (*game.Outcome, error)
}

type AuctionWorker struct {
	resolver AuctionResolver
	interval time.Duration
	now      func() time.Time
	logger   *log.Logger
}

type NewAuctionWorkerOptions struct {
	Resolver AuctionResolver
	Interval time.Duration
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// NewAuctionWorker creates a new AuctionWorker.
// The worker periodically closes auctions whose bidding deadline has passed.
func NewAuctionWorker(opts NewAuctionWorkerOptions) *AuctionWorker {
	w := &AuctionWorker{
		resolver: opts.Resolver,
		interval: opts.Interval,
		now:      opts.Clock,
		logger:   log.With("worker", "auction"),
	}
	if w.interval <= 0 {
		w.interval = time.Second
	}
	if w.now == nil {
		w.now = time.Now
	}
	return w
}

func (w *AuctionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep resolves every expired auction once.
func (w *AuctionWorker) sweep(ctx context.Context) {
	expired, err := w.resolver.ExpiredAuctions(ctx, w.now())
	if err != nil {
		w.logger.Error("Failed to list expired auctions: %v", err)
		return
	}
	for _, a := range expired {
		out, err := w.resolver.Apply(ctx, a.GameID, a.ActorID, types.ResolveAuction{})
		switch engine.KindOf(err) {
		case "":
			if err != nil {
				w.logger.Error("Failed to resolve auction in game %s: %v", a.GameID, err)
				continue
			}
			w.logger.Debug("Resolved auction in game %s: %s", a.GameID, out.Message)
		case engine.RuleViolation, engine.TimingViolation:
			// another request closed or extended it first
			w.logger.Debug("Auction in game %s not resolved: %v", a.GameID, err)
		default:
			w.logger.Warn("Auction in game %s not resolved: %v", a.GameID, err)
		}
	}
}
