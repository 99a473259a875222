package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/queue"
)

// Broadcaster delivers a payload to every viewer of a game.
type Broadcaster interface {
	Broadcast(ctx context.Context, gameID string, payload []byte)
}

type BroadcastMessageWorker struct {
	broadcaster      Broadcaster
	serverEventQueue queue.Queue
	interval         time.Duration
}

type NewBroadcastMessageWorkerOptions struct {
	Broadcaster      Broadcaster
	ServerEventQueue queue.Queue
	Interval         time.Duration
}

// NewBroadcastMessageWorker creates a new BroadcastMessageWorker.
// The worker drains stored changes from the queue and pushes them to viewers.
func NewBroadcastMessageWorker(opts NewBroadcastMessageWorkerOptions) *BroadcastMessageWorker {
	w := &BroadcastMessageWorker{
		broadcaster:      opts.Broadcaster,
		serverEventQueue: opts.ServerEventQueue,
		interval:         opts.Interval,
	}
	if w.interval <= 0 {
		w.interval = 50 * time.Millisecond
	}
	return w
}

func (w *BroadcastMessageWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *BroadcastMessageWorker) flush(ctx context.Context) {
	pending, err := w.serverEventQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read server events: %v", err)
		return
	}
	for _, item := range pending {
		switch event := item.(type) {
		case *messages.ServerSnapshot:
			payload, err := messages.SerializeServerSnapshot(event)
			if err != nil {
				log.Error("Failed to serialize snapshot of game %s: %v", event.GameID, err)
				continue
			}
			w.broadcaster.Broadcast(ctx, event.GameID, payload)
		default:
			log.Warn("Unhandled server event type %T", item)
		}
	}
}
