package workers

import (
	"context"
	"encoding/json"
	"testing"

	mocks "github.com/cbodonnell/tycoon/mocks/github.com/cbodonnell/tycoon/pkg/workers"
	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBroadcastMessageWorker_flush(t *testing.T) {
	q := queue.NewInMemoryQueue(10)
	snapshot := types.NewSnapshot([]types.Seat{{ID: "a", Name: "Alice"}}, 1500)
	require.NoError(t, q.Enqueue(&messages.ServerSnapshot{GameID: "g1", Version: 4, Message: "Alice bought Boardwalk", Snapshot: snapshot}))
	require.NoError(t, q.Enqueue("not an event"))
	require.NoError(t, q.Enqueue(&messages.ServerSnapshot{GameID: "g2", Version: 1, Snapshot: snapshot}))

	var payloads [][]byte
	broadcaster := mocks.NewBroadcaster(t)
	broadcaster.EXPECT().Broadcast(mock.Anything, "g1", mock.Anything).
		Run(func(ctx context.Context, gameID string, payload []byte) { payloads = append(payloads, payload) }).
		Return().Once()
	broadcaster.EXPECT().Broadcast(mock.Anything, "g2", mock.Anything).Return().Once()

	w := NewBroadcastMessageWorker(NewBroadcastMessageWorkerOptions{
		Broadcaster:      broadcaster,
		ServerEventQueue: q,
	})
	w.flush(context.Background())

	assert.Equal(t, 0, q.Size())
	require.Len(t, payloads, 1)
	var decoded messages.ServerSnapshot
	require.NoError(t, json.Unmarshal(payloads[0], &decoded))
	assert.Equal(t, messages.MessageTypeServerSnapshot, decoded.Type)
	assert.Equal(t, int64(4), decoded.Version)
	assert.Equal(t, "Alice bought Boardwalk", decoded.Message)
	assert.Equal(t, "Alice", decoded.Snapshot.Players[0].Name)
}

func TestBroadcastMessageWorker_flushEmpty(t *testing.T) {
	w := NewBroadcastMessageWorker(NewBroadcastMessageWorkerOptions{
		Broadcaster:      mocks.NewBroadcaster(t),
		ServerEventQueue: queue.NewInMemoryQueue(1),
	})
	w.flush(context.Background())
}
