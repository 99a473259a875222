package messages

import (
	"encoding/json"
	"testing"

	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeSnapshot(t *testing.T) {
	winner := "b"
	tests := []struct {
		name  string
		state func() *types.Snapshot
	}{
		{
			name: "new game",
			state: func() *types.Snapshot {
				return types.NewSnapshot([]types.Seat{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}}, 1500)
			},
		},
		{
			name: "game in progress",
			state: func() *types.Snapshot {
				s := types.NewSnapshot([]types.Seat{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}}, 1500)
				s.SetProperty(1, types.Property{Owner: "a", Houses: 2})
				s.SetProperty(5, types.Property{Owner: "b", Mortgaged: true})
				s.Auction = &types.Auction{PropertyID: 3, HighestBid: 40, HighestBidder: "b", ActiveBidders: []string{"a", "b"}, EndTime: 1234}
				s.Trades = append(s.Trades, types.Trade{
					ID:           "t1",
					FromPlayerID: "a",
					ToPlayerID:   "b",
					Offering:     types.TradeSide{Money: 100, Properties: []int{1}},
					Requesting:   types.TradeSide{Properties: []int{5}},
					Status:       types.TradePending,
				})
				s.Winner = &winner
				s.Log = append(s.Log, "Alice bought Mediterranean Avenue")
				return s
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.state()
			b, err := EncodeSnapshot(want)
			require.NoError(t, err)

			got, err := DecodeSnapshot(b)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	_, err := DecodeSnapshot([]byte("not zstd"))
	assert.Error(t, err)
}

func TestSerializeServerSnapshot(t *testing.T) {
	s := types.NewSnapshot([]types.Seat{{ID: "a", Name: "Alice"}}, 1500)
	b, err := SerializeServerSnapshot(&ServerSnapshot{GameID: "g1", Version: 3, Message: "hi", Snapshot: s})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, MessageTypeServerSnapshot, decoded["type"])
	assert.Equal(t, "g1", decoded["gameId"])
	assert.Equal(t, float64(3), decoded["version"])
}
