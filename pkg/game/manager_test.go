package game

import (
	"context"
	"sync"
	"testing"
	"time"

	queuemocks "github.com/cbodonnell/tycoon/mocks/github.com/cbodonnell/tycoon/pkg/queue"
	repomocks "github.com/cbodonnell/tycoon/mocks/github.com/cbodonnell/tycoon/pkg/repositories"
	"github.com/cbodonnell/tycoon/pkg/game/engine"
	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/queue"
	"github.com/cbodonnell/tycoon/pkg/repositories"
	"github.com/cbodonnell/tycoon/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// scripted returns die faces in order, then ones.
type scripted struct {
	mu    sync.Mutex
	faces []int
}

func (r *scripted) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.faces) == 0 {
		return 0
	}
	f := r.faces[0]
	r.faces = r.faces[1:]
	return (f - 1) % n
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func codes(cs ...string) func() string {
	var mu sync.Mutex
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		c := cs[0]
		if len(cs) > 1 {
			cs = cs[1:]
		}
		return c
	}
}

type harness struct {
	manager *GameManager
	repo    repositories.Repository
	events  *queue.InMemoryQueue
	random  *scripted
	clock   *clock
}

func newHarness(t *testing.T, opts NewGameManagerOptions) *harness {
	t.Helper()
	h := &harness{
		repo:   repositories.NewMemoryRepository(),
		events: queue.NewInMemoryQueue(100),
		random: &scripted{},
		clock:  &clock{now: time.UnixMilli(1_700_000_000_000)},
	}
	opts.Engine = engine.NewEngine(engine.NewEngineOptions{
		Randomizer: h.random,
		Clock:      h.clock.Now,
	})
	if opts.Repository == nil {
		opts.Repository = h.repo
	}
	opts.ServerEventQueue = h.events
	if opts.CodeGenerator == nil {
		opts.CodeGenerator = codes("ABCD", "EFGH", "IJKL")
	}
	h.manager = NewGameManager(opts)
	t.Cleanup(h.manager.Stop)
	return h
}

// started creates a game with the named players and starts it.
func (h *harness) started(t *testing.T, names ...string) (*models.Game, []string) {
	t.Helper()
	ctx := context.Background()
	g, hostID, err := h.manager.CreateGame(ctx, names[0])
	require.NoError(t, err)
	ids := []string{hostID}
	for _, name := range names[1:] {
		_, id, err := h.manager.JoinGame(ctx, g.Code, name)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	g, err = h.manager.StartGame(ctx, g.ID)
	require.NoError(t, err)
	h.events.ClearQueue()
	return g, ids
}

func TestLobbyFlow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, NewGameManagerOptions{})

	g, hostID, err := h.manager.CreateGame(ctx, "  Alice ")
	require.NoError(t, err)
	assert.Equal(t, "ABCD", g.Code)
	assert.Equal(t, models.GameStatusLobby, g.Status)
	require.Len(t, g.Snapshot.Players, 1)
	assert.Equal(t, "Alice", g.Snapshot.Players[0].Name)
	assert.Equal(t, hostID, g.Snapshot.Players[0].ID)

	joined, bobID, err := h.manager.JoinGame(ctx, "abcd", "Bob")
	require.NoError(t, err)
	require.Len(t, joined.Snapshot.Players, 2)
	assert.Equal(t, bobID, joined.Snapshot.Players[1].ID)
	assert.Equal(t, 1500, joined.Snapshot.Players[1].Money)
	assert.Equal(t, "Bob joined the game", joined.Snapshot.LastAction)

	started, err := h.manager.StartGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusPlaying, started.Status)
	assert.Equal(t, "Game Started!", started.Snapshot.LastAction)
	assert.Equal(t, int64(3), started.Version)

	_, _, err = h.manager.JoinGame(ctx, "ABCD", "Carol")
	assert.Equal(t, engine.RuleViolation, engine.KindOf(err))

	_, err = h.manager.StartGame(ctx, g.ID)
	assert.Equal(t, engine.RuleViolation, engine.KindOf(err))

	events, err := h.events.ReadAllMessages()
	require.NoError(t, err)
	require.Len(t, events, 2)
	last := events[1].(*messages.ServerSnapshot)
	assert.Equal(t, g.ID, last.GameID)
	assert.Equal(t, int64(3), last.Version)
	assert.Equal(t, "Game Started!", last.Message)
}

func TestCreateGameRetriesTakenCodes(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, NewGameManagerOptions{CodeGenerator: codes("AAAA", "AAAA", "AAAA", "BBBB")})

	first, _, err := h.manager.CreateGame(ctx, "Alice")
	require.NoError(t, err)
	second, _, err := h.manager.CreateGame(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, "AAAA", first.Code)
	assert.Equal(t, "BBBB", second.Code)

	h = newHarness(t, NewGameManagerOptions{CodeGenerator: codes("ZZZZ")})
	_, _, err = h.manager.CreateGame(ctx, "Alice")
	require.NoError(t, err)
	_, _, err = h.manager.CreateGame(ctx, "Bob")
	assert.Error(t, err)
}

func TestLobbyRejections(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, NewGameManagerOptions{MaxPlayers: 2})

	_, _, err := h.manager.CreateGame(ctx, "   ")
	assert.Equal(t, engine.InvalidTarget, engine.KindOf(err))

	g, hostID, err := h.manager.CreateGame(ctx, "Alice")
	require.NoError(t, err)

	_, err = h.manager.StartGame(ctx, g.ID)
	assert.Equal(t, engine.RuleViolation, engine.KindOf(err), "one player cannot start")

	_, err = h.manager.Apply(ctx, g.ID, hostID, types.RollDice{})
	assert.Equal(t, engine.RuleViolation, engine.KindOf(err), "actions wait for the start")

	_, _, err = h.manager.JoinGame(ctx, "NOPE", "Bob")
	assert.True(t, repositories.IsNotFound(err))

	_, _, err = h.manager.JoinGame(ctx, g.Code, "")
	assert.Equal(t, engine.InvalidTarget, engine.KindOf(err))

	_, _, err = h.manager.JoinGame(ctx, g.Code, "Bob")
	require.NoError(t, err)
	_, _, err = h.manager.JoinGame(ctx, g.Code, "Carol")
	assert.Equal(t, engine.RuleViolation, engine.KindOf(err), "table is full")
}

func TestApplyStoresAndPublishes(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, NewGameManagerOptions{})
	g, ids := h.started(t, "Alice", "Bob")
	h.random.faces = []int{1, 2}

	out, err := h.manager.Apply(ctx, g.ID, ids[0], types.RollDice{})
	require.NoError(t, err)
	assert.Equal(t, "Alice rolled 3 to Baltic Avenue", out.Message)
	assert.Equal(t, g.Version+1, out.Game.Version)

	stored, err := h.manager.LoadGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Snapshot.Players[0].Position)
	assert.Equal(t, out.Game.Version, stored.Version)

	events, err := h.events.ReadAllMessages()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, out.Message, events[0].(*messages.ServerSnapshot).Message)

	_, err = h.manager.Apply(ctx, g.ID, ids[1], types.RollDice{})
	assert.Equal(t, engine.NotYourTurn, engine.KindOf(err))
	_, err = h.manager.Apply(ctx, g.ID, "stranger", types.RollDice{})
	assert.Equal(t, engine.UnknownPlayer, engine.KindOf(err))

	unchanged, err := h.manager.LoadGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Version, unchanged.Version, "refused actions are not stored")
}

func TestApplyTrimsLog(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, NewGameManagerOptions{LogLimit: 3})
	g, ids := h.started(t, "Alice", "Bob")

	for i := 0; i < 5; i++ {
		_, err := h.manager.Apply(ctx, g.ID, ids[0], types.ProposeTrade{
			TargetPlayerID: ids[1],
			Offering:       types.TradeSide{Money: 1, Properties: []int{}},
			Requesting:     types.TradeSide{Properties: []int{}},
		})
		require.NoError(t, err)
	}

	stored, err := h.manager.LoadGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Snapshot.Log, 3)
	assert.Len(t, stored.Snapshot.Trades, 5)
}

func TestApplySerializesConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, NewGameManagerOptions{})
	g, ids := h.started(t, "Alice", "Bob")

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(from, to string) {
			defer wg.Done()
			_, err := h.manager.Apply(ctx, g.ID, from, types.ProposeTrade{
				TargetPlayerID: to,
				Offering:       types.TradeSide{Money: 1, Properties: []int{}},
				Requesting:     types.TradeSide{Properties: []int{}},
			})
			assert.NoError(t, err)
		}(ids[i%2], ids[(i+1)%2])
	}
	wg.Wait()

	stored, err := h.manager.LoadGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Snapshot.Trades, writers)
	assert.Equal(t, g.Version+writers, stored.Version)
}

func playingGame(id string, version int64) *models.Game {
	return &models.Game{
		ID:      id,
		Code:    "PLAY",
		Status:  models.GameStatusPlaying,
		Version: version,
		Snapshot: types.NewSnapshot([]types.Seat{
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bob"},
		}, 1500),
	}
}

func TestApplyRetriesVersionConflicts(t *testing.T) {
	ctx := context.Background()
	repo := repomocks.NewRepository(t)
	loads := 0
	repo.EXPECT().LoadGame(mock.Anything, "g1").RunAndReturn(func(ctx context.Context, id string) (*models.Game, error) {
		loads++
		return playingGame(id, int64(4+loads)), nil
	}).Times(2)
	repo.EXPECT().SaveGame(mock.Anything, mock.Anything, int64(5)).Return(&repositories.ErrVersionConflict{Expected: 5}).Once()
	repo.EXPECT().SaveGame(mock.Anything, mock.Anything, int64(6)).Return(nil).Once()

	events := queuemocks.NewQueue(t)
	events.EXPECT().Enqueue(mock.AnythingOfType("*messages.ServerSnapshot")).Return(nil).Once()

	gm := NewGameManager(NewGameManagerOptions{
		Repository:       repo,
		ServerEventQueue: events,
		Engine:           engine.NewEngine(engine.NewEngineOptions{Randomizer: &scripted{faces: []int{1, 2, 1, 2}}}),
	})
	defer gm.Stop()

	out, err := gm.Apply(ctx, "g1", "a", types.RollDice{})
	require.NoError(t, err)
	assert.Equal(t, "Alice rolled 3 to Baltic Avenue", out.Message)
}

func TestApplyGivesUpAfterConflictRetries(t *testing.T) {
	ctx := context.Background()
	repo := repomocks.NewRepository(t)
	repo.EXPECT().LoadGame(mock.Anything, "g1").RunAndReturn(func(ctx context.Context, id string) (*models.Game, error) {
		return playingGame(id, 7), nil
	}).Times(3)
	repo.EXPECT().SaveGame(mock.Anything, mock.Anything, int64(7)).Return(&repositories.ErrVersionConflict{Expected: 7}).Times(3)

	gm := NewGameManager(NewGameManagerOptions{
		Repository:      repo,
		ConflictRetries: 2,
	})
	defer gm.Stop()

	_, err := gm.Apply(ctx, "g1", "a", types.ProposeTrade{
		TargetPlayerID: "b",
		Offering:       types.TradeSide{Money: 1},
	})
	assert.Equal(t, engine.ConcurrencyConflict, engine.KindOf(err))
	assert.True(t, repositories.IsVersionConflict(err))
}

func TestExpiredAuctions(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, NewGameManagerOptions{})
	g, ids := h.started(t, "Alice", "Bob")
	h.random.faces = []int{1, 2}

	_, err := h.manager.Apply(ctx, g.ID, ids[0], types.RollDice{})
	require.NoError(t, err)
	_, err = h.manager.Apply(ctx, g.ID, ids[0], types.DeclineBuy{})
	require.NoError(t, err)

	due, err := h.manager.ExpiredAuctions(ctx, h.clock.Now())
	require.NoError(t, err)
	assert.Empty(t, due)

	h.clock.Advance(10 * time.Second)
	due, err = h.manager.ExpiredAuctions(ctx, h.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, []ExpiredAuction{{GameID: g.ID, ActorID: ids[0]}}, due)

	out, err := h.manager.Apply(ctx, g.ID, ids[0], types.ResolveAuction{})
	require.NoError(t, err)
	assert.Nil(t, out.Game.Snapshot.Auction)

	due, err = h.manager.ExpiredAuctions(ctx, h.clock.Now())
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestFinishedGameLeavesCacheAndResetReturnsToPlay(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, NewGameManagerOptions{})
	g, ids := h.started(t, "Alice", "Bob")

	out, err := h.manager.Apply(ctx, g.ID, ids[0], types.DeclareBankruptcy{})
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusFinished, out.Game.Status)
	_, err = h.manager.stateManager.Get(ctx, g.ID)
	assert.Error(t, err)

	_, err = h.manager.Apply(ctx, g.ID, ids[1], types.RollDice{})
	assert.Equal(t, engine.RuleViolation, engine.KindOf(err))

	out, err = h.manager.Apply(ctx, g.ID, ids[1], types.ResetGame{})
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusPlaying, out.Game.Status)
	_, err = h.manager.stateManager.Get(ctx, g.ID)
	assert.NoError(t, err)
}

func TestIdleGameGoroutineRetires(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, NewGameManagerOptions{IdleTimeout: 10 * time.Millisecond})
	g, ids := h.started(t, "Alice", "Bob")

	actors := func() int {
		h.manager.mu.Lock()
		defer h.manager.mu.Unlock()
		return len(h.manager.actors)
	}
	assert.Eventually(t, func() bool { return actors() == 0 }, time.Second, 5*time.Millisecond)

	_, err := h.manager.Apply(ctx, g.ID, ids[0], types.DeclareBankruptcy{})
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return actors() == 0 }, time.Second, 5*time.Millisecond)
}

func TestStartWarmsCache(t *testing.T) {
	h := newHarness(t, NewGameManagerOptions{})
	g, _ := h.started(t, "Alice", "Bob")

	other := NewGameManager(NewGameManagerOptions{Repository: h.repo})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- other.Start(ctx) }()

	assert.Eventually(t, func() bool {
		_, err := other.stateManager.Get(context.Background(), g.ID)
		return err == nil
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestTrimLog(t *testing.T) {
	s := &types.Snapshot{Log: []string{"a", "b", "c", "d"}}
	trimLog(s, 2)
	assert.Equal(t, []string{"c", "d"}, s.Log)
	trimLog(s, 5)
	assert.Equal(t, []string{"c", "d"}, s.Log)
	trimLog(nil, 1)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABCD", NormalizeCode(" abCd "))
	assert.Len(t, randomCode(), codeLength)
}
