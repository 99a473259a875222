package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/tycoon/pkg/game/engine"
	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/queue"
	"github.com/cbodonnell/tycoon/pkg/repositories"
	"github.com/cbodonnell/tycoon/pkg/repositories/models"
	"github.com/cbodonnell/tycoon/pkg/state"
)

const (
	DefaultConflictRetries = 3
	DefaultLogLimit        = 100
	DefaultIdleTimeout     = 5 * time.Minute
	DefaultMaxPlayers      = 8

	requestBufferSize = 256
)

// ErrGameBusy is returned when a game has more queued requests than it can hold.
var ErrGameBusy = errors.New("game is busy")

// Outcome is a stored change to a game.
type Outcome struct {
	Game    *models.Game
	Message string
}

// ExpiredAuction is an open auction whose bidding deadline has passed.
type ExpiredAuction struct {
	GameID string
	// ActorID is the player whose turn it is.
	ActorID string
}

// mutation changes a freshly loaded game in place and returns the message
// describing the change. It may run more than once for a single request.
type mutation func(g *models.Game) (string, error)

type request struct {
	ctx    context.Context
	mutate mutation
	reply  chan response
}

type response struct {
	outcome *Outcome
	err     error
}

// GameManager serializes all writes to a game through a single goroutine
// per game and stores each change with a compare-and-swap on its version.
type GameManager struct {
	engine           *engine.Engine
	repository       repositories.Repository
	stateManager     state.StateManager
	serverEventQueue queue.Queue
	conflictRetries  int
	logLimit         int
	idleTimeout      time.Duration
	maxPlayers       int
	newCode          func() string
	newID            func() string

	baseCtx context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	actors  map[string]*actor
	wg      sync.WaitGroup
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	Engine       *engine.Engine
	Repository   repositories.Repository
	StateManager state.StateManager
	// ServerEventQueue receives a *messages.ServerSnapshot after every stored change.
	ServerEventQueue queue.Queue
	ConflictRetries  int
	LogLimit         int
	IdleTimeout      time.Duration
	MaxPlayers       int
	// CodeGenerator returns candidate room codes. Defaults to four random letters.
	CodeGenerator func() string
	// IDGenerator returns game and player ids. Defaults to uuids.
	IDGenerator func() string
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	ctx, cancel := context.WithCancel(context.Background())
	gm := &GameManager{
		engine:           opts.Engine,
		repository:       opts.Repository,
		stateManager:     opts.StateManager,
		serverEventQueue: opts.ServerEventQueue,
		conflictRetries:  opts.ConflictRetries,
		logLimit:         opts.LogLimit,
		idleTimeout:      opts.IdleTimeout,
		maxPlayers:       opts.MaxPlayers,
		newCode:          opts.CodeGenerator,
		newID:            opts.IDGenerator,
		baseCtx:          ctx,
		cancel:           cancel,
		actors:           make(map[string]*actor),
	}
	if gm.engine == nil {
		gm.engine = engine.NewEngine(engine.NewEngineOptions{})
	}
	if gm.stateManager == nil {
		gm.stateManager = state.NewInMemoryStateManager()
	}
	if gm.conflictRetries <= 0 {
		gm.conflictRetries = DefaultConflictRetries
	}
	if gm.logLimit <= 0 {
		gm.logLimit = DefaultLogLimit
	}
	if gm.idleTimeout <= 0 {
		gm.idleTimeout = DefaultIdleTimeout
	}
	if gm.maxPlayers <= 0 {
		gm.maxPlayers = DefaultMaxPlayers
	}
	if gm.newCode == nil {
		gm.newCode = randomCode
	}
	if gm.newID == nil {
		gm.newID = newUUID
	}
	return gm
}

// Start loads the games in play into the state cache and blocks until ctx
// is done, after which every game goroutine is stopped.
func (gm *GameManager) Start(ctx context.Context) error {
	games, err := gm.repository.ListGames(ctx, models.GameStatusPlaying)
	if err != nil {
		return fmt.Errorf("failed to list games in play: %v", err)
	}
	for _, g := range games {
		if err := gm.stateManager.Set(ctx, g.ID, g.Snapshot); err != nil {
			log.Error("Failed to cache game %s: %v", g.ID, err)
		}
	}
	log.Info("Loaded %d games in play", len(games))

	<-ctx.Done()
	gm.Stop()
	return nil
}

// Stop stops every game goroutine and waits for them to exit.
func (gm *GameManager) Stop() {
	gm.mu.Lock()
	gm.cancel()
	gm.mu.Unlock()
	gm.wg.Wait()
}

// Apply applies action for actorID to the game and stores the result.
func (gm *GameManager) Apply(ctx context.Context, gameID string, actorID string, action types.Action) (*Outcome, error) {
	return gm.submit(ctx, gameID, func(g *models.Game) (string, error) {
		if g.Status == models.GameStatusLobby {
			return "", engine.NewError(engine.RuleViolation, "the game has not started")
		}
		res, err := gm.engine.Apply(g.Snapshot, actorID, action)
		if err != nil {
			return "", err
		}
		g.Snapshot = res.Snapshot
		switch {
		case g.Snapshot.Finished():
			g.Status = models.GameStatusFinished
		default:
			g.Status = models.GameStatusPlaying
		}
		return res.Message, nil
	})
}

// LoadGame returns the stored game.
func (gm *GameManager) LoadGame(ctx context.Context, gameID string) (*models.Game, error) {
	return gm.repository.LoadGame(ctx, gameID)
}

// ExpiredAuctions lists the games in play whose auction deadline is at or
// before now.
func (gm *GameManager) ExpiredAuctions(ctx context.Context, now time.Time) ([]ExpiredAuction, error) {
	snapshots, err := gm.stateManager.All(ctx)
	if err != nil {
		return nil, err
	}
	expired := make([]ExpiredAuction, 0)
	for gameID, s := range snapshots {
		if s.Auction == nil || s.Finished() || len(s.Players) == 0 {
			continue
		}
		if now.UnixMilli() < s.Auction.EndTime {
			continue
		}
		expired = append(expired, ExpiredAuction{
			GameID:  gameID,
			ActorID: s.CurrentPlayer().ID,
		})
	}
	return expired, nil
}

// submit hands the mutation to the game's goroutine and waits for the result.
func (gm *GameManager) submit(ctx context.Context, gameID string, mutate mutation) (*Outcome, error) {
	req := &request{
		ctx:    ctx,
		mutate: mutate,
		reply:  make(chan response, 1),
	}
	if err := gm.enqueue(gameID, req); err != nil {
		return nil, err
	}
	select {
	case res := <-req.reply:
		return res.outcome, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-gm.baseCtx.Done():
		return nil, fmt.Errorf("game manager is stopped")
	}
}

func (gm *GameManager) enqueue(gameID string, req *request) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.baseCtx.Err() != nil {
		return fmt.Errorf("game manager is stopped")
	}
	a, ok := gm.actors[gameID]
	if !ok {
		a = &actor{
			gameID:   gameID,
			requests: make(chan *request, requestBufferSize),
			logger:   log.With("game", gameID),
		}
		gm.actors[gameID] = a
		gm.wg.Add(1)
		go func() {
			defer gm.wg.Done()
			a.run(gm.baseCtx, gm)
		}()
	}
	select {
	case a.requests <- req:
		return nil
	default:
		return ErrGameBusy
	}
}

// retire removes an idle actor. It reports false if requests arrived in
// the meantime and the actor must keep running.
func (gm *GameManager) retire(a *actor) bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	if len(a.requests) > 0 {
		return false
	}
	delete(gm.actors, a.gameID)
	return true
}

// process runs one request: load, mutate, store, publish. A version conflict
// reloads the game and runs the mutation again.
func (gm *GameManager) process(ctx context.Context, logger *log.Logger, gameID string, mutate mutation) (*Outcome, error) {
	for attempt := 0; ; attempt++ {
		g, err := gm.repository.LoadGame(ctx, gameID)
		if err != nil {
			return nil, err
		}
		expected := g.Version

		message, err := mutate(g)
		if err != nil {
			return nil, err
		}
		trimLog(g.Snapshot, gm.logLimit)

		err = gm.repository.SaveGame(ctx, g, expected)
		if repositories.IsVersionConflict(err) {
			if attempt < gm.conflictRetries {
				logger.Debug("Version %d of game is stale, retrying", expected)
				continue
			}
			return nil, engine.Wrap(engine.ConcurrencyConflict, err)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to save game: %w", err)
		}

		gm.publish(ctx, logger, g, message)
		return &Outcome{Game: g, Message: message}, nil
	}
}

// publish updates the state cache and queues the change for viewers.
func (gm *GameManager) publish(ctx context.Context, logger *log.Logger, g *models.Game, message string) {
	var err error
	if g.Status == models.GameStatusPlaying {
		err = gm.stateManager.Set(ctx, g.ID, g.Snapshot)
	} else {
		err = gm.stateManager.Delete(ctx, g.ID)
	}
	if err != nil {
		logger.Error("Failed to update state cache: %v", err)
	}

	if gm.serverEventQueue == nil {
		return
	}
	event := &messages.ServerSnapshot{
		GameID:   g.ID,
		Version:  g.Version,
		Message:  message,
		Snapshot: g.Snapshot.Clone(),
	}
	if err := gm.serverEventQueue.Enqueue(event); err != nil {
		logger.Warn("Failed to queue snapshot version %d: %v", g.Version, err)
	}
}

// trimLog keeps the newest limit entries of the game log.
func trimLog(s *types.Snapshot, limit int) {
	if s == nil || len(s.Log) <= limit {
		return
	}
	s.Log = append([]string(nil), s.Log[len(s.Log)-limit:]...)
}

type actor struct {
	gameID   string
	requests chan *request
	logger   *log.Logger
}

func (a *actor) run(ctx context.Context, gm *GameManager) {
	a.logger.Debug("Game goroutine started")
	idle := time.NewTimer(gm.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			a.drain(ctx.Err())
			return
		case req := <-a.requests:
			a.handle(gm, req)
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(gm.idleTimeout)
		case <-idle.C:
			if gm.retire(a) {
				a.logger.Debug("Game goroutine retired after %s idle", gm.idleTimeout)
				return
			}
			idle.Reset(gm.idleTimeout)
		}
	}
}

func (a *actor) handle(gm *GameManager, req *request) {
	if err := req.ctx.Err(); err != nil {
		req.reply <- response{err: err}
		return
	}
	outcome, err := gm.process(req.ctx, a.logger, a.gameID, req.mutate)
	if err != nil && engine.KindOf(err) == "" && !repositories.IsNotFound(err) {
		a.logger.Error("Failed to process request: %v", err)
	}
	req.reply <- response{outcome: outcome, err: err}
}

// drain fails every request still queued when the manager stops.
func (a *actor) drain(err error) {
	for {
		select {
		case req := <-a.requests:
			req.reply <- response{err: err}
		default:
			return
		}
	}
}
