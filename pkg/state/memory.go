package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/cbodonnell/tycoon/pkg/game/types"
)

type InMemoryStateManager struct {
	lock      sync.RWMutex
	snapshots map[string]*types.Snapshot
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{
		snapshots: make(map[string]*types.Snapshot),
	}
}

func (m *InMemoryStateManager) Get(ctx context.Context, gameID string) (*types.Snapshot, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	s, ok := m.snapshots[gameID]
	if !ok {
		return nil, ErrNoState
	}
	return s.Clone(), nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, gameID string, snapshot *types.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	m.snapshots[gameID] = snapshot.Clone()
	return nil
}

func (m *InMemoryStateManager) Delete(ctx context.Context, gameID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.snapshots, gameID)
	return nil
}

func (m *InMemoryStateManager) All(ctx context.Context) (map[string]*types.Snapshot, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	all := make(map[string]*types.Snapshot, len(m.snapshots))
	for id, s := range m.snapshots {
		all[id] = s.Clone()
	}
	return all, nil
}
