package server

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberfall/battle-server-go/internal/config"
	"github.com/emberfall/battle-server-go/internal/game/battle"
	"github.com/emberfall/battle-server-go/internal/game/cardpool"
	"github.com/emberfall/battle-server-go/internal/game/core"
	"github.com/emberfall/battle-server-go/internal/repository"
)

// memoryStore is an in-memory BattleStore for tests.
type memoryStore struct {
	mu        sync.Mutex
	snapshots map[string][]byte
	checksums map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		snapshots: make(map[string][]byte),
		checksums: make(map[string]string),
	}
}

func (s *memoryStore) Save(_ context.Context, id string, snapshot []byte, checksum string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[id] = append([]byte(nil), snapshot...)
	s.checksums[id] = checksum
	return nil
}

func (s *memoryStore) Load(_ context.Context, id string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[id]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	return snapshot, s.checksums[id], nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, id)
	delete(s.checksums, id)
	return nil
}

func (s *memoryStore) List(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	return ids, nil
}

func testBattleConfig() config.BattleConfig {
	return config.BattleConfig{PointTarget: 25, OpeningHandSize: 5}
}

func newTestManager(t *testing.T, store BattleStore) *BattleManager {
	t.Helper()
	return NewBattleManager(cardpool.Catalog(), testBattleConfig(), store, zap.NewNop())
}

func TestManagerCreateActView(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()

	id, err := m.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	v, err := m.View(ctx, id, core.PlayerOne)
	require.NoError(t, err)
	assert.Equal(t, id, v.BattleID)
	assert.Equal(t, 1, v.Turn)
	assert.Equal(t, 5, v.You.HandCount)
	assert.Nil(t, v.Opponent.Hand)

	require.NoError(t, m.Act(ctx, id, core.PlayerOne, battle.EndTurn()))

	v, err = m.View(ctx, id, core.PlayerTwo)
	require.NoError(t, err)
	assert.Equal(t, "ENDING", v.Phase)
	assert.Contains(t, v.LegalActions, battle.StartNextTurn().String())
}

func TestManagerActRejectsIllegalAction(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()
	id, err := m.Create(ctx)
	require.NoError(t, err)

	err = m.Act(ctx, id, core.PlayerTwo, battle.PassPriority())
	assert.ErrorIs(t, err, battle.ErrIllegalAction)
}

func TestManagerUnknownBattle(t *testing.T) {
	m := newTestManager(t, nil)
	_, err := m.View(context.Background(), "missing", core.PlayerOne)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestManagerAuditReplaysActionLog(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()
	id, err := m.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Act(ctx, id, core.PlayerOne, battle.EndTurn()))
	require.NoError(t, m.Act(ctx, id, core.PlayerTwo, battle.StartNextTurn()))

	assert.NoError(t, m.Audit(ctx, id))
}

func TestManagerAuditUnknownBattle(t *testing.T) {
	m := newTestManager(t, nil)
	err := m.Audit(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestManagerPersistsAndRestores(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	first := newTestManager(t, store)
	id, err := first.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, first.Act(ctx, id, core.PlayerOne, battle.EndTurn()))
	require.NoError(t, first.Act(ctx, id, core.PlayerTwo, battle.StartNextTurn()))

	// A fresh manager sharing the store restores the battle on first use.
	second := newTestManager(t, store)
	v, err := second.View(ctx, id, core.PlayerTwo)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Turn)
	assert.Equal(t, "PLAYER_TWO", v.ActivePlayer)

	// The restored battle is live.
	require.NoError(t, second.Act(ctx, id, core.PlayerTwo, battle.EndTurn()))
}

func TestManagerPreloadWarmsStoredBattles(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	first := newTestManager(t, store)
	one, err := first.Create(ctx)
	require.NoError(t, err)
	two, err := first.Create(ctx)
	require.NoError(t, err)

	second := newTestManager(t, store)
	require.NoError(t, second.Preload(ctx))

	second.mu.RLock()
	_, hasOne := second.battles[one]
	_, hasTwo := second.battles[two]
	second.mu.RUnlock()
	assert.True(t, hasOne)
	assert.True(t, hasTwo)
}

func TestManagerRetiresFinishedBattle(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	m := newTestManager(t, store)
	id, err := m.Create(ctx)
	require.NoError(t, err)

	// Put player two on the brink: their next judgment meets the target.
	m.mu.RLock()
	mb := m.battles[id]
	m.mu.RUnlock()
	mb.mu.Lock()
	mb.state.Players[core.PlayerTwo].Points = core.Points(testBattleConfig().PointTarget)
	mb.mu.Unlock()

	require.NoError(t, m.Act(ctx, id, core.PlayerOne, battle.EndTurn()))
	require.NoError(t, m.Act(ctx, id, core.PlayerTwo, battle.StartNextTurn()))

	// The snapshot is gone, but the final state is still served.
	_, _, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	v, err := m.View(ctx, id, core.PlayerTwo)
	require.NoError(t, err)
	assert.Equal(t, "PLAYER_TWO", v.Winner)
}
