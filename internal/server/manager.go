package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/emberfall/battle-server-go/internal/config"
	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/battle"
	"github.com/emberfall/battle-server-go/internal/game/cardpool"
	"github.com/emberfall/battle-server-go/internal/game/core"
	"github.com/emberfall/battle-server-go/internal/game/replay"
	"github.com/emberfall/battle-server-go/internal/game/save"
	"github.com/emberfall/battle-server-go/internal/game/view"
	"github.com/emberfall/battle-server-go/internal/repository"
)

// BattleStore is the persistence surface the manager needs. A nil store
// runs battles in memory only.
type BattleStore interface {
	Save(ctx context.Context, id string, snapshot []byte, checksum string) error
	Load(ctx context.Context, id string) ([]byte, string, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}

// BattleManager owns the live battles. Each battle is mutated under its own
// lock, so distinct battles proceed in parallel.
type BattleManager struct {
	mu      sync.RWMutex
	battles map[string]*managedBattle

	catalog *ability.Catalog
	cfg     config.BattleConfig
	store   BattleStore
	logger  *zap.Logger
}

type managedBattle struct {
	mu    sync.Mutex
	state *battle.State
}

// NewBattleManager creates the manager. store may be nil.
func NewBattleManager(catalog *ability.Catalog, cfg config.BattleConfig, store BattleStore, logger *zap.Logger) *BattleManager {
	return &BattleManager{
		battles: make(map[string]*managedBattle),
		catalog: catalog,
		cfg:     cfg,
		store:   store,
		logger:  logger,
	}
}

// Create starts a new battle between two starter decks and returns its id.
func (m *BattleManager) Create(ctx context.Context) (string, error) {
	bc := battle.Config{
		DeckOne:         cardpool.StarterDeck(),
		DeckTwo:         cardpool.StarterDeck(),
		FirstPlayer:     core.PlayerOne,
		Seed:            uint64(time.Now().UnixNano()),
		OpeningHandSize: m.cfg.OpeningHandSize,
		PointTarget:     core.Points(m.cfg.PointTarget),
		WithMulligan:    m.cfg.WithMulligan,
	}
	state, err := battle.New(bc, m.catalog, m.logger)
	if err != nil {
		return "", fmt.Errorf("failed to create battle: %w", err)
	}

	mb := &managedBattle{state: state}
	m.mu.Lock()
	m.battles[state.ID] = mb
	m.mu.Unlock()

	m.persist(ctx, mb)
	m.logger.Info("battle created", zap.String("battle_id", state.ID))
	return state.ID, nil
}

// Act executes one action on a battle and persists the result.
func (m *BattleManager) Act(ctx context.Context, battleID string, player core.PlayerName, action battle.Action) error {
	mb, err := m.get(ctx, battleID)
	if err != nil {
		return err
	}
	mb.mu.Lock()
	err = mb.state.Execute(player, action)
	finished := mb.state.HasWinner
	mb.mu.Unlock()
	if err != nil {
		return err
	}
	if finished {
		// The battle stays in memory so the final views remain served; only
		// its stored snapshot is retired.
		m.retire(ctx, mb)
		return nil
	}
	m.persist(ctx, mb)
	return nil
}

// Preload restores every stored battle into memory, typically at startup.
func (m *BattleManager) Preload(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	ids, err := m.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stored battles: %w", err)
	}
	for _, id := range ids {
		if _, err := m.get(ctx, id); err != nil {
			m.logger.Error("failed to restore stored battle",
				zap.String("battle_id", id),
				zap.Error(err),
			)
		}
	}
	m.logger.Info("stored battles restored", zap.Int("count", len(ids)))
	return nil
}

// View renders a battle for one player.
func (m *BattleManager) View(ctx context.Context, battleID string, player core.PlayerName) (view.BattleView, error) {
	mb, err := m.get(ctx, battleID)
	if err != nil {
		return view.BattleView{}, err
	}
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return view.Project(mb.state, player), nil
}

// Audit replays a battle's action log from its initial configuration and
// checks that the rebuilt state reaches the live state's checksum. A failure
// means the battle in memory no longer matches what its log says happened.
func (m *BattleManager) Audit(ctx context.Context, battleID string) error {
	mb, err := m.get(ctx, battleID)
	if err != nil {
		return err
	}
	mb.mu.Lock()
	rec := replay.RecordOf(mb.state)
	want := mb.state.Checksum()
	mb.mu.Unlock()

	if err := replay.Verify(rec, m.catalog, m.logger, want); err != nil {
		return fmt.Errorf("audit of battle %s failed: %w", battleID, err)
	}
	return nil
}

// get returns a live battle, restoring it from the store when it is not in
// memory.
func (m *BattleManager) get(ctx context.Context, battleID string) (*managedBattle, error) {
	m.mu.RLock()
	mb, ok := m.battles[battleID]
	m.mu.RUnlock()
	if ok {
		return mb, nil
	}
	if m.store == nil {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, battleID)
	}

	snapshot, _, err := m.store.Load(ctx, battleID)
	if err != nil {
		return nil, err
	}
	state, err := save.Decode(snapshot, m.catalog, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to restore battle %s: %w", battleID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.battles[battleID]; ok {
		return existing, nil
	}
	mb = &managedBattle{state: state}
	m.battles[battleID] = mb
	m.logger.Info("battle restored from store", zap.String("battle_id", battleID))
	return mb, nil
}

// retire removes a finished battle's stored snapshot.
func (m *BattleManager) retire(ctx context.Context, mb *managedBattle) {
	if m.store == nil {
		return
	}
	mb.mu.Lock()
	id := mb.state.ID
	mb.mu.Unlock()
	if err := m.store.Delete(ctx, id); err != nil {
		m.logger.Error("failed to delete finished battle",
			zap.String("battle_id", id),
			zap.Error(err),
		)
		return
	}
	m.logger.Info("finished battle removed from store", zap.String("battle_id", id))
}

func (m *BattleManager) persist(ctx context.Context, mb *managedBattle) {
	if m.store == nil {
		return
	}
	mb.mu.Lock()
	id := mb.state.ID
	snapshot, err := save.Encode(mb.state)
	checksum := mb.state.Checksum()
	mb.mu.Unlock()
	if err != nil {
		m.logger.Error("failed to encode battle snapshot",
			zap.String("battle_id", id),
			zap.Error(err),
		)
		return
	}
	if err := m.store.Save(ctx, id, snapshot, checksum); err != nil {
		m.logger.Error("failed to persist battle",
			zap.String("battle_id", id),
			zap.Error(err),
		)
	}
}
