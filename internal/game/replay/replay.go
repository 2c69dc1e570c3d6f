// Package replay rebuilds battles from their recorded action logs. Because
// the engine is deterministic for a fixed seed, replaying a log against the
// same configuration reproduces the battle state exactly, which is how
// saved games are audited and divergence between peers is diagnosed.
package replay

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/battle"
)

// Record is a replayable battle: its initial configuration plus every
// accepted action in order.
type Record struct {
	Config  battle.Config
	Actions []battle.LoggedAction
}

// RecordOf captures the replayable content of a live battle.
func RecordOf(s *battle.State) Record {
	return Record{
		Config:  s.Config,
		Actions: append([]battle.LoggedAction(nil), s.ActionLog...),
	}
}

// Run replays a record from the start and returns the resulting battle. An
// action the rebuilt battle rejects means the record is corrupt or was
// produced by a different engine revision.
func Run(rec Record, catalog *ability.Catalog, logger *zap.Logger) (*battle.State, error) {
	s, err := battle.New(rec.Config, catalog, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild battle: %w", err)
	}
	for i, logged := range rec.Actions {
		if err := s.Execute(logged.Player, logged.Action); err != nil {
			return nil, fmt.Errorf("replay diverged at action %d (%s): %w", i, logged.Action, err)
		}
	}
	return s, nil
}

// Verify replays a record and checks the result against an expected
// checksum.
func Verify(rec Record, catalog *ability.Catalog, logger *zap.Logger, wantChecksum string) error {
	s, err := Run(rec, catalog, logger)
	if err != nil {
		return err
	}
	if got := s.Checksum(); got != wantChecksum {
		return fmt.Errorf("replay checksum mismatch: got %s, want %s", got, wantChecksum)
	}
	return nil
}
