// Package save persists battles as versioned, compressed snapshots. The
// battle's catalog and logger are runtime attachments, not data, so they
// are reattached after decoding.
package save

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/battle"
)

// Version is the current snapshot format version. Decoding rejects
// snapshots written by other versions rather than guessing.
const Version = 1

// envelope is the on-disk shape: format version, integrity checksum and the
// gob-encoded battle.
type envelope struct {
	Version  int
	Checksum string
	State    *battle.State
}

// Encode serializes a battle into a compressed snapshot. The snapshot
// carries the battle's checksum so corruption is detected at load time.
func Encode(s *battle.State) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	enc := gob.NewEncoder(zw)
	env := envelope{
		Version:  Version,
		Checksum: s.Checksum(),
		State:    s,
	}
	if err := enc.Encode(env); err != nil {
		return nil, fmt.Errorf("failed to encode battle snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish battle snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode restores a battle from a snapshot, reattaching the catalog and
// logger, and verifies the embedded checksum.
func Decode(data []byte, catalog *ability.Catalog, logger *zap.Logger) (*battle.State, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open battle snapshot: %w", err)
	}
	defer zr.Close()

	var env envelope
	if err := gob.NewDecoder(zr).Decode(&env); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode battle snapshot: %w", err)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d, want %d", env.Version, Version)
	}
	if env.State == nil {
		return nil, fmt.Errorf("snapshot contains no battle state")
	}
	env.State.SetCatalog(catalog)
	env.State.SetLogger(logger)
	if sum := env.State.Checksum(); sum != env.Checksum {
		return nil, fmt.Errorf("snapshot checksum mismatch: stored %s, computed %s", env.Checksum, sum)
	}
	return env.State, nil
}
