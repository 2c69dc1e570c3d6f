// Package repository persists battle snapshots in PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/emberfall/battle-server-go/internal/config"
)

// ErrNotFound is returned when a battle id has no stored snapshot.
var ErrNotFound = errors.New("battle not found")

// NewPool connects to PostgreSQL and verifies the connection.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	connectCtx := ctx
	if cfg.ConnTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("database connection pool initialized",
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return pool, nil
}

// BattleRepository stores encoded battle snapshots keyed by battle id.
type BattleRepository struct {
	pool *pgxpool.Pool
}

// NewBattleRepository creates the repository and ensures its schema.
func NewBattleRepository(ctx context.Context, pool *pgxpool.Pool) (*BattleRepository, error) {
	const schema = `
		CREATE TABLE IF NOT EXISTS battles (
			id         TEXT PRIMARY KEY,
			snapshot   BYTEA NOT NULL,
			checksum   TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to ensure battles schema: %w", err)
	}
	return &BattleRepository{pool: pool}, nil
}

// Save upserts a battle snapshot.
func (r *BattleRepository) Save(ctx context.Context, id string, snapshot []byte, checksum string) error {
	const query = `
		INSERT INTO battles (id, snapshot, checksum, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE
		SET snapshot = EXCLUDED.snapshot,
		    checksum = EXCLUDED.checksum,
		    updated_at = now()`
	if _, err := r.pool.Exec(ctx, query, id, snapshot, checksum); err != nil {
		return fmt.Errorf("failed to save battle %s: %w", id, err)
	}
	return nil
}

// Load returns the stored snapshot and checksum for a battle.
func (r *BattleRepository) Load(ctx context.Context, id string) ([]byte, string, error) {
	const query = `SELECT snapshot, checksum FROM battles WHERE id = $1`
	var snapshot []byte
	var checksum string
	err := r.pool.QueryRow(ctx, query, id).Scan(&snapshot, &checksum)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load battle %s: %w", id, err)
	}
	return snapshot, checksum, nil
}

// Delete removes a finished battle's snapshot.
func (r *BattleRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM battles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete battle %s: %w", id, err)
	}
	return nil
}

// List returns the ids of stored battles, most recently saved first.
func (r *BattleRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM battles ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list battles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan battle id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
