// Package database owns the PostgreSQL connection pool shared by every
// repository.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the narrow pool surface handed to health checks and the server.
// Repositories take the concrete *pgxpool.Pool.
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolConfig sizes the connection pool. Zero fields fall back to the
// package defaults.
type PoolConfig struct {
	ConnString string
	MaxConns   int
	MaxIdle    time.Duration
	MaxLife    time.Duration
}

// NewPool connects to PostgreSQL and verifies the connection with a ping
// before handing the pool out.
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConnections
	}
	if maxConns > math.MaxInt32 {
		maxConns = math.MaxInt32
	}
	pc.MaxConns = int32(maxConns)
	pc.MinConns = DefaultMinConnections

	pc.MaxConnIdleTime = cfg.MaxIdle
	if pc.MaxConnIdleTime <= 0 {
		pc.MaxConnIdleTime = DefaultMaxConnIdle
	}
	pc.MaxConnLifetime = cfg.MaxLife
	if pc.MaxConnLifetime <= 0 {
		pc.MaxConnLifetime = DefaultMaxConnLife
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgConnectedToDatabase, "max_conns", pc.MaxConns)
	return pool, nil
}
