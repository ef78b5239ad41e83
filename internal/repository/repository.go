// Package repository is the PostgreSQL persistence layer. Each entity has
// its own file; driver errors are translated to the sentinels in errors.go.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Options tunes the connection pool.
type Options struct {
	MaxConns int32
	MinConns int32
}

// DefaultOptions returns the pool bounds used when none are configured.
func DefaultOptions() Options {
	return Options{MaxConns: 10, MinConns: 2}
}

// Repository implements every store interface the services depend on.
// It is safe for concurrent use.
type Repository struct {
	pool *pgxpool.Pool
}

// New opens a pool against databaseURL and pings it once.
func New(ctx context.Context, databaseURL string, opts Options) (*Repository, error) {
	cfg, err := poolConfig(databaseURL, opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{pool: pool}, nil
}

// poolConfig parses databaseURL and applies opts. Out-of-range bounds are
// ignored and pgx defaults kept.
func poolConfig(databaseURL string, opts Options) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns >= 0 && opts.MinConns <= cfg.MaxConns {
		cfg.MinConns = opts.MinConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	return cfg, nil
}

// Ping reports whether the database is reachable. It backs the readiness probe.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close waits for acquired connections to be released and closes the pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool exposes the pool to migrations and integration tests.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}
