package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions are the connection knobs surfaced through the environment.
type PoolOptions struct {
	MaxConns      int32
	MinConns      int32
	Retries       int
	RetryInterval time.Duration
}

// NewPool connects to Postgres with retries, so the API container can come
// up before the database finishes starting.
func NewPool(ctx context.Context, databaseURL string, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = opts.MaxConns
	cfg.MinConns = opts.MinConns
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= opts.Retries; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				log.Printf("postgres: connected (pool %d-%d conns)", opts.MinConns, opts.MaxConns)
				return pool, nil
			} else {
				pool.Close()
				err = pingErr
			}
		}

		log.Printf("postgres: connection attempt %d/%d failed: %v", attempt, opts.Retries, err)
		if attempt < opts.Retries {
			time.Sleep(opts.RetryInterval)
		}
	}

	return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", opts.Retries, err)
}
