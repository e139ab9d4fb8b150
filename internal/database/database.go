package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// DB owns the pgx pool and a database/sql view of it for the repositories
// and goose.
type DB struct {
	Pool *pgxpool.Pool
	sql  *sql.DB
}

func New(ctx context.Context, databaseURL string, maxConns int32, minConns int32) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connected", "max_conns", maxConns, "min_conns", minConns)
	return &DB{Pool: pool, sql: stdlib.OpenDBFromPool(pool)}, nil
}

// SQL returns the database/sql handle backed by the pool. Closing it does
// not close the pool.
func (db *DB) SQL() *sql.DB {
	return db.sql
}

func (db *DB) Close() {
	if db.sql != nil {
		_ = db.sql.Close()
	}
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Ping satisfies the health handler.
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
