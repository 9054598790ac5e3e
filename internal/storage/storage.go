// Package storage opens the posts.Store backend selected by STORE_BACKEND.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/information-sharing-networks/posts-demo/internal/config"
	"github.com/information-sharing-networks/posts-demo/internal/posts"
	"github.com/information-sharing-networks/posts-demo/internal/store/boltstore"
	"github.com/information-sharing-networks/posts-demo/internal/store/memstore"
	"github.com/information-sharing-networks/posts-demo/internal/store/pgstore"
	"github.com/information-sharing-networks/posts-demo/internal/store/sqlitestore"
)

// Backend is a posts.Store that can report its health and release its resources.
type Backend interface {
	posts.Store
	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the configured backend.
// For postgres the pending migrations are applied first when DB_AUTO_MIGRATE is set.
func Open(ctx context.Context, cfg *config.ServerEnvironment, logger *slog.Logger) (Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to PostgreSQL")

		if cfg.DBAutoMigrate {
			if err := pgstore.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			logger.Info("database migrations applied")
		}
		return pgstore.New(pool), nil

	case config.BackendSQLite:
		store, err := sqlitestore.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("opened SQLite database", slog.String("path", cfg.SQLitePath))
		return store, nil

	case config.BackendBolt:
		store, err := boltstore.Open(cfg.BoltPath, logger)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.BackendMemory:
		logger.Warn("using in-memory store, posts are lost on shutdown")
		return memstore.New(), nil
	}

	return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
}

// NewPool creates the pgx connection pool from the DB_* settings and checks the database is reachable.
func NewPool(ctx context.Context, cfg *config.ServerEnvironment) (*pgxpool.Pool, error) {
	dbCtx, dbCancel := context.WithTimeout(ctx, cfg.DatabasePingTimeout)
	defer dbCancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConnections
	poolConfig.MinConns = cfg.DBMinConnections
	poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = cfg.DBConnectTimeout

	pool, err := pgxpool.NewWithConfig(dbCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err = pool.Ping(dbCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database via pool: %w", err)
	}

	return pool, nil
}
