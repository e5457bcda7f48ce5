package app

import (
	"context"
	"fmt"

	"github.com/krushit1307/HRMS/internal/config"
	"github.com/krushit1307/HRMS/internal/kvstore"
	"github.com/krushit1307/HRMS/internal/shared/connection"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Resources is what the API and the CLI open from configuration. Close releases them.
type Resources struct {
	Store   *store.Store
	Backend kvstore.Backend
	// Redis is nil unless the configuration asks for it.
	Redis   *redis.Client
	closers []func() error
}

func (r *Resources) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}

// OpenResources connects the configured backend and wraps it in a store. It does not seed.
func OpenResources(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Resources, error) {
	res := &Resources{}

	if cfg.UsesRedis() {
		rdb, err := connection.ConnectRedisWithRetry(ctx, cfg.Redis.Addr, cfg.Store.ConnectRetries)
		if err != nil {
			return nil, err
		}
		res.Redis = rdb
		res.closers = append(res.closers, rdb.Close)
	}

	backend, err := openBackend(ctx, cfg, res)
	if err != nil {
		_ = res.Close()
		return nil, err
	}
	res.Backend = backend
	res.Store = store.New(backend,
		store.WithLogger(logger),
		store.WithPasswordCost(cfg.BcryptCost),
		store.WithCorruptRecovery(cfg.Store.RecoverCorrupt),
	)

	logger.Info("store backend ready", zap.String("backend", cfg.Store.Backend))
	return res, nil
}

func openBackend(ctx context.Context, cfg config.Config, res *Resources) (kvstore.Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return kvstore.NewMemory(), nil

	case config.BackendFile:
		return kvstore.NewFile(cfg.Store.Dir)

	case config.BackendRedis:
		return kvstore.NewRedis(res.Redis, cfg.Redis.Prefix), nil

	case config.BackendPostgres:
		db, err := connection.ConnectGORMWithRetry(ctx, connection.PostgresConfig{
			Host:     cfg.Postgres.Host,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			DBName:   cfg.Postgres.Name,
			Port:     cfg.Postgres.Port,
			SSLMode:  cfg.Postgres.SSLMode,
		}, cfg.Store.ConnectRetries)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("postgres handle: %w", err)
		}
		res.closers = append(res.closers, sqlDB.Close)

		backend := kvstore.NewGORM(db)
		if err := backend.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate kv table: %w", err)
		}
		return backend, nil

	case config.BackendSQLite:
		db, err := connection.OpenSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		res.closers = append(res.closers, db.Close)
		return kvstore.NewSQLite(ctx, db)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
