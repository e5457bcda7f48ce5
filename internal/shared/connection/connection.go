package connection

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

const defaultRetryDelay = 5 * time.Second

// RetryDelay is the pause between connection attempts. Tests shorten it.
var RetryDelay = defaultRetryDelay

type PostgresConfig struct {
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode,
	)
}

func ConnectGORMWithRetry(ctx context.Context, cfg PostgresConfig, maxRetries int) (*gorm.DB, error) {
	logger := zap.L().Named("connection")
	var lastErr error

	for i := 1; i <= maxRetries; i++ {
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err == nil {
			var sqlDB *sql.DB
			sqlDB, err = db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err == nil {
				sqlDB.SetMaxOpenConns(25)
				sqlDB.SetMaxIdleConns(10)
				sqlDB.SetConnMaxLifetime(time.Hour)
				logger.Info("postgres connected", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
				return db, nil
			}
		}

		lastErr = err
		logger.Warn("postgres connect failed",
			zap.Int("attempt", i),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if err := sleep(ctx, RetryDelay); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("database connection failed after %d retries: %w", maxRetries, lastErr)
}

func ConnectRedisWithRetry(ctx context.Context, addr string, maxRetries int) (*redis.Client, error) {
	logger := zap.L().Named("connection")
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		err := rdb.Ping(ctx).Err()
		if err == nil {
			logger.Info("redis connected", zap.String("addr", addr))
			return rdb, nil
		}

		lastErr = err
		logger.Warn("redis connect failed",
			zap.Int("attempt", i),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if err := sleep(ctx, RetryDelay); err != nil {
			_ = rdb.Close()
			return nil, err
		}
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("redis connection failed after %d retries: %w", maxRetries, lastErr)
}

const (
	pragmaJournalModeWAL = `PRAGMA journal_mode=WAL`
	pragmaBusyTimeout    = `PRAGMA busy_timeout=5000`
)

// OpenSQLite opens (and creates) the database file at path with the modernc driver.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("open sqlite: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("open sqlite: create parent dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer; the store serializes its own access anyway
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{pragmaJournalModeWAL, pragmaBusyTimeout} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("open sqlite: %s: %w", pragma, err)
		}
	}
	zap.L().Named("connection").Info("sqlite opened", zap.String("path", path))
	return db, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
