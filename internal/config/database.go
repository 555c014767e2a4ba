package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultMaxIdleConns    = 10
	defaultMaxOpenConns    = 100
	defaultConnMaxLifetime = "1h"
)

// poolSettings is a PoolConfig with defaults applied and the lifetime parsed.
type poolSettings struct {
	maxIdle  int
	maxOpen  int
	lifetime time.Duration
}

func resolvePool(p PoolConfig) (poolSettings, error) {
	raw := effectiveConnMaxLifetime(p.ConnMaxLifetime)
	lifetime, err := time.ParseDuration(raw)
	if err != nil {
		return poolSettings{}, fmt.Errorf("invalid pool.conn_max_lifetime %q: %w", p.ConnMaxLifetime, err)
	}
	if lifetime < 0 {
		return poolSettings{}, fmt.Errorf("invalid pool.conn_max_lifetime %q: must not be negative", p.ConnMaxLifetime)
	}
	return poolSettings{
		maxIdle:  effectiveMaxIdleConns(p.MaxIdleConns),
		maxOpen:  effectiveMaxOpenConns(p.MaxOpenConns),
		lifetime: lifetime,
	}, nil
}

// SetupDatabase opens the hotel store for the configured driver and applies
// the pool settings. SQLite is opened with foreign keys enforced, which the
// reservation references rely on.
func SetupDatabase(cfg *DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("database config is nil")
	case logger == nil:
		return nil, errors.New("logger is nil")
	}

	pool, err := resolvePool(cfg.Pool)
	if err != nil {
		return nil, err
	}
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLogLevel(logger)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(pool.maxIdle)
	sqlDB.SetMaxOpenConns(pool.maxOpen)
	sqlDB.SetConnMaxLifetime(pool.lifetime)

	logger.Info("database connected",
		slog.String("driver", cfg.Driver),
		slog.Int("max_idle_conns", pool.maxIdle),
		slog.Int("max_open_conns", pool.maxOpen),
		slog.Duration("conn_max_lifetime", pool.lifetime),
	)
	return db, nil
}

func openDialector(cfg *DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		if dir := filepath.Dir(cfg.SQLite.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory %q: %w", dir, err)
			}
		}
		return sqlite.Open(buildSQLiteDSN(cfg.SQLite.Path)), nil
	case "postgres":
		return postgres.Open(buildPostgresDSN(&cfg.Postgres)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// gormLogLevel logs every statement at debug level, otherwise only slow
// queries and errors.
func gormLogLevel(logger *slog.Logger) gormlogger.LogLevel {
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

func effectiveMaxIdleConns(v int) int {
	return orDefault(v, defaultMaxIdleConns)
}

func effectiveMaxOpenConns(v int) int {
	return orDefault(v, defaultMaxOpenConns)
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func effectiveConnMaxLifetime(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return defaultConnMaxLifetime
	}
	return v
}

// buildSQLiteDSN enables foreign keys on path unless the caller already set
// that pragma explicitly.
func buildSQLiteDSN(path string) string {
	if strings.Contains(path, "foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

func buildPostgresDSN(cfg *PostgresConfig) string {
	if cfg == nil {
		return ""
	}
	dsn := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   cfg.DBName,
	}
	if cfg.User != "" || cfg.Password != "" {
		dsn.User = url.UserPassword(cfg.User, cfg.Password)
	}
	if cfg.SSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return dsn.String()
}
