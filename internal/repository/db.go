package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/blueparser/internal/common"
)

type Config struct {
	Driver           string
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
	// ConnectAttempts bounds the initial ping retries; values below 1 mean a single attempt.
	ConnectAttempts uint
}

// ConfigFrom maps the environment database settings onto a repository Config.
func ConfigFrom(c common.DatabaseConfig) Config {
	return Config{
		Driver:          c.Driver,
		DSN:             c.DSN,
		MaxConns:        c.MaxConns,
		MinConns:        c.MinConns,
		MaxConnLifetime: c.MaxConnLifetime,
		MaxConnIdleTime: c.MaxConnIdleTime,
		DialTimeout:     c.DialTimeout,
		ConnectAttempts: uint(max(c.ConnectAttempts, 1)),
	}
}

// DB is a database/sql handle plus the dialect it speaks.
type DB struct {
	*sql.DB
	driver string
	pool   *pgxpool.Pool
}

// Driver returns the dialect name, common.DriverSQLite or common.DriverPostgres.
func (db *DB) Driver() string { return db.driver }

// Open connects to the configured database, applies connection settings and creates the schema.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database", "driver", cfg.Driver)

	var (
		db  *DB
		err error
	)
	switch cfg.Driver {
	case common.DriverPostgres:
		db, err = openPostgres(ctx, cfg)
	case common.DriverSQLite, "":
		db, err = openSQLite(ctx, cfg)
	default:
		err = fmt.Errorf("unsupported driver %q: %w", cfg.Driver, common.ErrInvalidInput)
	}
	if err != nil {
		logger.Error("failed to connect to database", "driver", cfg.Driver, "error", err)
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		logger.Error("failed to migrate database", "error", err)
		db.Close()
		return nil, err
	}

	logger.Info("successfully connected to database", "driver", db.driver)
	return db, nil
}

func openPostgres(ctx context.Context, cfg Config) (*DB, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "blueparser"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pingWithRetry(ctx, pool.Ping, cfg.ConnectAttempts); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &DB{DB: stdlib.OpenDBFromPool(pool), driver: common.DriverPostgres, pool: pool}, nil
}

func openSQLite(ctx context.Context, cfg Config) (*DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = ":memory:"
	}
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	// Pragmas are per connection and every :memory: connection is its own database.
	sqldb.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	if !isMemoryDSN(dsn) {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := sqldb.ExecContext(ctx, p); err != nil {
			sqldb.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	if err := pingWithRetry(ctx, sqldb.PingContext, cfg.ConnectAttempts); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &DB{DB: sqldb, driver: common.DriverSQLite}, nil
}

// pingWithRetry polls ping until it succeeds, attempts run out or ctx ends.
func pingWithRetry(ctx context.Context, ping func(context.Context) error, attempts uint) error {
	if attempts < 1 {
		attempts = 1
	}
	return retry.Do(
		func() error { return ping(ctx) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// Close closes the database connections gracefully
func (db *DB) Close() error {
	err := db.DB.Close()
	if db.pool != nil {
		db.pool.Close()
	}
	return err
}

// HealthCheck pings the database to catch DSN issues early.
func (db *DB) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	return nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (db *DB) rebind(query string) string {
	if db.driver != common.DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
