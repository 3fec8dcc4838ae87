// Package storage opens the long-lived database handle shared by every
// repository and applies the table layout each domain package publishes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	pkgstorage "github.com/goliatone/go-blog/pkg/storage"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var (
	ErrDriverRequired    = errors.New("storage: driver is required")
	ErrDSNRequired       = errors.New("storage: dsn is required")
	ErrUnsupportedDriver = errors.New("storage: unsupported driver")
)

// Open connects to the configured database and wraps it with the matching
// bun dialect. The caller owns the returned handle.
func Open(ctx context.Context, cfg pkgstorage.Config, logger interfaces.Logger) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		return nil, ErrDriverRequired
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, ErrDSNRequired
	}
	if logger == nil {
		logger = logging.StorageLogger(nil)
	}

	var db *bun.DB
	switch driver {
	case pkgstorage.DriverSQLite, "sqlite3":
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
		// sqlite serializes writers; a single connection also keeps
		// in-memory databases alive for the process lifetime.
		db.SetMaxOpenConns(1)
	case pkgstorage.DriverPostgres, "pg", "pgx":
		sqlDB, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		db = bun.NewDB(sqlDB, pgdialect.New())
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	if cfg.Debug {
		db.AddQueryHook(&queryLogger{logger: logger})
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", driver, err)
	}
	logger.Info("storage.open", "driver", driver)
	return db, nil
}

// Migrate creates every table and index described by schemas. It is safe to
// run repeatedly.
func Migrate(ctx context.Context, db *bun.DB, schemas ...pkgstorage.Schema) error {
	if db == nil {
		return errors.New("storage: database is required")
	}
	for _, schema := range schemas {
		for _, model := range schema.Models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("storage: create table for %s: %w", schema.Name, err)
			}
		}
		for _, index := range schema.Indexes {
			query := db.NewCreateIndex().
				Model(index.Model).
				Index(index.Name).
				Column(index.Columns...).
				IfNotExists()
			if index.Unique {
				query = query.Unique()
			}
			if _, err := query.Exec(ctx); err != nil {
				return fmt.Errorf("storage: create index %s: %w", index.Name, err)
			}
		}
	}
	return nil
}

// IsUniqueViolation reports whether err was raised by a unique constraint
// in either supported backend.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint") || strings.Contains(message, "duplicate key")
}

type queryLogger struct {
	logger interfaces.Logger
}

var _ bun.QueryHook = (*queryLogger)(nil)

func (h *queryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLogger) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	logger := logging.ForContext(ctx, h.logger)
	elapsed := time.Since(event.StartTime)
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		logger.Warn("storage.query.error", "operation", event.Operation(), "duration", elapsed, "query", event.Query, "error", event.Err)
		return
	}
	logger.Debug("storage.query", "operation", event.Operation(), "duration", elapsed, "query", event.Query)
}
