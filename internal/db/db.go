// Package db provides SQL database access for profile and feedback storage.
// PostgreSQL is reached through a pgx pool, SQLite through the pure-Go modernc driver.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // register "sqlite" database/sql driver
)

// Dialect identifies the SQL flavour behind a DB.
type Dialect string

// Supported dialects
const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DB wraps a database/sql handle together with its dialect.
type DB struct {
	sql     *sql.DB
	dialect Dialect
	pool    *pgxpool.Pool
}

// Connect establishes a PostgreSQL connection pool and exposes it through database/sql.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{sql: stdlib.OpenDBFromPool(pool), dialect: DialectPostgres, pool: pool}, nil
}

// OpenSQLite opens (or creates) a SQLite database file.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1) // SQLite: single writer

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return &DB{sql: sqlDB, dialect: DialectSQLite}, nil
}

// Open dispatches to Connect or OpenSQLite by dialect.
func Open(ctx context.Context, dialect Dialect, dsn string) (*DB, error) {
	switch dialect {
	case DialectPostgres:
		return Connect(ctx, dsn)
	case DialectSQLite:
		return OpenSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}
}

// New wraps an existing handle. Used with sqlmock in tests.
func New(sqlDB *sql.DB, dialect Dialect) *DB {
	return &DB{sql: sqlDB, dialect: dialect}
}

// SQL returns the underlying database/sql handle.
func (db *DB) SQL() *sql.DB {
	return db.sql
}

// Dialect returns the database dialect.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Close closes the handle and, for PostgreSQL, the connection pool.
func (db *DB) Close() {
	if db.sql != nil {
		db.sql.Close()
	}
	if db.pool != nil {
		db.pool.Close()
	}
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
func (db *DB) Rebind(query string) string {
	if db.dialect != DialectPostgres {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ExecContext executes a rebound statement.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.sql.ExecContext(ctx, db.Rebind(query), args...)
}

// QueryRowContext runs a rebound single-row query.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.sql.QueryRowContext(ctx, db.Rebind(query), args...)
}

// QueryContext runs a rebound query.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.sql.QueryContext(ctx, db.Rebind(query), args...)
}
