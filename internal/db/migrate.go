package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// gooseDialect maps a Dialect to goose's dialect name.
func gooseDialect(d Dialect) (string, error) {
	switch d {
	case DialectPostgres:
		return "postgres", nil
	case DialectSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database dialect %q", d)
	}
}

// Migrate applies the embedded SQL migrations via goose.
func (db *DB) Migrate(ctx context.Context) error {
	dialect, err := gooseDialect(db.dialect)
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.sql, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
