package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonathan/career-mentor/internal/db"
)

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

// Options selects and configures a profile backend.
type Options struct {
	Backend string
	Dir     string // file backend
	DSN     string // sqlite path or postgres URL
	S3      S3Options
}

// Open builds the Store named by opts.Backend. The returned cleanup function
// releases any resources held by the store and is never nil.
func Open(ctx context.Context, opts Options) (Store, func(), error) {
	noop := func() {}

	switch opts.Backend {
	case "", BackendFile:
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		return NewFileStore(dir), noop, nil

	case BackendMemory:
		return NewMemoryStore(), noop, nil

	case BackendSQLite, BackendPostgres:
		database, err := db.Open(ctx, db.Dialect(opts.Backend), opts.DSN)
		if err != nil {
			return nil, noop, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, noop, err
		}
		slog.Debug("profile store ready", slog.String("backend", opts.Backend))
		return NewSQLStore(database), database.Close, nil

	case BackendS3:
		store, err := NewS3Store(ctx, opts.S3)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown profile backend %q", opts.Backend)
	}
}
