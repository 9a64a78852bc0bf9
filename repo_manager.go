package auth

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// OpenMemoryDB opens a private in-memory sqlite database. The database
// disappears with its last connection, so the pool is pinned to one.
func OpenMemoryDB() (*bun.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// NewDirectory returns the directory implementation named by kind,
// "memory" (default) or "sqlite". The returned closer releases any
// database handle.
func NewDirectory(ctx context.Context, kind string) (Directory, func() error, error) {
	switch kind {
	case "", DirectoryMemory:
		return NewMemoryDirectory(), func() error { return nil }, nil
	case DirectorySQLite:
		db, err := OpenMemoryDB()
		if err != nil {
			return nil, nil, err
		}
		dir, err := NewBunDirectory(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return dir, db.Close, nil
	default:
		return nil, nil, errors.New(fmt.Sprintf("unknown directory kind %q", kind), errors.CategoryBadInput).
			WithTextCode("UNKNOWN_DIRECTORY").
			WithMetadata(map[string]any{"kind": kind})
	}
}

const (
	DirectoryMemory = "memory"
	DirectorySQLite = "sqlite"
)
