package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/filex"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/accounts"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}

const (
	postgresScheme = "postgres://"
	postgresAlias  = "postgresql://"
	sqliteScheme   = "sqlite://"
)

// Storage is an opened account store together with the connection behind it.
// For the in-memory store DB is nil.
type Storage struct {
	DB       *sql.DB
	Accounts accounts.Repository
	Kind     string
}

// Close releases the underlying connection pool, if any.
func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Open selects the backend from the DSN scheme, connects, applies migrations
// and returns the account repository bound to the pool. An empty DSN yields
// the in-memory store.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	switch {
	case dsn == "":
		return &Storage{Accounts: accounts.NewMemoryRepository(), Kind: "memory"}, nil
	case strings.HasPrefix(dsn, postgresScheme), strings.HasPrefix(dsn, postgresAlias):
		return open(ctx, "pgx", dsn, "postgres", NewPostgresRepositoryManager())
	case strings.HasPrefix(dsn, sqliteScheme):
		path := strings.TrimPrefix(dsn, sqliteScheme)
		if path == "" {
			return nil, fmt.Errorf("sqlite dsn without path: %q", dsn)
		}
		if !strings.HasPrefix(path, "file:") && !strings.HasPrefix(path, ":memory:") {
			file, _, _ := strings.Cut(path, "?")
			if _, err := filex.EnsureParentDir(file); err != nil {
				return nil, fmt.Errorf("sqlite dir error: %w", err)
			}
		}
		return open(ctx, "sqlite", path, "sqlite", NewSQLiteRepositoryManager())
	default:
		return nil, fmt.Errorf("unsupported database dsn scheme: %q", dsn)
	}
}

func open(ctx context.Context, driver, dsn, kind string, m RepositoryManager) (*Storage, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Storage{DB: db, Accounts: m.Accounts(db), Kind: kind}, nil
}
