package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"avatar_platform/internal/repository"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Migrator applies the embedded schema migrations for one dialect.
type Migrator struct {
	db      *sql.DB
	dialect repository.Dialect
}

func NewMigrator(db *sql.DB, dialect repository.Dialect) *Migrator {
	return &Migrator{db: db, dialect: dialect}
}

// Migrate brings the schema up to the latest version and reports how many
// migrations were applied. Running it against an up-to-date schema is a no-op.
func (m *Migrator) Migrate(ctx context.Context) (int, error) {
	provider, err := m.provider()
	if err != nil {
		return 0, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}
	return len(results), nil
}

func (m *Migrator) provider() (*goose.Provider, error) {
	var (
		gooseDialect goose.Dialect
		dir          string
	)
	switch m.dialect {
	case repository.DialectSQLite:
		gooseDialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	case repository.DialectPostgres:
		gooseDialect, dir = goose.DialectPostgres, "migrations/postgres"
	default:
		return nil, fmt.Errorf("unsupported dialect %q", m.dialect)
	}

	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations %q: %w", dir, err)
	}
	provider, err := goose.NewProvider(gooseDialect, m.db, fsys)
	if err != nil {
		return nil, fmt.Errorf("init migration provider: %w", err)
	}
	return provider, nil
}
