package db

import (
	"database/sql"
	"fmt"
	"strings"

	"avatar_platform/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	sqliteDriverName   = "sqlite"
	postgresDriverName = "pgx"
)

// Pragmas applied by the sqlite driver on every new connection.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(ON)",
	"busy_timeout(5000)",
}

// Open returns a handle for the configured store without touching it.
// Connection errors surface on first use, which lets the HTTP server come up
// even when the database is not reachable yet.
func Open(dialect repository.Dialect, dsn string) (*sql.DB, error) {
	switch dialect {
	case repository.DialectSQLite:
		db, err := sql.Open(sqliteDriverName, sqliteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("open sqlite at %q: %w", dsn, err)
		}
		// Conservative pool settings for SQLite
		db.SetMaxOpenConns(1) // SQLite is not great with many writers
		db.SetMaxIdleConns(1)
		return db, nil
	case repository.DialectPostgres:
		db, err := sql.Open(postgresDriverName, dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// sqliteDSN turns a plain file path into a URI carrying the connection pragmas.
// DSNs that already configure pragmas are left untouched.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	params := make([]string, 0, len(sqlitePragmas))
	for _, p := range sqlitePragmas {
		params = append(params, "_pragma="+p)
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}
