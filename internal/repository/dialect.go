package repository

import (
	"fmt"
	"regexp"
	"strings"
)

// Dialect selects the SQL flavour of the backing store.
// Queries in this package are written with PostgreSQL placeholders ($1, $2, ...)
// and rebound for SQLite.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

var pgPlaceholderRe = regexp.MustCompile(`\$(\d+)`)

// ParseDialect maps a configured driver name onto a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported db driver %q", name)
	}
}

// Rebind converts $N placeholders into the dialect's placeholder syntax.
func (d Dialect) Rebind(query string) string {
	if d == DialectPostgres {
		return query
	}
	return pgPlaceholderRe.ReplaceAllString(query, "?")
}
