package probe

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "github.com/go-sql-driver/mysql"  // mysql driver
	_ "github.com/jackc/pgx/v5/stdlib"  // pgx driver
	_ "github.com/marcboeker/go-duckdb" // duckdb driver
	_ "github.com/microsoft/go-mssqldb" // sqlserver driver
	_ "modernc.org/sqlite"              // sqlite driver
)

// drivers maps dialect names to database/sql driver names.
var drivers = map[string]string{
	"postgres": "pgx",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
	"duckdb":   "duckdb",
	"mssql":    "sqlserver",
}

// UnsupportedDialectError is returned for a dialect no driver is wired for.
type UnsupportedDialectError struct {
	Dialect   string
	Available []string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("no driver for dialect %q (available: %s)", e.Dialect, strings.Join(e.Available, ", "))
}

// Dialects returns the dialects that can be probed (sorted).
func Dialects() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DriverName returns the database/sql driver used for a dialect.
func DriverName(dialect string) (string, error) {
	driver, ok := drivers[strings.ToLower(dialect)]
	if !ok {
		return "", &UnsupportedDialectError{Dialect: dialect, Available: Dialects()}
	}
	return driver, nil
}

// Open opens and pings a connection for dialect.
func Open(ctx context.Context, dialect, dsn string) (*sql.DB, error) {
	driver, err := DriverName(dialect)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", dialect, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dialect, err)
	}
	return db, nil
}
