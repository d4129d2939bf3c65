package probe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// dialect holds the catalog queries for one database family.
type dialect struct {
	versionQuery string
	// limitQuery returns the longest identifier the server accepts; empty
	// when the server exposes no such setting.
	limitQuery string
	// castTypes reports whether CAST(NULL AS <native>) is a reliable test
	// for a native type name.
	castTypes bool
}

var dialects = map[string]dialect{
	"postgres": {
		versionQuery: "SELECT version()",
		limitQuery:   "SHOW max_identifier_length",
		castTypes:    true,
	},
	"mysql": {
		// CAST only accepts a handful of target types
		versionQuery: "SELECT VERSION()",
	},
	"sqlite": {
		// Any name is a valid CAST target; type affinity picks the storage class
		versionQuery: "SELECT sqlite_version()",
	},
	"duckdb": {
		versionQuery: "SELECT version()",
		castTypes:    true,
	},
	"mssql": {
		versionQuery: "SELECT @@VERSION",
		// sysname is NVARCHAR(128); COL_LENGTH reports bytes
		limitQuery: "SELECT COL_LENGTH('sys.objects', 'name') / 2",
	},
}

func lookupDialect(name string) (dialect, error) {
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return dialect{}, &UnsupportedDialectError{Dialect: name, Available: Dialects()}
	}
	return d, nil
}

func (d dialect) version(ctx context.Context, db *sql.DB) (string, error) {
	var v string
	if err := db.QueryRowContext(ctx, d.versionQuery).Scan(&v); err != nil {
		return "", fmt.Errorf("failed to query server version: %w", err)
	}
	return strings.TrimSpace(v), nil
}

// identifierLimit returns the server's identifier limit, or ok=false when
// the dialect has no query for it.
func (d dialect) identifierLimit(ctx context.Context, db *sql.DB) (limit int, ok bool, err error) {
	if d.limitQuery == "" {
		return 0, false, nil
	}
	// SHOW returns text, COL_LENGTH an integer
	var raw string
	if err := db.QueryRowContext(ctx, d.limitQuery).Scan(&raw); err != nil {
		return 0, false, fmt.Errorf("failed to query identifier limit: %w", err)
	}
	limit, err = strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false, fmt.Errorf("unexpected identifier limit %q: %w", raw, err)
	}
	return limit, true, nil
}

// acceptsType reports whether the server understands a native type name.
func (d dialect) acceptsType(ctx context.Context, db *sql.DB, native string) error {
	if err := checkTypeName(native); err != nil {
		return err
	}
	var v any
	return db.QueryRowContext(ctx, "SELECT CAST(NULL AS "+native+")").Scan(&v)
}

// checkTypeName rejects native type names that cannot stand as the target
// of a CAST: statement separators, quotes, comments and unbalanced
// parentheses.
func checkTypeName(native string) error {
	if strings.TrimSpace(native) == "" {
		return errors.New("empty type name")
	}
	if strings.ContainsAny(native, ";'\"`\\") || strings.Contains(native, "--") || strings.Contains(native, "/*") {
		return fmt.Errorf("malformed type name %q", native)
	}
	depth := 0
	for _, r := range native {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return fmt.Errorf("malformed type name %q: unbalanced parentheses", native)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("malformed type name %q: unbalanced parentheses", native)
	}
	return nil
}
