// Package postgres provides the PostgreSQL platform definition.
// This package is pure Go with no database driver dependencies.
package postgres

import (
	"github.com/leapstack-labs/ddlplatform/pkg/platform"
	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

func init() {
	platform.Register(Postgres)
}

// Postgres is the PostgreSQL platform.
var Postgres = Builder().Build()

// Builder returns the PostgreSQL initialization applied to a fresh builder.
// Options are passed through, so callers can use a different vocabulary.
func Builder(opts ...platform.Option) *platform.Builder {
	return platform.NewBuilder("postgres", opts...).
		MaxIdentifierLength(63). // NAMEDATALEN - 1
		NativeTypes(map[types.Code]string{
			types.ARRAY:         "BYTEA",
			types.BINARY:        "BYTEA",
			types.BIT:           "BOOLEAN",
			types.BLOB:          "BYTEA",
			types.CLOB:          "TEXT",
			types.DECIMAL:       "NUMERIC",
			types.DISTINCT:      "BYTEA",
			types.DOUBLE:        "DOUBLE PRECISION",
			types.FLOAT:         "DOUBLE PRECISION",
			types.JAVA_OBJECT:   "BYTEA",
			types.LONGVARBINARY: "BYTEA",
			types.LONGVARCHAR:   "TEXT",
			types.NULL:          "BYTEA",
			types.OTHER:         "BYTEA",
			types.REF:           "BYTEA",
			types.STRUCT:        "BYTEA",
			types.TINYINT:       "SMALLINT",
			types.VARBINARY:     "BYTEA",
		}).
		NativeTypeByName("BOOLEAN", "BOOLEAN").
		NativeTypeByName("DATALINK", "BYTEA").
		NativeTypeByName("NCHAR", "CHAR").
		NativeTypeByName("NVARCHAR", "VARCHAR").
		NativeTypeByName("LONGNVARCHAR", "TEXT").
		NativeTypeByName("NCLOB", "TEXT").
		NativeTypeByName("SQLXML", "XML").
		NativeTypeByName("TIME_WITH_TIMEZONE", "TIME WITH TIME ZONE").
		NativeTypeByName("TIMESTAMP_WITH_TIMEZONE", "TIMESTAMP WITH TIME ZONE").
		// BYTEA takes no length
		Sized(types.BINARY, false).
		Sized(types.VARBINARY, false)
}
