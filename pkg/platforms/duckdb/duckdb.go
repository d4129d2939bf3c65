// Package duckdb provides the DuckDB platform definition.
// This package is pure Go with no database driver dependencies.
package duckdb

import (
	"github.com/leapstack-labs/ddlplatform/pkg/platform"
	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

func init() {
	platform.Register(DuckDB)
}

// DuckDB is the DuckDB platform.
var DuckDB = Builder().Build()

// Builder returns the DuckDB initialization applied to a fresh builder.
func Builder(opts ...platform.Option) *platform.Builder {
	return platform.NewBuilder("duckdb", opts...).
		ForeignKeysEmbedded(true). // no ALTER TABLE ADD FOREIGN KEY
		NativeTypes(map[types.Code]string{
			types.BIT:           "BOOLEAN",
			types.FLOAT:         "DOUBLE",
			types.NUMERIC:       "DECIMAL",
			types.LONGVARCHAR:   "VARCHAR",
			types.CLOB:          "VARCHAR",
			types.BINARY:        "BLOB",
			types.VARBINARY:     "BLOB",
			types.LONGVARBINARY: "BLOB",
			types.JAVA_OBJECT:   "BLOB",
			types.OTHER:         "BLOB",
			types.ARRAY:         "BLOB",
			types.STRUCT:        "BLOB",
		}).
		NativeTypeByName("BOOLEAN", "BOOLEAN").
		NativeTypeByName("NCHAR", "VARCHAR").
		NativeTypeByName("NVARCHAR", "VARCHAR").
		NativeTypeByName("LONGNVARCHAR", "VARCHAR").
		NativeTypeByName("NCLOB", "VARCHAR").
		NativeTypeByName("TIME_WITH_TIMEZONE", "TIMETZ").
		NativeTypeByName("TIMESTAMP_WITH_TIMEZONE", "TIMESTAMPTZ").
		Sized(types.BINARY, false).
		Sized(types.VARBINARY, false)
}
