// Package sqlite provides the SQLite platform definition.
// This package is pure Go with no database driver dependencies.
package sqlite

import (
	"github.com/leapstack-labs/ddlplatform/pkg/platform"
	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

func init() {
	platform.Register(SQLite)
}

// SQLite is the SQLite platform.
//
// SQLite cannot add foreign keys to an existing table, so they are always
// written inside CREATE TABLE. Native types are the storage affinities.
var SQLite = Builder().Build()

// Builder returns the SQLite initialization applied to a fresh builder.
func Builder(opts ...platform.Option) *platform.Builder {
	return platform.NewBuilder("sqlite", opts...).
		ForeignKeysEmbedded(true).
		NativeTypes(map[types.Code]string{
			types.BIT:           "INTEGER",
			types.TINYINT:       "INTEGER",
			types.SMALLINT:      "INTEGER",
			types.BIGINT:        "INTEGER",
			types.FLOAT:         "REAL",
			types.DOUBLE:        "REAL",
			types.LONGVARCHAR:   "TEXT",
			types.CLOB:          "TEXT",
			types.BINARY:        "BLOB",
			types.VARBINARY:     "BLOB",
			types.LONGVARBINARY: "BLOB",
			types.DATE:          "TEXT",
			types.TIME:          "TEXT",
			types.TIMESTAMP:     "TEXT",
			types.JAVA_OBJECT:   "BLOB",
			types.OTHER:         "BLOB",
		}).
		NativeTypeByName("BOOLEAN", "INTEGER").
		NativeTypeByName("NCHAR", "TEXT").
		NativeTypeByName("NVARCHAR", "TEXT").
		NativeTypeByName("LONGNVARCHAR", "TEXT").
		NativeTypeByName("NCLOB", "TEXT").
		NativeTypeByName("SQLXML", "TEXT").
		Sized(types.BINARY, false).
		Sized(types.VARBINARY, false)
}
