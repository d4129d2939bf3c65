// Package mssql provides the Microsoft SQL Server platform definition.
// This package is pure Go with no database driver dependencies.
package mssql

import (
	"github.com/leapstack-labs/ddlplatform/pkg/platform"
	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

func init() {
	platform.Register(MSSQL)
}

// MSSQL is the SQL Server platform.
var MSSQL = Builder().Build()

// Builder returns the SQL Server initialization applied to a fresh builder.
func Builder(opts ...platform.Option) *platform.Builder {
	return platform.NewBuilder("mssql", opts...).
		MaxIdentifierLength(128).
		UseAlterTableForDrop(true).
		NativeTypes(map[types.Code]string{
			types.ARRAY:         "VARBINARY(MAX)",
			types.BLOB:          "VARBINARY(MAX)",
			types.CLOB:          "VARCHAR(MAX)",
			types.DISTINCT:      "VARBINARY(MAX)",
			types.DOUBLE:        "FLOAT",
			types.INTEGER:       "INT",
			types.JAVA_OBJECT:   "VARBINARY(MAX)",
			types.LONGVARBINARY: "VARBINARY(MAX)",
			types.LONGVARCHAR:   "VARCHAR(MAX)",
			types.NULL:          "VARBINARY(MAX)",
			types.OTHER:         "VARBINARY(MAX)",
			types.REF:           "VARBINARY(MAX)",
			types.STRUCT:        "VARBINARY(MAX)",
			types.TIMESTAMP:     "DATETIME2",
			types.TINYINT:       "SMALLINT", // TINYINT is unsigned on SQL Server
		}).
		NativeTypeByName("BOOLEAN", "BIT").
		NativeTypeByName("DATALINK", "VARBINARY(MAX)").
		NativeTypeByName("LONGNVARCHAR", "NVARCHAR(MAX)").
		NativeTypeByName("NCLOB", "NVARCHAR(MAX)").
		NativeTypeByName("SQLXML", "XML").
		NativeTypeByName("TIMESTAMP_WITH_TIMEZONE", "DATETIMEOFFSET").
		TagByName("NCHAR", platform.TagSize, true).
		TagByName("NVARCHAR", platform.TagSize, true).
		TagByName("NCHAR", platform.TagNullDefault, true).
		TagByName("NVARCHAR", platform.TagNullDefault, true)
}
