// Package mysql provides the MySQL platform definition.
// This package is pure Go with no database driver dependencies.
package mysql

import (
	"github.com/leapstack-labs/ddlplatform/pkg/platform"
	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

func init() {
	platform.Register(MySQL)
}

// MySQL is the MySQL platform.
var MySQL = Builder().Build()

// Builder returns the MySQL initialization applied to a fresh builder.
func Builder(opts ...platform.Option) *platform.Builder {
	return platform.NewBuilder("mysql", opts...).
		MaxIdentifierLength(64).
		RequiresNullAsDefaultValue(true).
		UseAlterTableForDrop(true). // ALTER TABLE ... DROP INDEX / DROP FOREIGN KEY
		DelimiterToken("`").
		CommentPrefix("#").
		NativeTypes(map[types.Code]string{
			types.ARRAY:         "LONGBLOB",
			types.BIT:           "TINYINT(1)",
			types.BLOB:          "LONGBLOB",
			types.CLOB:          "LONGTEXT",
			types.DISTINCT:      "LONGBLOB",
			types.FLOAT:         "DOUBLE",
			types.JAVA_OBJECT:   "LONGBLOB",
			types.LONGVARBINARY: "MEDIUMBLOB",
			types.LONGVARCHAR:   "MEDIUMTEXT",
			types.NULL:          "MEDIUMBLOB",
			types.NUMERIC:       "DECIMAL",
			types.OTHER:         "LONGBLOB",
			types.REAL:          "FLOAT",
			types.REF:           "MEDIUMBLOB",
			types.STRUCT:        "LONGBLOB",
			types.TIMESTAMP:     "DATETIME",
		}).
		NativeTypeByName("BOOLEAN", "TINYINT(1)").
		NativeTypeByName("DATALINK", "MEDIUMBLOB").
		NativeTypeByName("NCHAR", "NATIONAL CHAR").
		NativeTypeByName("NVARCHAR", "NATIONAL VARCHAR").
		NativeTypeByName("LONGNVARCHAR", "MEDIUMTEXT").
		NativeTypeByName("NCLOB", "LONGTEXT").
		NativeTypeByName("SQLXML", "LONGTEXT").
		NativeTypeByName("TIMESTAMP_WITH_TIMEZONE", "TIMESTAMP").
		TagByName("NCHAR", platform.TagSize, true).
		TagByName("NVARCHAR", platform.TagSize, true)
}
