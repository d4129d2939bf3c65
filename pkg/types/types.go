// Package types defines the abstract SQL type codes that platform descriptors
// are keyed on.
//
// Codes carry the numeric values of the JDBC type constants so that they can
// be exchanged with tools built around that vocabulary. Which codes exist is
// versioned: a Vocabulary exposes the subset of names known at a given level,
// and name resolution against an older vocabulary fails for newer codes.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Code identifies a portable SQL data kind independent of any dialect.
type Code int32

//nolint:revive // Type code names mirror the SQL type vocabulary and are intentionally ALL_CAPS
const (
	BIT                     Code = -7
	TINYINT                 Code = -6
	SMALLINT                Code = 5
	INTEGER                 Code = 4
	BIGINT                  Code = -5
	FLOAT                   Code = 6
	REAL                    Code = 7
	DOUBLE                  Code = 8
	NUMERIC                 Code = 2
	DECIMAL                 Code = 3
	CHAR                    Code = 1
	VARCHAR                 Code = 12
	LONGVARCHAR             Code = -1
	DATE                    Code = 91
	TIME                    Code = 92
	TIMESTAMP               Code = 93
	BINARY                  Code = -2
	VARBINARY               Code = -3
	LONGVARBINARY           Code = -4
	NULL                    Code = 0
	OTHER                   Code = 1111
	JAVA_OBJECT             Code = 2000
	DISTINCT                Code = 2001
	STRUCT                  Code = 2002
	ARRAY                   Code = 2003
	BLOB                    Code = 2004
	CLOB                    Code = 2005
	REF                     Code = 2006
	DATALINK                Code = 70
	BOOLEAN                 Code = 16
	ROWID                   Code = -8
	NCHAR                   Code = -15
	NVARCHAR                Code = -9
	LONGNVARCHAR            Code = -16
	NCLOB                   Code = 2011
	SQLXML                  Code = 2009
	REF_CURSOR              Code = 2012
	TIME_WITH_TIMEZONE      Code = 2013
	TIMESTAMP_WITH_TIMEZONE Code = 2014
)

// names holds the canonical spelling of every code this package defines.
var names = map[Code]string{
	BIT:                     "BIT",
	TINYINT:                 "TINYINT",
	SMALLINT:                "SMALLINT",
	INTEGER:                 "INTEGER",
	BIGINT:                  "BIGINT",
	FLOAT:                   "FLOAT",
	REAL:                    "REAL",
	DOUBLE:                  "DOUBLE",
	NUMERIC:                 "NUMERIC",
	DECIMAL:                 "DECIMAL",
	CHAR:                    "CHAR",
	VARCHAR:                 "VARCHAR",
	LONGVARCHAR:             "LONGVARCHAR",
	DATE:                    "DATE",
	TIME:                    "TIME",
	TIMESTAMP:               "TIMESTAMP",
	BINARY:                  "BINARY",
	VARBINARY:               "VARBINARY",
	LONGVARBINARY:           "LONGVARBINARY",
	NULL:                    "NULL",
	OTHER:                   "OTHER",
	JAVA_OBJECT:             "JAVA_OBJECT",
	DISTINCT:                "DISTINCT",
	STRUCT:                  "STRUCT",
	ARRAY:                   "ARRAY",
	BLOB:                    "BLOB",
	CLOB:                    "CLOB",
	REF:                     "REF",
	DATALINK:                "DATALINK",
	BOOLEAN:                 "BOOLEAN",
	ROWID:                   "ROWID",
	NCHAR:                   "NCHAR",
	NVARCHAR:                "NVARCHAR",
	LONGNVARCHAR:            "LONGNVARCHAR",
	NCLOB:                   "NCLOB",
	SQLXML:                  "SQLXML",
	REF_CURSOR:              "REF_CURSOR",
	TIME_WITH_TIMEZONE:      "TIME_WITH_TIMEZONE",
	TIMESTAMP_WITH_TIMEZONE: "TIMESTAMP_WITH_TIMEZONE",
}

// String returns the canonical name of the code, or Code(n) for codes
// outside the vocabulary.
func (c Code) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int32(c))
}

// ParseCode parses the Code(n) form String produces for codes outside the
// vocabulary.
func ParseCode(s string) (Code, bool) {
	inner, ok := strings.CutPrefix(s, "Code(")
	if !ok {
		return 0, false
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(inner, 10, 32)
	if err != nil {
		return 0, false
	}
	return Code(n), true
}

// IsKnown reports whether the code is defined by this package.
func (c Code) IsKnown() bool {
	_, ok := names[c]
	return ok
}
