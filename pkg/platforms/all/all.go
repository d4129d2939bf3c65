// Package all registers every built-in platform.
//
//	import _ "github.com/leapstack-labs/ddlplatform/pkg/platforms/all"
package all

import (
	// Each import registers its platform in init().
	_ "github.com/leapstack-labs/ddlplatform/pkg/platforms/ansi"
	_ "github.com/leapstack-labs/ddlplatform/pkg/platforms/duckdb"
	_ "github.com/leapstack-labs/ddlplatform/pkg/platforms/mssql"
	_ "github.com/leapstack-labs/ddlplatform/pkg/platforms/mysql"
	_ "github.com/leapstack-labs/ddlplatform/pkg/platforms/postgres"
	_ "github.com/leapstack-labs/ddlplatform/pkg/platforms/sqlite"
)
