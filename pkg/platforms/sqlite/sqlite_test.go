package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ddlplatform/pkg/platform"
	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

func TestSQLite(t *testing.T) {
	assert.Equal(t, "sqlite", SQLite.Name())
	assert.True(t, SQLite.ForeignKeysEmbedded())
	assert.Equal(t, platform.Unlimited, SQLite.MaxIdentifierLength())

	got, ok := SQLite.NativeType(types.BOOLEAN)
	require.True(t, ok)
	assert.Equal(t, "INTEGER", got)

	got, ok = SQLite.NativeType(types.VARBINARY)
	require.True(t, ok)
	assert.Equal(t, "BLOB", got)
	assert.False(t, SQLite.HasSize(types.VARBINARY))
	assert.True(t, SQLite.HasSize(types.VARCHAR))
}

func TestRegistration(t *testing.T) {
	info, ok := platform.Get("sqlite")
	require.True(t, ok, "sqlite platform should be registered")
	assert.Same(t, SQLite, info)
}
