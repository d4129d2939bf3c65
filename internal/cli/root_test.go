package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/ddlplatform/internal/cli/commands"
	"github.com/leapstack-labs/ddlplatform/internal/config"
	"github.com/leapstack-labs/ddlplatform/internal/probe"
	"github.com/leapstack-labs/ddlplatform/pkg/platform"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ddlplatform v"+Version)
}

func TestListCommand(t *testing.T) {
	out, _, err := execute(t, "list")
	require.NoError(t, err)

	// Non-terminal output defaults to JSON
	var summaries []commands.PlatformSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))

	byName := make(map[string]commands.PlatformSummary)
	for _, s := range summaries {
		byName[s.Name] = s
	}
	require.Contains(t, byName, "postgres")
	assert.Equal(t, 63, byName["postgres"].MaxIdentifierLength)
	assert.False(t, byName["postgres"].Custom)
	assert.Equal(t, platform.Unlimited, byName["ansi"].MaxIdentifierLength)
}

func TestListCommandText(t *testing.T) {
	out, _, err := execute(t, "list", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Platforms (")
	assert.Contains(t, out, "mssql")
	assert.Contains(t, out, "unlimited")
}

func TestShowCommand(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "show", "mysql", "-o", "json")
		require.NoError(t, err)

		var snap platform.Snapshot
		require.NoError(t, json.Unmarshal([]byte(out), &snap))
		assert.Equal(t, "mysql", snap.Name)
		assert.Equal(t, "`", snap.DelimiterToken)
		assert.Equal(t, "#", snap.CommentPrefix)
		assert.Equal(t, 64, snap.MaxIdentifierLength)
	})

	t.Run("yaml", func(t *testing.T) {
		out, _, err := execute(t, "show", "postgres", "--output", "yaml")
		require.NoError(t, err)

		var snap platform.Snapshot
		require.NoError(t, yaml.Unmarshal([]byte(out), &snap))
		assert.Equal(t, "BYTEA", snap.NativeTypes["BLOB"])
		assert.NotContains(t, snap.Sized, "BINARY")
	})

	t.Run("text", func(t *testing.T) {
		out, _, err := execute(t, "show", "postgres", "-o", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "Platform postgres")
		assert.Contains(t, out, "Max Identifier Length")
		assert.Contains(t, out, "DOUBLE PRECISION")
		assert.Contains(t, out, "precision_and_scale")
	})

	t.Run("default platform", func(t *testing.T) {
		out, _, err := execute(t, "show")
		require.NoError(t, err)
		assert.Contains(t, out, `"name": "ansi"`)
	})

	t.Run("unknown platform", func(t *testing.T) {
		_, _, err := execute(t, "show", "oracle")
		var unknown *platform.UnknownPlatformError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "oracle", unknown.Name)
	})
}

func TestCustomPlatformFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ddlplatform.yaml"), []byte(`
platform: pg-short
platforms:
  pg-short:
    base: postgres
    flags:
      max_identifier_length: 31
      comment_prefix: ~
    native_types:
      BOOLEAN: BOOL
      NO_SUCH_TYPE: X
`), 0o600))
	t.Chdir(dir)

	out, errOut, err := execute(t, "show")
	require.NoError(t, err)

	var snap platform.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "pg-short", snap.Name)
	assert.Equal(t, 31, snap.MaxIdentifierLength)
	assert.Equal(t, "", snap.CommentPrefix)
	assert.Equal(t, "BOOL", snap.NativeTypes["BOOLEAN"])
	assert.Equal(t, "BYTEA", snap.NativeTypes["BLOB"])

	// The unknown type name is reported on stderr and skipped
	assert.Contains(t, errOut, "cannot add native type mapping for undefined type")
	assert.Contains(t, errOut, "NO_SUCH_TYPE")

	out, _, err = execute(t, "list")
	require.NoError(t, err)
	var summaries []commands.PlatformSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	var found bool
	for _, s := range summaries {
		if s.Name == "pg-short" {
			found = true
			assert.True(t, s.Custom)
			assert.Equal(t, "postgres", s.Base)
		}
	}
	assert.True(t, found, "custom platform is listed")
}

func TestShowAsConfigRoundTrip(t *testing.T) {
	for _, name := range []string{"mysql", "postgres", "mssql"} {
		t.Run(name, func(t *testing.T) {
			def, _, err := execute(t, "show", name, "--as-config", "-o", "yaml")
			require.NoError(t, err)
			assert.NotContains(t, def, "base:")

			var doc strings.Builder
			doc.WriteString("platforms:\n  " + name + "-copy:\n")
			for _, line := range strings.Split(strings.TrimRight(def, "\n"), "\n") {
				doc.WriteString("    " + line + "\n")
			}
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "ddlplatform.yaml"), []byte(doc.String()), 0o600))
			t.Chdir(dir)

			orig, _, err := execute(t, "show", name, "-o", "json")
			require.NoError(t, err)
			copied, errOut, err := execute(t, "show", name+"-copy", "-o", "json")
			require.NoError(t, err)
			assert.NotContains(t, errOut, "WARN")

			var want, got platform.Snapshot
			require.NoError(t, json.Unmarshal([]byte(orig), &want))
			require.NoError(t, json.Unmarshal([]byte(copied), &got))
			want.Name = name + "-copy"
			assert.Equal(t, want, got)
		})
	}
}

func TestShowAsConfigJSON(t *testing.T) {
	out, _, err := execute(t, "show", "mysql", "--as-config")
	require.NoError(t, err)

	var def config.PlatformConfig
	require.NoError(t, json.Unmarshal([]byte(out), &def))
	assert.Equal(t, "LONGTEXT", def.NativeTypes["CLOB"])
	assert.Equal(t, "`", def.Flags["delimiter_token"])
	assert.Equal(t, float64(64), def.Flags["max_identifier_length"])
}

func TestInvalidConfig(t *testing.T) {
	_, _, err := execute(t, "list", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output")

	_, _, err = execute(t, "types", "--vocabulary", "jdbc5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid vocabulary")

	_, _, err = execute(t, "list", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestTypesCommand(t *testing.T) {
	decode := func(t *testing.T, out string) map[string]commands.TypeEntry {
		t.Helper()
		var entries []commands.TypeEntry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		m := make(map[string]commands.TypeEntry, len(entries))
		for _, e := range entries {
			m[e.Name] = e
		}
		return m
	}

	t.Run("standard", func(t *testing.T) {
		out, _, err := execute(t, "types")
		require.NoError(t, err)
		entries := decode(t, out)
		assert.Equal(t, int32(12), entries["VARCHAR"].Code)
		assert.Contains(t, entries, "NCHAR")
		assert.Empty(t, entries["VARCHAR"].Native)
	})

	t.Run("legacy", func(t *testing.T) {
		out, _, err := execute(t, "types", "--vocabulary", "legacy")
		require.NoError(t, err)
		entries := decode(t, out)
		assert.NotContains(t, entries, "NCHAR")
		assert.Contains(t, entries, "CLOB")
	})

	t.Run("with platform", func(t *testing.T) {
		out, _, err := execute(t, "types", "--platform", "mysql")
		require.NoError(t, err)
		entries := decode(t, out)
		assert.Equal(t, "LONGTEXT", entries["CLOB"].Native)
		assert.Equal(t, []string{"null_default", "size"}, entries["VARCHAR"].Tags)
	})

	t.Run("text", func(t *testing.T) {
		out, _, err := execute(t, "types", "-p", "sqlite", "-o", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "Types on sqlite")
		assert.Contains(t, out, "TIMESTAMP")
	})
}

func TestProbeCommand(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		out, _, err := execute(t, "probe", "--platform", "sqlite", "--dsn", ":memory:")
		require.NoError(t, err)

		var reports []probe.Report
		require.NoError(t, json.Unmarshal([]byte(out), &reports))
		require.Len(t, reports, 1)
		assert.Equal(t, "sqlite", reports[0].Dialect)
		assert.NotEmpty(t, reports[0].ServerVersion)
		assert.Empty(t, reports[0].Mismatches)
	})

	t.Run("custom platform uses base dialect", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ddlplatform.yml"), []byte(`
platforms:
  lite:
    base: sqlite
    native_types:
      CLOB: "NOT A TYPE("
`), 0o600))
		t.Chdir(dir)

		out, errOut, err := execute(t, "probe", "-t", "lite=:memory:", "-o", "text")
		assert.ErrorIs(t, err, commands.ErrMismatch)
		assert.Contains(t, out, "lite (sqlite)")
		assert.Contains(t, out, "native_type.CLOB")
		assert.Contains(t, out, "unbalanced parentheses")
		assert.Contains(t, errOut, "lite differs from its sqlite server in 1 properties")
	})

	t.Run("errors", func(t *testing.T) {
		_, _, err := execute(t, "probe")
		assert.ErrorContains(t, err, "nothing to probe")

		_, _, err = execute(t, "probe", "--platform", "sqlite")
		assert.ErrorContains(t, err, "needs --dsn")

		_, _, err = execute(t, "probe", "-t", "sqlite")
		assert.ErrorContains(t, err, "expected platform=dsn")

		_, _, err = execute(t, "probe", "--dsn", "x")
		var unsupported *probe.UnsupportedDialectError
		assert.True(t, errors.As(err, &unsupported), "ansi has no driver: %v", err)
	})
}
