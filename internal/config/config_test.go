package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/ddlplatform/internal/testutil"
	"github.com/leapstack-labs/ddlplatform/pkg/platform"
	"github.com/leapstack-labs/ddlplatform/pkg/types"

	// Register built-in platforms used as bases
	_ "github.com/leapstack-labs/ddlplatform/pkg/platforms/all"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPlatform, cfg.Platform)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultVocabulary, cfg.Vocabulary)
	assert.Empty(t, cfg.Platforms)
	assert.Empty(t, cfg.File)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
platform: postgres
output: json
log_level: debug
vocabulary: legacy
platforms:
  pg-legacy:
    base: postgres
    flags:
      max_identifier_length: 31
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "postgres", cfg.Platform)
	assert.Equal(t, OutputJSON, cfg.Output)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	vocab, err := cfg.TypeVocabulary()
	require.NoError(t, err)
	assert.Equal(t, types.Legacy, vocab)

	require.Contains(t, cfg.Platforms, "pg-legacy")
	assert.Equal(t, "postgres", cfg.Platforms["pg-legacy"].Base)
}

func TestLoadFindsFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt), []byte("platform: mysql\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Platform)
	assert.Equal(t, ConfigFileNameAlt, filepath.Base(cfg.File))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, "platform: postgres\noutput: json\nlog_level: warn\n")
	t.Setenv("DDLPLATFORM_OUTPUT", "yaml")
	t.Setenv("DDLPLATFORM_LOG_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "")
	flags.String("log-level", "", "")
	flags.String("unrelated", "", "")
	require.NoError(t, flags.Parse([]string{"--log-level", "debug", "--unrelated", "x"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Platform) // file
	assert.Equal(t, OutputYAML, cfg.Output)   // env over file
	assert.Equal(t, "debug", cfg.LogLevel)    // flag over env
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"bad output", "output: xml\n", "invalid output"},
		{"bad log level", "log_level: loud\n", "invalid log_level"},
		{"bad vocabulary", "vocabulary: jdbc5\n", "invalid vocabulary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestApply(t *testing.T) {
	path := writeConfig(t, `
platforms:
  cfgtest-pg:
    base: postgres
    flags:
      max_identifier_length: 31
      comment_prefix: ~
      comment_suffix: "*/"
      use_alter_table_for_drop: true
    native_types:
      BOOLEAN: BOOL
      integer: INT4
      NO_SUCH_TYPE: WHATEVER
    sized:
      BINARY: true
    precision_and_scale:
      DOUBLE: true
    null_default:
      BLOB: false
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	logger, rec := testutil.NewRecorder()
	infos, err := Apply(cfg, logger)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	info, ok := platform.Get("cfgtest-pg")
	require.True(t, ok)
	assert.Same(t, infos[0], info)

	assert.Equal(t, 31, info.MaxIdentifierLength())
	assert.Equal(t, "", info.CommentPrefix(), "null comment prefix is stored as empty")
	assert.Equal(t, "*/", info.CommentSuffix())
	assert.True(t, info.UseAlterTableForDrop())

	native, _ := info.NativeType(types.BOOLEAN)
	assert.Equal(t, "BOOL", native)
	native, _ = info.NativeType(types.INTEGER)
	assert.Equal(t, "INT4", native)
	// Inherited from the base.
	native, _ = info.NativeType(types.CLOB)
	assert.Equal(t, "TEXT", native)

	assert.True(t, info.HasSize(types.BINARY))
	assert.True(t, info.HasPrecisionAndScale(types.DOUBLE))
	assert.False(t, info.HasNullDefault(types.BLOB))

	warnings := rec.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "NO_SUCH_TYPE", warnings[0].Attrs["type"])

	// The registered base platform is unchanged.
	assert.Equal(t, 63, platform.MustGet("postgres").MaxIdentifierLength())
}

func TestApplyChainedBases(t *testing.T) {
	cfg := &Config{Platforms: map[string]PlatformConfig{
		"cfgtest-child":  {Base: "cfgtest-parent", Flags: map[string]any{"delimiter_token": "["}},
		"cfgtest-parent": {Base: "mysql", Flags: map[string]any{"max_identifier_length": int64(30)}},
		"cfgtest-plain":  {Flags: map[string]any{"case_sensitive": true}},
	}}

	infos, err := Apply(cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)
	require.Len(t, infos, 3)

	child := platform.MustGet("cfgtest-child")
	assert.Equal(t, "[", child.DelimiterToken())
	assert.Equal(t, 30, child.MaxIdentifierLength())
	assert.Equal(t, "#", child.CommentPrefix(), "inherited from mysql")

	plain := platform.MustGet("cfgtest-plain")
	assert.True(t, plain.CaseSensitive())
	assert.Equal(t, "--", plain.CommentPrefix())
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name      string
		platforms map[string]PlatformConfig
		check     func(t *testing.T, err error)
	}{
		{
			name:      "unknown base",
			platforms: map[string]PlatformConfig{"x": {Base: "oracle"}},
			check: func(t *testing.T, err error) {
				var unknown *platform.UnknownPlatformError
				assert.True(t, errors.As(err, &unknown))
			},
		},
		{
			name: "cycle",
			platforms: map[string]PlatformConfig{
				"a": {Base: "b"},
				"b": {Base: "a"},
			},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "cyclic")
			},
		},
		{
			name:      "unknown flag",
			platforms: map[string]PlatformConfig{"x": {Flags: map[string]any{"quote": "`"}}},
			check: func(t *testing.T, err error) {
				var flagErr *FlagError
				require.True(t, errors.As(err, &flagErr))
				assert.Equal(t, "quote", flagErr.Key)
				assert.ErrorIs(t, err, ErrUnknownFlag)
			},
		},
		{
			name:      "wrong type",
			platforms: map[string]PlatformConfig{"x": {Flags: map[string]any{"case_sensitive": "yes"}}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrFlagType)
			},
		},
		{
			name:      "null for a non-optional flag",
			platforms: map[string]PlatformConfig{"x": {Flags: map[string]any{"delimiter_token": nil}}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrFlagType)
			},
		},
		{
			name:      "fractional length",
			platforms: map[string]PlatformConfig{"x": {Flags: map[string]any{"max_identifier_length": 1.5}}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrFlagType)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(&Config{Platforms: tt.platforms}, nil)
			require.Error(t, err)
			tt.check(t, err)

			_, ok := platform.Get("x")
			assert.False(t, ok, "nothing is registered on error")
		})
	}
}

func TestApplyLegacyVocabulary(t *testing.T) {
	cfg := &Config{
		Vocabulary: VocabularyLegacy,
		Platforms: map[string]PlatformConfig{
			"cfgtest-legacy": {NativeTypes: map[string]string{"NCHAR": "NCHAR", "CHAR": "CHARACTER"}},
		},
	}

	logger, rec := testutil.NewRecorder()
	infos, err := Apply(cfg, logger)
	require.NoError(t, err)

	assert.Equal(t, map[types.Code]string{types.CHAR: "CHARACTER"}, infos[0].NativeTypes())
	assert.Len(t, rec.Warnings(), 1)
}

func TestFromInfoRebuildsPlatform(t *testing.T) {
	custom := platform.NewBuilder("cfgtest-weird").
		MaxIdentifierLength(18).
		CommentPrefix("").
		NativeType(types.CLOB, "LONG VARCHAR").
		NativeType(types.Code(9999), "WEIRD").
		Sized(types.CHAR, false).
		Sized(types.Code(9998), true).
		NullDefault(types.BLOB, false).
		Build()

	tests := []struct {
		name string
		info *platform.Info
	}{
		{"mysql", platform.MustGet("mysql")},
		{"mssql", platform.MustGet("mssql")},
		{"ansi", platform.MustGet("ansi")},
		{"custom", custom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			copyName := "cfgtest-copy-" + tt.name
			doc, err := yaml.Marshal(map[string]any{
				"platforms": map[string]PlatformConfig{copyName: FromInfo(tt.info)},
			})
			require.NoError(t, err)

			cfg, err := Load(writeConfig(t, string(doc)), nil)
			require.NoError(t, err)

			logger, rec := testutil.NewRecorder()
			infos, err := Apply(cfg, logger)
			require.NoError(t, err)
			require.Len(t, infos, 1)
			assert.Empty(t, rec.Warnings())

			want := tt.info.Snapshot()
			want.Name = copyName
			assert.Equal(t, want, infos[0].Snapshot())
		})
	}
}

func TestFromInfoSwitchesOffDefaultTags(t *testing.T) {
	info := platform.NewBuilder("cfgtest-notags").
		Sized(types.VARCHAR, false).
		PrecisionAndScale(types.DOUBLE, true).
		Build()

	def := FromInfo(info)
	assert.Empty(t, def.Base)
	assert.Equal(t, false, def.Sized["VARCHAR"])
	assert.Equal(t, true, def.Sized["CHAR"])
	assert.Equal(t, true, def.PrecisionAndScale["DOUBLE"])
	assert.Equal(t, platform.Unlimited, def.Flags["max_identifier_length"])
	assert.Len(t, def.Flags, 15)
}

func TestRoot(t *testing.T) {
	cfg := &Config{Platforms: map[string]PlatformConfig{
		"child":  {Base: "parent"},
		"parent": {Base: "postgres"},
		"self":   {Base: "self"},
		"nobase": {},
		"loop-a": {Base: "loop-b"},
		"loop-b": {Base: "loop-a"},
	}}

	assert.Equal(t, "postgres", cfg.Root("child"))
	assert.Equal(t, "postgres", cfg.Root("parent"))
	assert.Equal(t, "mysql", cfg.Root("mysql"))
	assert.Equal(t, "self", cfg.Root("self"))
	assert.Equal(t, "nobase", cfg.Root("nobase"))
	assert.Contains(t, []string{"loop-a", "loop-b"}, cfg.Root("loop-a"))
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultPlatform, FromContext(ctx).Platform)
	assert.NotNil(t, GetLogger(ctx))

	cfg := &Config{Platform: "mysql"}
	logger := testutil.NewTestLogger(t)
	ctx = WithLogger(WithConfig(ctx, cfg), logger)

	assert.Same(t, cfg, FromContext(ctx))
	assert.Same(t, logger, GetLogger(ctx))
}
