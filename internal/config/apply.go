package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/leapstack-labs/ddlplatform/pkg/platform"
	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

// Flag errors.
var (
	ErrUnknownFlag = errors.New("unknown flag")
	ErrFlagType    = errors.New("wrong value type")
)

// FlagError reports a platform flag that could not be applied.
type FlagError struct {
	Platform string
	Key      string
	Err      error
}

func (e *FlagError) Error() string {
	return fmt.Sprintf("platform %q flag %q: %v", e.Platform, e.Key, e.Err)
}

func (e *FlagError) Unwrap() error {
	return e.Err
}

// Apply builds every platform defined under platforms and registers it,
// replacing any platform of the same name. Platforms may derive from one
// another; the built platforms are returned in name order.
func Apply(cfg *Config, logger *slog.Logger) ([]*platform.Info, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	vocab, err := cfg.TypeVocabulary()
	if err != nil {
		return nil, err
	}

	a := &applier{
		defs:  cfg.Platforms,
		built: make(map[string]*platform.Info, len(cfg.Platforms)),
		state: make(map[string]int, len(cfg.Platforms)),
		opts:  []platform.Option{platform.WithLogger(logger), platform.WithVocabulary(vocab)},
	}

	names := make([]string, 0, len(cfg.Platforms))
	for name := range cfg.Platforms {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*platform.Info, 0, len(names))
	for _, name := range names {
		info, err := a.build(name)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}

	for _, info := range out {
		platform.Register(info)
		logger.Debug("registered platform", slog.String("platform", info.Name()))
	}
	return out, nil
}

const (
	visiting = iota + 1
	done
)

type applier struct {
	defs  map[string]PlatformConfig
	built map[string]*platform.Info
	state map[string]int
	opts  []platform.Option
}

func (a *applier) build(name string) (*platform.Info, error) {
	switch a.state[name] {
	case done:
		return a.built[name], nil
	case visiting:
		return nil, fmt.Errorf("platform %q: cyclic base chain", name)
	}
	a.state[name] = visiting

	def := a.defs[name]
	base, err := a.base(name, def.Base)
	if err != nil {
		return nil, err
	}

	b := base.Derive(name, a.opts...)
	if err := applyFlags(b, def.Flags); err != nil {
		return nil, err
	}
	for typeName, native := range def.NativeTypes {
		if code, ok := types.ParseCode(typeName); ok {
			b.NativeType(code, native)
			continue
		}
		b.NativeTypeByName(strings.ToUpper(typeName), native)
	}
	applyTags(b, def.NullDefault, platform.TagNullDefault)
	applyTags(b, def.Sized, platform.TagSize)
	applyTags(b, def.PrecisionAndScale, platform.TagPrecisionAndScale)

	info := b.Build()
	a.built[name] = info
	a.state[name] = done
	return info, nil
}

// base resolves the platform a definition derives from. Definitions in the
// same config take precedence over registered platforms; an empty base
// starts from the defaults.
func (a *applier) base(name, baseName string) (*platform.Info, error) {
	if baseName == "" {
		return platform.NewBuilder(name, a.opts...).Build(), nil
	}
	if _, ok := a.defs[baseName]; ok && baseName != name {
		return a.build(baseName)
	}
	info, err := platform.Lookup(baseName)
	if err != nil {
		return nil, fmt.Errorf("platform %q: base: %w", name, err)
	}
	return info, nil
}

func applyTags(b *platform.Builder, tags map[string]bool, tag platform.TypeTag) {
	for typeName, on := range tags {
		if code, ok := types.ParseCode(typeName); ok {
			switch tag {
			case platform.TagNullDefault:
				b.NullDefault(code, on)
			case platform.TagSize:
				b.Sized(code, on)
			case platform.TagPrecisionAndScale:
				b.PrecisionAndScale(code, on)
			}
			continue
		}
		b.TagByName(strings.ToUpper(typeName), tag, on)
	}
}

func applyFlags(b *platform.Builder, flags map[string]any) error {
	keys := make([]string, 0, len(flags))
	for key := range flags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := applyFlag(b, key, flags[key]); err != nil {
			return &FlagError{Platform: b.Name(), Key: key, Err: err}
		}
	}
	return nil
}

func applyFlag(b *platform.Builder, key string, v any) error {
	switch key {
	case "requires_null_as_default_value":
		return setBool(v, func(x bool) { b.RequiresNullAsDefaultValue(x) })
	case "primary_key_embedded":
		return setBool(v, func(x bool) { b.PrimaryKeyEmbedded(x) })
	case "foreign_keys_embedded":
		return setBool(v, func(x bool) { b.ForeignKeysEmbedded(x) })
	case "indices_embedded":
		return setBool(v, func(x bool) { b.IndicesEmbedded(x) })
	case "embedded_foreign_keys_named":
		return setBool(v, func(x bool) { b.EmbeddedForeignKeysNamed(x) })
	case "use_alter_table_for_drop":
		return setBool(v, func(x bool) { b.UseAlterTableForDrop(x) })
	case "case_sensitive":
		return setBool(v, func(x bool) { b.CaseSensitive(x) })
	case "use_delimited_identifiers":
		return setBool(v, func(x bool) { b.UseDelimitedIdentifiers(x) })
	case "comments_supported":
		return setBool(v, func(x bool) { b.CommentsSupported(x) })
	case "max_identifier_length":
		return setInt(v, func(x int) { b.MaxIdentifierLength(x) })
	case "delimiter_token":
		return setString(v, func(x string) { b.DelimiterToken(x) })
	case "value_quote_token":
		return setString(v, func(x string) { b.ValueQuoteToken(x) })
	case "sql_command_delimiter":
		return setString(v, func(x string) { b.SQLCommandDelimiter(x) })
	case "comment_prefix":
		// null is accepted and stored as ""
		return setOptionalString(v, func(x string) { b.CommentPrefix(x) })
	case "comment_suffix":
		return setOptionalString(v, func(x string) { b.CommentSuffix(x) })
	default:
		return ErrUnknownFlag
	}
}

func setBool(v any, set func(bool)) error {
	x, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%w: want bool, got %T", ErrFlagType, v)
	}
	set(x)
	return nil
}

func setInt(v any, set func(int)) error {
	switch x := v.(type) {
	case int:
		set(x)
	case int64:
		set(int(x))
	case uint64:
		set(int(x))
	case float64:
		if x != float64(int(x)) {
			return fmt.Errorf("%w: want integer, got %v", ErrFlagType, x)
		}
		set(int(x))
	default:
		return fmt.Errorf("%w: want integer, got %T", ErrFlagType, v)
	}
	return nil
}

func setString(v any, set func(string)) error {
	x, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: want string, got %T", ErrFlagType, v)
	}
	set(x)
	return nil
}

func setOptionalString(v any, set func(string)) error {
	if v == nil {
		set("")
		return nil
	}
	return setString(v, set)
}
