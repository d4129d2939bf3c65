package platform

import (
	"log/slog"
	"maps"

	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for warnings while building.
// A nil logger falls back to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithVocabulary sets the vocabulary NativeTypeByName resolves names against.
func WithVocabulary(v types.Vocabulary) Option {
	return func(b *Builder) {
		if v != nil {
			b.vocab = v
		}
	}
}

// Builder provides a fluent API for constructing platforms.
//
// A Builder starts from the documented defaults and is meant to be used by a
// single goroutine during initialization. Build returns an immutable Info.
type Builder struct {
	name        string
	flags       Flags
	nativeTypes map[types.Code]string
	tags        map[types.Code]TypeTag

	logger *slog.Logger
	vocab  types.Vocabulary
}

// NewBuilder creates a builder with default settings for the named platform.
func NewBuilder(name string, opts ...Option) *Builder {
	b := &Builder{
		name:        name,
		flags:       DefaultFlags(),
		nativeTypes: make(map[types.Code]string),
		tags:        defaultTags(),
		logger:      slog.Default(),
		vocab:       types.Standard,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the name the platform will be built with.
func (b *Builder) Name() string {
	return b.name
}

// Vocabulary returns the vocabulary used for symbolic type names.
func (b *Builder) Vocabulary() types.Vocabulary {
	return b.vocab
}

// RequiresNullAsDefaultValue sets whether NULL must be written for columns
// without a declared default.
func (b *Builder) RequiresNullAsDefaultValue(v bool) *Builder {
	b.flags.RequiresNullAsDefaultValue = v
	return b
}

// PrimaryKeyEmbedded sets whether primary keys are written inside CREATE TABLE.
func (b *Builder) PrimaryKeyEmbedded(v bool) *Builder {
	b.flags.PrimaryKeyEmbedded = v
	return b
}

// ForeignKeysEmbedded sets whether foreign keys are written inside CREATE TABLE.
func (b *Builder) ForeignKeysEmbedded(v bool) *Builder {
	b.flags.ForeignKeysEmbedded = v
	return b
}

// IndicesEmbedded sets whether indices are written inside CREATE TABLE.
func (b *Builder) IndicesEmbedded(v bool) *Builder {
	b.flags.IndicesEmbedded = v
	return b
}

// EmbeddedForeignKeysNamed sets whether embedded foreign keys carry a name.
func (b *Builder) EmbeddedForeignKeysNamed(v bool) *Builder {
	b.flags.EmbeddedForeignKeysNamed = v
	return b
}

// UseAlterTableForDrop sets whether ALTER TABLE is used to drop indices and constraints.
func (b *Builder) UseAlterTableForDrop(v bool) *Builder {
	b.flags.UseAlterTableForDrop = v
	return b
}

// MaxIdentifierLength sets the longest legal identifier; use Unlimited for no limit.
func (b *Builder) MaxIdentifierLength(n int) *Builder {
	b.flags.MaxIdentifierLength = n
	return b
}

// CaseSensitive sets whether identifiers compare case sensitively.
func (b *Builder) CaseSensitive(v bool) *Builder {
	b.flags.CaseSensitive = v
	return b
}

// UseDelimitedIdentifiers sets whether identifiers are delimited.
func (b *Builder) UseDelimitedIdentifiers(v bool) *Builder {
	b.flags.UseDelimitedIdentifiers = v
	return b
}

// DelimiterToken sets the identifier delimiter.
func (b *Builder) DelimiterToken(s string) *Builder {
	b.flags.DelimiterToken = s
	return b
}

// ValueQuoteToken sets the quote used for literal values.
func (b *Builder) ValueQuoteToken(s string) *Builder {
	b.flags.ValueQuoteToken = s
	return b
}

// CommentsSupported sets whether the dialect accepts SQL comments.
func (b *Builder) CommentsSupported(v bool) *Builder {
	b.flags.CommentsSupported = v
	return b
}

// CommentPrefix sets the text that starts a comment.
func (b *Builder) CommentPrefix(s string) *Builder {
	b.flags.CommentPrefix = s
	return b
}

// CommentSuffix sets the text that ends a comment.
func (b *Builder) CommentSuffix(s string) *Builder {
	b.flags.CommentSuffix = s
	return b
}

// SQLCommandDelimiter sets the statement separator.
func (b *Builder) SQLCommandDelimiter(s string) *Builder {
	b.flags.SQLCommandDelimiter = s
	return b
}

// WithFlags replaces all scalar settings at once.
func (b *Builder) WithFlags(f Flags) *Builder {
	b.flags = f
	return b
}

// NativeType maps code to a native type name, replacing any earlier mapping.
func (b *Builder) NativeType(code types.Code, native string) *Builder {
	b.nativeTypes[code] = native
	return b
}

// NativeTypes maps several codes at once.
func (b *Builder) NativeTypes(m map[types.Code]string) *Builder {
	maps.Copy(b.nativeTypes, m)
	return b
}

// NativeTypeByName maps the code named typeName to a native type name.
//
// The name is resolved through the builder's vocabulary. Names the
// vocabulary does not know are skipped with a warning, so the same
// initialization code works against older vocabularies.
func (b *Builder) NativeTypeByName(typeName, native string) *Builder {
	code, ok := b.vocab.Lookup(typeName)
	if !ok {
		b.logger.Warn("cannot add native type mapping for undefined type",
			slog.String("platform", b.name),
			slog.String("type", typeName),
			slog.String("native_type", native))
		return b
	}
	return b.NativeType(code, native)
}

// NullDefault adds code to or removes it from the types with a NULL default.
func (b *Builder) NullDefault(code types.Code, on bool) *Builder {
	return b.tag(code, TagNullDefault, on)
}

// Sized adds code to or removes it from the types that take a size.
func (b *Builder) Sized(code types.Code, on bool) *Builder {
	return b.tag(code, TagSize, on)
}

// PrecisionAndScale adds code to or removes it from the types that take
// precision and scale.
func (b *Builder) PrecisionAndScale(code types.Code, on bool) *Builder {
	return b.tag(code, TagPrecisionAndScale, on)
}

// TagByName sets or clears tag on the code named typeName. Like
// NativeTypeByName, unknown names are skipped with a warning.
func (b *Builder) TagByName(typeName string, tag TypeTag, on bool) *Builder {
	code, ok := b.vocab.Lookup(typeName)
	if !ok {
		b.logger.Warn("cannot tag undefined type",
			slog.String("platform", b.name),
			slog.String("type", typeName),
			slog.String("tag", tag.String()))
		return b
	}
	return b.tag(code, tag, on)
}

func (b *Builder) tag(code types.Code, tag TypeTag, on bool) *Builder {
	t := b.tags[code]
	if on {
		t |= tag
	} else {
		t &^= tag
	}
	if t == 0 {
		delete(b.tags, code)
	} else {
		b.tags[code] = t
	}
	return b
}

// Build returns an immutable snapshot of the builder's state.
// The builder stays usable; later changes do not affect the returned Info.
func (b *Builder) Build() *Info {
	return &Info{
		name:        b.name,
		flags:       b.flags,
		nativeTypes: maps.Clone(b.nativeTypes),
		tags:        maps.Clone(b.tags),
	}
}
