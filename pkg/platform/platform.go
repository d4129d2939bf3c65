// Package platform describes how a database dialect renders DDL.
//
// An Info records the dialect-wide conventions (identifier quoting,
// constraint placement, comment syntax, statement separator, identifier
// length) and a registry from abstract type codes to native type names,
// together with tags telling which codes take a size, a precision and scale,
// or an explicit NULL default.
//
// Infos are produced by a Builder and are immutable afterwards, so a
// registered Info can be read from any number of goroutines. Concrete
// platforms are registered from pkg/platforms/*/ packages.
package platform

import (
	"maps"
	"slices"

	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

// Unlimited is the MaxIdentifierLength value for dialects without a limit.
const Unlimited = -1

// TypeTag classifies how the native type of a code is rendered.
type TypeTag uint8

// Type tags. A code may carry any combination of them.
const (
	// TagNullDefault marks types whose empty default is written as NULL.
	TagNullDefault TypeTag = 1 << iota
	// TagSize marks types that take a size, e.g. VARCHAR(32).
	TagSize
	// TagPrecisionAndScale marks types that take precision and scale, e.g. DECIMAL(10,2).
	TagPrecisionAndScale
)

// Has reports whether all bits of other are set.
func (t TypeTag) Has(other TypeTag) bool {
	return t&other == other
}

// String returns the tag names joined by "|".
func (t TypeTag) String() string {
	var out string
	add := func(s string) {
		if out != "" {
			out += "|"
		}
		out += s
	}
	if t.Has(TagNullDefault) {
		add("null_default")
	}
	if t.Has(TagSize) {
		add("size")
	}
	if t.Has(TagPrecisionAndScale) {
		add("precision_and_scale")
	}
	if out == "" {
		return "none"
	}
	return out
}

// Flags holds the scalar capability settings of a platform.
type Flags struct {
	RequiresNullAsDefaultValue bool
	PrimaryKeyEmbedded         bool
	ForeignKeysEmbedded        bool
	IndicesEmbedded            bool
	EmbeddedForeignKeysNamed   bool
	UseAlterTableForDrop       bool
	MaxIdentifierLength        int // Unlimited (-1) if there is no limit
	CaseSensitive              bool
	UseDelimitedIdentifiers    bool
	DelimiterToken             string
	ValueQuoteToken            string
	CommentsSupported          bool
	CommentPrefix              string
	CommentSuffix              string
	SQLCommandDelimiter        string
}

// DefaultFlags returns the settings of a generic ANSI-like dialect.
func DefaultFlags() Flags {
	return Flags{
		RequiresNullAsDefaultValue: false,
		PrimaryKeyEmbedded:         true,
		ForeignKeysEmbedded:        false,
		IndicesEmbedded:            false,
		EmbeddedForeignKeysNamed:   false,
		UseAlterTableForDrop:       false,
		MaxIdentifierLength:        Unlimited,
		CaseSensitive:              false,
		UseDelimitedIdentifiers:    true,
		DelimiterToken:             `"`,
		ValueQuoteToken:            `'`,
		CommentsSupported:          true,
		CommentPrefix:              "--",
		CommentSuffix:              "",
		SQLCommandDelimiter:        ";",
	}
}

// defaultTags is the ANSI baseline every platform starts from.
func defaultTags() map[types.Code]TypeTag {
	tags := make(map[types.Code]TypeTag)
	for _, c := range []types.Code{
		types.CHAR, types.VARCHAR, types.LONGVARCHAR, types.CLOB,
		types.BINARY, types.VARBINARY, types.LONGVARBINARY, types.BLOB,
	} {
		tags[c] |= TagNullDefault
	}
	for _, c := range []types.Code{types.CHAR, types.VARCHAR, types.BINARY, types.VARBINARY} {
		tags[c] |= TagSize
	}
	for _, c := range []types.Code{types.DECIMAL, types.NUMERIC} {
		tags[c] |= TagPrecisionAndScale
	}
	return tags
}

// Info is the immutable capability descriptor of one platform.
type Info struct {
	name        string
	flags       Flags
	nativeTypes map[types.Code]string
	tags        map[types.Code]TypeTag
}

// Name returns the platform name.
func (i *Info) Name() string {
	return i.name
}

// Flags returns a copy of the scalar settings.
func (i *Info) Flags() Flags {
	return i.flags
}

// RequiresNullAsDefaultValue reports whether NULL must be written for
// columns without a declared default.
func (i *Info) RequiresNullAsDefaultValue() bool {
	return i.flags.RequiresNullAsDefaultValue
}

// PrimaryKeyEmbedded reports whether primary keys are written inside CREATE
// TABLE rather than by a separate ALTER TABLE.
func (i *Info) PrimaryKeyEmbedded() bool {
	return i.flags.PrimaryKeyEmbedded
}

// ForeignKeysEmbedded reports whether foreign keys are written inside CREATE TABLE.
func (i *Info) ForeignKeysEmbedded() bool {
	return i.flags.ForeignKeysEmbedded
}

// IndicesEmbedded reports whether indices are written inside CREATE TABLE.
func (i *Info) IndicesEmbedded() bool {
	return i.flags.IndicesEmbedded
}

// EmbeddedForeignKeysNamed reports whether embedded foreign keys carry a name.
func (i *Info) EmbeddedForeignKeysNamed() bool {
	return i.flags.EmbeddedForeignKeysNamed
}

// UseAlterTableForDrop reports whether dropping an index or constraint
// requires ALTER TABLE.
func (i *Info) UseAlterTableForDrop() bool {
	return i.flags.UseAlterTableForDrop
}

// MaxIdentifierLength returns the longest legal identifier, or Unlimited.
func (i *Info) MaxIdentifierLength() int {
	return i.flags.MaxIdentifierLength
}

// CaseSensitive reports whether identifiers compare case sensitively.
func (i *Info) CaseSensitive() bool {
	return i.flags.CaseSensitive
}

// UseDelimitedIdentifiers reports whether identifiers are wrapped in DelimiterToken.
func (i *Info) UseDelimitedIdentifiers() bool {
	return i.flags.UseDelimitedIdentifiers
}

// DelimiterToken returns the identifier delimiter.
func (i *Info) DelimiterToken() string {
	return i.flags.DelimiterToken
}

// ValueQuoteToken returns the quote used for literal values.
func (i *Info) ValueQuoteToken() string {
	return i.flags.ValueQuoteToken
}

// CommentsSupported reports whether the dialect accepts SQL comments.
func (i *Info) CommentsSupported() bool {
	return i.flags.CommentsSupported
}

// CommentPrefix returns the text that starts a comment.
func (i *Info) CommentPrefix() string {
	return i.flags.CommentPrefix
}

// CommentSuffix returns the text that ends a comment. Comments always sit
// on their own line.
func (i *Info) CommentSuffix() string {
	return i.flags.CommentSuffix
}

// SQLCommandDelimiter returns the statement separator.
func (i *Info) SQLCommandDelimiter() string {
	return i.flags.SQLCommandDelimiter
}

// NativeType returns the native type registered for code.
// The second result is false if the platform has no mapping for it, in
// which case callers fall back to their generic type name.
func (i *Info) NativeType(code types.Code) (string, bool) {
	native, ok := i.nativeTypes[code]
	return native, ok
}

// NativeTypes returns a copy of all registered mappings.
func (i *Info) NativeTypes() map[types.Code]string {
	return maps.Clone(i.nativeTypes)
}

// Tags returns the tags of code; codes without tags return 0.
func (i *Info) Tags(code types.Code) TypeTag {
	return i.tags[code]
}

// HasNullDefault reports whether the native type of code has a NULL default.
func (i *Info) HasNullDefault(code types.Code) bool {
	return i.tags[code].Has(TagNullDefault)
}

// HasSize reports whether the native type of code takes a size.
func (i *Info) HasSize(code types.Code) bool {
	return i.tags[code].Has(TagSize)
}

// HasPrecisionAndScale reports whether the native type of code takes
// precision and scale.
func (i *Info) HasPrecisionAndScale(code types.Code) bool {
	return i.tags[code].Has(TagPrecisionAndScale)
}

// TaggedCodes returns the codes carrying every bit of tag, in ascending
// order. A zero tag matches nothing.
func (i *Info) TaggedCodes(tag TypeTag) []types.Code {
	if tag == 0 {
		return nil
	}
	var out []types.Code
	for c, t := range i.tags {
		if t.Has(tag) {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}

// Derive returns a Builder seeded with a copy of this platform under a new
// name. The Info itself is left untouched.
func (i *Info) Derive(name string, opts ...Option) *Builder {
	b := NewBuilder(name, opts...)
	b.flags = i.flags
	b.nativeTypes = make(map[types.Code]string, len(i.nativeTypes))
	maps.Copy(b.nativeTypes, i.nativeTypes)
	b.tags = make(map[types.Code]TypeTag, len(i.tags))
	maps.Copy(b.tags, i.tags)
	return b
}
