package platform

import (
	"sort"

	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

// Snapshot is the exported, serializable form of an Info.
type Snapshot struct {
	Name                       string            `json:"name" yaml:"name"`
	RequiresNullAsDefaultValue bool              `json:"requires_null_as_default_value" yaml:"requires_null_as_default_value"`
	PrimaryKeyEmbedded         bool              `json:"primary_key_embedded" yaml:"primary_key_embedded"`
	ForeignKeysEmbedded        bool              `json:"foreign_keys_embedded" yaml:"foreign_keys_embedded"`
	IndicesEmbedded            bool              `json:"indices_embedded" yaml:"indices_embedded"`
	EmbeddedForeignKeysNamed   bool              `json:"embedded_foreign_keys_named" yaml:"embedded_foreign_keys_named"`
	UseAlterTableForDrop       bool              `json:"use_alter_table_for_drop" yaml:"use_alter_table_for_drop"`
	MaxIdentifierLength        int               `json:"max_identifier_length" yaml:"max_identifier_length"`
	CaseSensitive              bool              `json:"case_sensitive" yaml:"case_sensitive"`
	UseDelimitedIdentifiers    bool              `json:"use_delimited_identifiers" yaml:"use_delimited_identifiers"`
	DelimiterToken             string            `json:"delimiter_token" yaml:"delimiter_token"`
	ValueQuoteToken            string            `json:"value_quote_token" yaml:"value_quote_token"`
	CommentsSupported          bool              `json:"comments_supported" yaml:"comments_supported"`
	CommentPrefix              string            `json:"comment_prefix" yaml:"comment_prefix"`
	CommentSuffix              string            `json:"comment_suffix" yaml:"comment_suffix"`
	SQLCommandDelimiter        string            `json:"sql_command_delimiter" yaml:"sql_command_delimiter"`
	NativeTypes                map[string]string `json:"native_types" yaml:"native_types"`
	NullDefault                []string          `json:"null_default" yaml:"null_default"`
	Sized                      []string          `json:"sized" yaml:"sized"`
	PrecisionAndScale          []string          `json:"precision_and_scale" yaml:"precision_and_scale"`
}

// Snapshot returns the serializable form of the platform. Type codes are
// written by name.
func (i *Info) Snapshot() Snapshot {
	f := i.flags
	s := Snapshot{
		Name:                       i.name,
		RequiresNullAsDefaultValue: f.RequiresNullAsDefaultValue,
		PrimaryKeyEmbedded:         f.PrimaryKeyEmbedded,
		ForeignKeysEmbedded:        f.ForeignKeysEmbedded,
		IndicesEmbedded:            f.IndicesEmbedded,
		EmbeddedForeignKeysNamed:   f.EmbeddedForeignKeysNamed,
		UseAlterTableForDrop:       f.UseAlterTableForDrop,
		MaxIdentifierLength:        f.MaxIdentifierLength,
		CaseSensitive:              f.CaseSensitive,
		UseDelimitedIdentifiers:    f.UseDelimitedIdentifiers,
		DelimiterToken:             f.DelimiterToken,
		ValueQuoteToken:            f.ValueQuoteToken,
		CommentsSupported:          f.CommentsSupported,
		CommentPrefix:              f.CommentPrefix,
		CommentSuffix:              f.CommentSuffix,
		SQLCommandDelimiter:        f.SQLCommandDelimiter,
		NativeTypes:                make(map[string]string, len(i.nativeTypes)),
		NullDefault:                codeNames(i.TaggedCodes(TagNullDefault)),
		Sized:                      codeNames(i.TaggedCodes(TagSize)),
		PrecisionAndScale:          codeNames(i.TaggedCodes(TagPrecisionAndScale)),
	}
	for c, native := range i.nativeTypes {
		s.NativeTypes[c.String()] = native
	}
	return s
}

func codeNames(codes []types.Code) []string {
	out := make([]string, len(codes))
	for n, c := range codes {
		out[n] = c.String()
	}
	sort.Strings(out)
	return out
}

// Builder returns a builder reproducing the snapshot.
//
// Codes written in the Code(n) form are inserted directly. Other type names
// are resolved with the builder's vocabulary; names it does not know are
// skipped with a warning, as with NativeTypeByName. The default tags are
// cleared first so the snapshot's tag lists are authoritative.
func (s Snapshot) Builder(opts ...Option) *Builder {
	b := NewBuilder(s.Name, opts...)
	b.flags = Flags{
		RequiresNullAsDefaultValue: s.RequiresNullAsDefaultValue,
		PrimaryKeyEmbedded:         s.PrimaryKeyEmbedded,
		ForeignKeysEmbedded:        s.ForeignKeysEmbedded,
		IndicesEmbedded:            s.IndicesEmbedded,
		EmbeddedForeignKeysNamed:   s.EmbeddedForeignKeysNamed,
		UseAlterTableForDrop:       s.UseAlterTableForDrop,
		MaxIdentifierLength:        s.MaxIdentifierLength,
		CaseSensitive:              s.CaseSensitive,
		UseDelimitedIdentifiers:    s.UseDelimitedIdentifiers,
		DelimiterToken:             s.DelimiterToken,
		ValueQuoteToken:            s.ValueQuoteToken,
		CommentsSupported:          s.CommentsSupported,
		CommentPrefix:              s.CommentPrefix,
		CommentSuffix:              s.CommentSuffix,
		SQLCommandDelimiter:        s.SQLCommandDelimiter,
	}
	clear(b.tags)

	for name, native := range s.NativeTypes {
		if code, ok := types.ParseCode(name); ok {
			b.NativeType(code, native)
			continue
		}
		b.NativeTypeByName(name, native)
	}
	b.tagNames(s.NullDefault, TagNullDefault)
	b.tagNames(s.Sized, TagSize)
	b.tagNames(s.PrecisionAndScale, TagPrecisionAndScale)
	return b
}

func (b *Builder) tagNames(names []string, tag TypeTag) {
	for _, name := range names {
		if code, ok := types.ParseCode(name); ok {
			b.tag(code, tag, true)
			continue
		}
		b.TagByName(name, tag, true)
	}
}
