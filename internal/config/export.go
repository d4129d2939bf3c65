package config

import (
	"github.com/leapstack-labs/ddlplatform/pkg/platform"
)

// FromInfo returns a definition that rebuilds info when loaded under
// platforms. It has no base: every flag and mapping is listed, and tags the
// defaults carry but info does not are switched off explicitly.
func FromInfo(info *platform.Info) PlatformConfig {
	s := info.Snapshot()
	defaults := platform.NewBuilder(info.Name()).Build()

	return PlatformConfig{
		Flags: map[string]any{
			"requires_null_as_default_value": s.RequiresNullAsDefaultValue,
			"primary_key_embedded":           s.PrimaryKeyEmbedded,
			"foreign_keys_embedded":          s.ForeignKeysEmbedded,
			"indices_embedded":               s.IndicesEmbedded,
			"embedded_foreign_keys_named":    s.EmbeddedForeignKeysNamed,
			"use_alter_table_for_drop":       s.UseAlterTableForDrop,
			"max_identifier_length":          s.MaxIdentifierLength,
			"case_sensitive":                 s.CaseSensitive,
			"use_delimited_identifiers":      s.UseDelimitedIdentifiers,
			"delimiter_token":                s.DelimiterToken,
			"value_quote_token":              s.ValueQuoteToken,
			"comments_supported":             s.CommentsSupported,
			"comment_prefix":                 s.CommentPrefix,
			"comment_suffix":                 s.CommentSuffix,
			"sql_command_delimiter":          s.SQLCommandDelimiter,
		},
		NativeTypes:       s.NativeTypes,
		NullDefault:       tagMap(info, defaults, platform.TagNullDefault),
		Sized:             tagMap(info, defaults, platform.TagSize),
		PrecisionAndScale: tagMap(info, defaults, platform.TagPrecisionAndScale),
	}
}

func tagMap(info, defaults *platform.Info, tag platform.TypeTag) map[string]bool {
	m := make(map[string]bool)
	for _, c := range info.TaggedCodes(tag) {
		m[c.String()] = true
	}
	for _, c := range defaults.TaggedCodes(tag) {
		if !info.Tags(c).Has(tag) {
			m[c.String()] = false
		}
	}
	return m
}
