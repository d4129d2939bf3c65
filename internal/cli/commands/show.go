package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/ddlplatform/internal/cli/output"
	"github.com/leapstack-labs/ddlplatform/internal/config"
	"github.com/leapstack-labs/ddlplatform/pkg/platform"
	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	AsConfig bool
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}
	cmd := &cobra.Command{
		Use:   "show [platform]",
		Short: "Show a platform's capabilities and type mapping",
		Long: `Show the capability flags, native type mapping and type tags of a platform.

Without an argument the platform named by the "platform" config key is shown.
JSON and YAML output is a snapshot of the platform.

With --as-config the platform is written as a definition for the platforms
section of the config file, as JSON in json mode and as YAML otherwise.
Loading it under a new name rebuilds an equivalent platform.`,
		Example: `  # Show the PostgreSQL platform
  ddlplatform show postgres

  # Dump a platform as YAML
  ddlplatform show mysql -o yaml

  # Start a custom platform from MySQL
  ddlplatform show mysql --as-config -o yaml`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return platform.List(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			name := cc.Cfg.Platform
			if len(args) > 0 {
				name = args[0]
			}
			return runShow(cc, name, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.AsConfig, "as-config", false, "Write the platform as a config file definition")
	return cmd
}

func runShow(cc *CommandContext, name string, opts *ShowOptions) error {
	info, err := platform.Lookup(name)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if opts.AsConfig {
		def := config.FromInfo(info)
		if r.EffectiveMode() == output.ModeJSON {
			return r.Encode(def)
		}
		return r.EncodeYAML(def)
	}

	snap := info.Snapshot()
	if r.EffectiveMode() != output.ModeText {
		return r.Encode(snap)
	}

	styles := r.Styles()
	titleCaser := cases.Title(language.English)

	r.Println(styles.Header1.Render("Platform " + snap.Name))
	r.Println("")

	r.Println(styles.Header2.Render("Capabilities"))
	ft := r.Table()
	ft.AppendHeader(table.Row{"Flag", "Value"})
	for _, f := range flagRows(snap) {
		ft.AppendRow(table.Row{titleCaser.String(strings.ReplaceAll(f.key, "_", " ")), f.value})
	}
	ft.Render()
	r.Println("")

	r.Println(styles.Header2.Render("Types"))
	tt := r.Table()
	tt.AppendHeader(table.Row{"Type", "Code", "Native", "Tags"})
	for _, code := range types.All() {
		native, mapped := info.NativeType(code)
		tags := info.Tags(code)
		if !mapped && tags == 0 {
			continue
		}
		if !mapped {
			native = styles.Muted.Render("(default)")
		}
		tagText := ""
		if tags != 0 {
			tagText = tags.String()
		}
		tt.AppendRow(table.Row{code.String(), int32(code), native, tagText})
	}
	tt.Render()
	return nil
}

type flagRow struct {
	key   string
	value string
}

// flagRows lists the capability flags in declaration order.
func flagRows(s platform.Snapshot) []flagRow {
	return []flagRow{
		{"requires_null_as_default_value", fmt.Sprint(s.RequiresNullAsDefaultValue)},
		{"primary_key_embedded", fmt.Sprint(s.PrimaryKeyEmbedded)},
		{"foreign_keys_embedded", fmt.Sprint(s.ForeignKeysEmbedded)},
		{"indices_embedded", fmt.Sprint(s.IndicesEmbedded)},
		{"embedded_foreign_keys_named", fmt.Sprint(s.EmbeddedForeignKeysNamed)},
		{"use_alter_table_for_drop", fmt.Sprint(s.UseAlterTableForDrop)},
		{"max_identifier_length", formatLength(s.MaxIdentifierLength)},
		{"case_sensitive", fmt.Sprint(s.CaseSensitive)},
		{"use_delimited_identifiers", fmt.Sprint(s.UseDelimitedIdentifiers)},
		{"delimiter_token", formatToken(s.DelimiterToken)},
		{"value_quote_token", formatToken(s.ValueQuoteToken)},
		{"comments_supported", fmt.Sprint(s.CommentsSupported)},
		{"comment_prefix", formatToken(s.CommentPrefix)},
		{"comment_suffix", formatToken(s.CommentSuffix)},
		{"sql_command_delimiter", formatToken(s.SQLCommandDelimiter)},
	}
}
