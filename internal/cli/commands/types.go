package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/ddlplatform/internal/cli/output"
	"github.com/leapstack-labs/ddlplatform/pkg/platform"
)

// TypeEntry is one row of the types command.
type TypeEntry struct {
	Name   string   `json:"name" yaml:"name"`
	Code   int32    `json:"code" yaml:"code"`
	Native string   `json:"native,omitempty" yaml:"native,omitempty"`
	Tags   []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	var platformName string

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the type names of the configured vocabulary",
		Long: `List the abstract type names accepted in platform definitions and their
numeric codes. The vocabulary is selected with --vocabulary or the
"vocabulary" config key; the legacy vocabulary lacks the national character,
XML, ROWID and time zone aware types.

With --platform the native type and tags of each type are shown as well.`,
		Example: `  # Names known to the legacy vocabulary
  ddlplatform types --vocabulary legacy

  # How MySQL maps every type
  ddlplatform types --platform mysql`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTypes(NewCommandContext(cmd), platformName)
		},
	}

	cmd.Flags().StringVarP(&platformName, "platform", "p", "", "Show native types and tags of this platform")
	_ = cmd.RegisterFlagCompletionFunc("platform", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return platform.List(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func runTypes(cc *CommandContext, platformName string) error {
	vocab, err := cc.Cfg.TypeVocabulary()
	if err != nil {
		return err
	}

	var info *platform.Info
	if platformName != "" {
		if info, err = platform.Lookup(platformName); err != nil {
			return err
		}
	}

	entries := make([]TypeEntry, 0, len(vocab.Names()))
	for _, name := range vocab.Names() {
		code, _ := vocab.Lookup(name)
		e := TypeEntry{Name: name, Code: int32(code)}
		if info != nil {
			e.Native, _ = info.NativeType(code)
			if tags := info.Tags(code); tags != 0 {
				e.Tags = strings.Split(tags.String(), "|")
			}
		}
		entries = append(entries, e)
	}

	r := cc.Renderer
	if r.EffectiveMode() != output.ModeText {
		return r.Encode(entries)
	}

	title := fmt.Sprintf("Types (%d)", len(entries))
	header := table.Row{"Type", "Code"}
	if info != nil {
		title = fmt.Sprintf("Types on %s (%d)", info.Name(), len(entries))
		header = append(header, "Native", "Tags")
	}
	r.Println(r.Styles().Header1.Render(title))

	t := r.Table()
	t.AppendHeader(header)
	for _, e := range entries {
		row := table.Row{e.Name, e.Code}
		if info != nil {
			row = append(row, e.Native, strings.Join(e.Tags, ", "))
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}
