package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/ddlplatform/internal/cli/output"
	"github.com/leapstack-labs/ddlplatform/pkg/platform"
)

// PlatformSummary is one row of the list command.
type PlatformSummary struct {
	Name                string `json:"name" yaml:"name"`
	Base                string `json:"base,omitempty" yaml:"base,omitempty"`
	Custom              bool   `json:"custom" yaml:"custom"`
	MaxIdentifierLength int    `json:"max_identifier_length" yaml:"max_identifier_length"`
	DelimiterToken      string `json:"delimiter_token" yaml:"delimiter_token"`
	NativeTypes         int    `json:"native_types" yaml:"native_types"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered platforms",
		Long: `List the built-in platforms and the custom platforms defined in the
config file.

Output adapts to environment:
  - Terminal: table
  - Piped/Scripted: JSON

Use --output to override: auto, text, json, yaml`,
		Example: `  # List all platforms
  ddlplatform list

  # List platforms as YAML
  ddlplatform list -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(NewCommandContext(cmd))
		},
	}
}

func runList(cc *CommandContext) error {
	names := platform.List()
	summaries := make([]PlatformSummary, 0, len(names))
	for _, name := range names {
		info, err := platform.Lookup(name)
		if err != nil {
			return err
		}
		def, custom := cc.Cfg.Platforms[info.Name()]
		summaries = append(summaries, PlatformSummary{
			Name:                info.Name(),
			Base:                def.Base,
			Custom:              custom,
			MaxIdentifierLength: info.MaxIdentifierLength(),
			DelimiterToken:      info.DelimiterToken(),
			NativeTypes:         len(info.NativeTypes()),
		})
	}

	r := cc.Renderer
	if r.EffectiveMode() != output.ModeText {
		return r.Encode(summaries)
	}

	styles := r.Styles()
	r.Println(styles.Header1.Render(fmt.Sprintf("Platforms (%d)", len(summaries))))

	t := r.Table()
	t.AppendHeader(table.Row{"Platform", "Base", "Max identifier", "Delimiter", "Native types"})
	for _, s := range summaries {
		base := s.Base
		if s.Custom && base == "" {
			base = "(defaults)"
		}
		t.AppendRow(table.Row{s.Name, base, formatLength(s.MaxIdentifierLength), formatToken(s.DelimiterToken), s.NativeTypes})
	}
	t.Render()
	return nil
}

func formatLength(n int) string {
	if n == platform.Unlimited {
		return "unlimited"
	}
	return fmt.Sprint(n)
}

func formatToken(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
