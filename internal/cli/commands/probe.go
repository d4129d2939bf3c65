package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/ddlplatform/internal/cli/output"
	"github.com/leapstack-labs/ddlplatform/internal/probe"
)

// ErrMismatch is returned when a probed server differs from its descriptor.
var ErrMismatch = errors.New("descriptor differs from server")

// ProbeOptions holds options for the probe command.
type ProbeOptions struct {
	Platform    string
	DSN         string
	Dialect     string
	Targets     []string
	Concurrency int
	Timeout     time.Duration
}

// NewProbeCommand creates the probe command.
func NewProbeCommand() *cobra.Command {
	opts := &ProbeOptions{}
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Compare platform descriptors with live databases",
		Long: `Connect to one or more databases and compare what the server reports with
the platform descriptor: server version, identifier length limit, and whether
the server accepts each native type name of the mapping.

Custom platforms are probed with the driver of the built-in platform they
derive from; use --dialect to choose one explicitly.

The command fails when any descriptor differs from its server.`,
		Example: `  # Probe a local PostgreSQL
  ddlplatform probe --platform postgres --dsn "postgres://localhost/app"

  # Probe several databases at once
  ddlplatform probe -t sqlite=file:app.db -t mysql="root@tcp(localhost)/app"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProbe(cmd.Context(), NewCommandContext(cmd), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Platform, "platform", "", "Platform to probe (default: the platform config key)")
	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "Data source name of the database")
	cmd.Flags().StringVar(&opts.Dialect, "dialect", "", "Driver and catalog dialect (default: derived from the platform)")
	cmd.Flags().StringArrayVarP(&opts.Targets, "target", "t", nil, "Additional platform=dsn target (repeatable)")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", probe.DefaultConcurrency, "Number of databases probed at once")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Overall probe timeout")

	_ = cmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return probe.Dialects(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (o *ProbeOptions) targets(cc *CommandContext) ([]probe.Target, error) {
	var targets []probe.Target
	if o.DSN != "" {
		name := o.Platform
		if name == "" {
			name = cc.Cfg.Platform
		}
		targets = append(targets, o.target(cc, name, o.DSN))
	} else if o.Platform != "" {
		return nil, fmt.Errorf("--platform %s needs --dsn", o.Platform)
	}

	for _, arg := range o.Targets {
		name, dsn, ok := strings.Cut(arg, "=")
		if !ok || name == "" || dsn == "" {
			return nil, fmt.Errorf("invalid target %q (expected platform=dsn)", arg)
		}
		targets = append(targets, o.target(cc, name, dsn))
	}

	if len(targets) == 0 {
		return nil, errors.New("nothing to probe: pass --dsn or --target")
	}
	return targets, nil
}

func (o *ProbeOptions) target(cc *CommandContext, name, dsn string) probe.Target {
	dialect := o.Dialect
	if dialect == "" {
		dialect = cc.Cfg.Root(name)
	}
	return probe.Target{Platform: name, Dialect: dialect, DSN: dsn}
}

func runProbe(ctx context.Context, cc *CommandContext, opts *ProbeOptions) error {
	targets, err := opts.targets(cc)
	if err != nil {
		return err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	reports, err := probe.New(cc.Logger).WithConcurrency(opts.Concurrency).RunAll(ctx, targets)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() != output.ModeText {
		if err := r.Encode(reports); err != nil {
			return err
		}
	} else {
		renderProbeText(r, reports)
	}

	failed := 0
	for _, report := range reports {
		if !report.OK() {
			failed++
			r.Warnf("%s differs from its %s server in %d properties", report.Platform, report.Dialect, len(report.Mismatches))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d platforms", ErrMismatch, failed, len(reports))
	}
	return nil
}

func renderProbeText(r *output.Renderer, reports []*probe.Report) {
	styles := r.Styles()
	for _, report := range reports {
		r.Println(styles.Header1.Render(fmt.Sprintf("%s (%s)", report.Platform, report.Dialect)))
		r.Printf("  %s: %s\n", styles.Bold.Render("Server"), report.ServerVersion)
		if report.IdentifierLimit != nil {
			r.Printf("  %s: %d\n", styles.Bold.Render("Identifier limit"), *report.IdentifierLimit)
		}
		r.Printf("  %s: %d\n", styles.Bold.Render("Native types checked"), report.TypesChecked)

		if report.OK() {
			r.Println("  " + styles.Success.Render("matches"))
			r.Println("")
			continue
		}

		t := r.Table()
		t.AppendHeader(table.Row{"Property", "Expected", "Observed"})
		for _, m := range report.Mismatches {
			t.AppendRow(table.Row{m.Property, m.Expected, styles.Error.Render(m.Observed)})
		}
		t.Render()
		r.Println("")
	}
}
