// Package probe compares platform descriptors with live databases.
//
// A descriptor never talks to a database itself; the probe connects through
// database/sql, reads the server's version and identifier limit, and checks
// that every native type name in the mapping is accepted by the server.
package probe

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/ddlplatform/pkg/platform"
	"github.com/leapstack-labs/ddlplatform/pkg/types"
)

// DefaultConcurrency is the number of targets probed at once by RunAll.
const DefaultConcurrency = 4

// Mismatch is a difference between a descriptor and the server.
type Mismatch struct {
	Property string `json:"property" yaml:"property"`
	Expected string `json:"expected" yaml:"expected"`
	Observed string `json:"observed" yaml:"observed"`
}

// Report is the outcome of probing one database.
type Report struct {
	Platform        string     `json:"platform" yaml:"platform"`
	Dialect         string     `json:"dialect" yaml:"dialect"`
	ServerVersion   string     `json:"server_version" yaml:"server_version"`
	IdentifierLimit *int       `json:"identifier_limit,omitempty" yaml:"identifier_limit,omitempty"`
	TypesChecked    int        `json:"types_checked" yaml:"types_checked"`
	Mismatches      []Mismatch `json:"mismatches" yaml:"mismatches"`
}

// OK reports whether the descriptor matched the server.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Target is a database to probe against a registered platform.
type Target struct {
	// Platform is the registered platform name.
	Platform string
	// Dialect selects the driver and catalog queries. Defaults to Platform.
	Dialect string
	DSN     string
}

func (t Target) dialect() string {
	if t.Dialect != "" {
		return t.Dialect
	}
	return t.Platform
}

// Prober runs probes.
type Prober struct {
	logger      *slog.Logger
	concurrency int
	open        func(ctx context.Context, dialect, dsn string) (*sql.DB, error)
}

// New creates a prober. If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Prober{
		logger:      logger,
		concurrency: DefaultConcurrency,
		open:        Open,
	}
}

// WithConcurrency sets how many targets RunAll probes at once.
func (p *Prober) WithConcurrency(n int) *Prober {
	if n > 0 {
		p.concurrency = n
	}
	return p
}

// Run probes db using the dialect named like the platform.
func Run(ctx context.Context, db *sql.DB, info *platform.Info) (*Report, error) {
	return New(nil).Run(ctx, db, info.Name(), info)
}

// Run probes db, which speaks dialect, against info.
func (p *Prober) Run(ctx context.Context, db *sql.DB, dialectName string, info *platform.Info) (*Report, error) {
	d, err := lookupDialect(dialectName)
	if err != nil {
		return nil, err
	}
	log := p.logger.With(slog.String("platform", info.Name()), slog.String("dialect", dialectName))

	report := &Report{
		Platform:   info.Name(),
		Dialect:    dialectName,
		Mismatches: []Mismatch{},
	}

	report.ServerVersion, err = d.version(ctx, db)
	if err != nil {
		return nil, err
	}
	log.Debug("server version", slog.String("version", report.ServerVersion))

	limit, ok, err := d.identifierLimit(ctx, db)
	if err != nil {
		return nil, err
	}
	if ok {
		report.IdentifierLimit = &limit
		if limit != info.MaxIdentifierLength() {
			report.Mismatches = append(report.Mismatches, Mismatch{
				Property: "max_identifier_length",
				Expected: strconv.Itoa(info.MaxIdentifierLength()),
				Observed: strconv.Itoa(limit),
			})
		}
	}

	mapping := info.NativeTypes()
	codes := make([]types.Code, 0, len(mapping))
	for code := range mapping {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	// Several codes usually share one native type
	checked := make(map[string]error)
	for _, code := range codes {
		native := mapping[code]
		typeErr, seen := checked[native]
		if !seen {
			typeErr = checkTypeName(native)
			if typeErr == nil && d.castTypes {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				typeErr = d.acceptsType(ctx, db, native)
				report.TypesChecked++
			}
			checked[native] = typeErr
		}
		if typeErr != nil {
			log.Debug("native type rejected", slog.String("native_type", native), slog.String("error", typeErr.Error()))
			report.Mismatches = append(report.Mismatches, Mismatch{
				Property: "native_type." + code.String(),
				Expected: native,
				Observed: typeErr.Error(),
			})
		}
	}

	log.Info("probe finished",
		slog.String("server_version", report.ServerVersion),
		slog.Int("mismatches", len(report.Mismatches)))
	return report, nil
}

// RunAll probes targets concurrently. Reports are returned in target order.
// The first failing target cancels the others.
func (p *Prober) RunAll(ctx context.Context, targets []Target) ([]*Report, error) {
	reports := make([]*Report, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, target := range targets {
		g.Go(func() error {
			report, err := p.runTarget(ctx, target)
			if err != nil {
				return fmt.Errorf("probe %s: %w", target.Platform, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (p *Prober) runTarget(ctx context.Context, target Target) (*Report, error) {
	info, err := platform.Lookup(target.Platform)
	if err != nil {
		return nil, err
	}
	db, err := p.open(ctx, target.dialect(), target.DSN)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	return p.Run(ctx, db, target.dialect(), info)
}
