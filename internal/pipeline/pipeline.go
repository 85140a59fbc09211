// Package pipeline wires parsing, aggregation, and progress rollup into a
// single build step. It owns no domain rules of its own; it decides which
// reference cycle each build sees and fans builds out across cycles.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/steveyegge/strata/internal/aggregate"
	"github.com/steveyegge/strata/internal/config"
	"github.com/steveyegge/strata/internal/jira"
	"github.com/steveyegge/strata/internal/parse"
	"github.com/steveyegge/strata/internal/progress"
	"github.com/steveyegge/strata/internal/telemetry"
	"github.com/steveyegge/strata/internal/types"
)

// Input bundles the raw material for a build: the ticket snapshot, the
// roadmap catalog, and the known delivery cycles.
type Input struct {
	Tickets []jira.Issue
	Catalog types.Catalog
	Cycles  []types.Cycle
}

// View is one fully annotated dashboard: the initiative tree with progress
// rolled up, plus cycle state when the build had a reference cycle.
type View struct {
	Cycle       *types.Cycle       `json:"cycle,omitempty"`
	Initiatives []types.Initiative `json:"initiatives"`
}

// Pipeline builds dashboard views from raw ticket snapshots.
type Pipeline struct {
	cfg     *config.Config
	warnf   func(format string, args ...any)
	now     func() time.Time
	metrics *telemetry.BuildMetrics
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithWarnf redirects non-fatal warnings (default: stderr).
func WithWarnf(fn func(format string, args ...any)) Option {
	return func(p *Pipeline) { p.warnf = fn }
}

// WithNow overrides the clock used for cycle-time calculations.
func WithNow(fn func() time.Time) Option {
	return func(p *Pipeline) { p.now = fn }
}

// New creates a Pipeline over the given configuration.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:     cfg,
		now:     time.Now,
		metrics: telemetry.NewBuildMetrics(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build produces one view against the given reference cycle. A nil reference
// disables postponement detection and cycle-state annotation; everything else
// behaves identically.
func (p *Pipeline) Build(ctx context.Context, in Input, reference *types.Cycle) (View, error) {
	ctx, span := telemetry.Tracer("github.com/steveyegge/strata/pipeline").Start(ctx, "pipeline.build")
	defer span.End()

	start := p.now()

	parser := parse.Parser{
		Translator: p.cfg,
		Stages:     p.cfg,
		Statuses:   p.cfg,
	}
	items, err := parser.ParseAll(in.Tickets, reference, in.Cycles)
	if err != nil {
		return View{}, fmt.Errorf("parse tickets: %w", err)
	}

	engine := aggregate.Engine{
		Translator:              p.cfg,
		Stages:                  p.cfg,
		VirtualTheme:            p.cfg.VirtualTheme,
		NonRoadmapTheme:         p.cfg.NonRoadmapTheme,
		NoPreReleaseLabel:       p.cfg.NoPreReleaseLabel,
		UncategorizedInitiative: p.cfg.UncategorizedInitiative,
		VirtualInitiativeName:   p.cfg.VirtualInitiativeName,
		Warnf:                   p.warnf,
	}
	initiatives := engine.Build(items, in.Catalog)

	agg := progress.New()
	initiatives = agg.Aggregate(initiatives)

	view := View{Initiatives: initiatives}
	if reference != nil {
		annotated := agg.AggregateCycle(*reference, initiatives, p.now())
		view.Cycle = &annotated
	}

	cycleID := ""
	if reference != nil {
		cycleID = reference.ID
	}
	p.metrics.RecordBuild(ctx, cycleID, len(in.Tickets), p.now().Sub(start))

	return view, nil
}

// BuildCycleViews builds one view per known cycle concurrently, keyed by cycle
// ID. Ticket parsing is pure, so builds share the input safely. The first
// failing cycle cancels the rest.
func (p *Pipeline) BuildCycleViews(ctx context.Context, in Input) (map[string]View, error) {
	views := make([]View, len(in.Cycles))

	g, ctx := errgroup.WithContext(ctx)
	for i := range in.Cycles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ref := in.Cycles[i]
			view, err := p.Build(ctx, in, &ref)
			if err != nil {
				return fmt.Errorf("cycle %s: %w", ref.ID, err)
			}
			views[i] = view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]View, len(in.Cycles))
	for i, c := range in.Cycles {
		byID[c.ID] = views[i]
	}
	return byID, nil
}

// FindCycle returns the cycle with the given ID, or nil when unknown.
func FindCycle(cycles []types.Cycle, id string) *types.Cycle {
	for i := range cycles {
		if cycles[i].ID == id {
			return &cycles[i]
		}
	}
	return nil
}

// CycleAt returns the cycle whose window contains the given instant, or nil
// when none does. Windows are treated as [start, end).
func CycleAt(cycles []types.Cycle, at time.Time) *types.Cycle {
	for i := range cycles {
		c := &cycles[i]
		if !at.Before(c.Start) && at.Before(c.End) {
			return c
		}
	}
	return nil
}
