package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/steveyegge/strata/internal/filter"
	"github.com/steveyegge/strata/internal/pipeline"
	"github.com/steveyegge/strata/internal/timeparsing"
	"github.com/steveyegge/strata/internal/types"
	"github.com/steveyegge/strata/internal/ui"
)

var (
	dashTickets    string
	dashCatalog    string
	dashCycle      string
	dashAsOf       string
	dashArea       string
	dashStages     []string
	dashAssignees  []string
	dashInitiative []string
	dashValidation bool
	dashWatch      bool
	dashNoPager    bool
	dashFlat       bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the roadmap progress dashboard",
	Long: `Builds the initiative tree from the ticket snapshot and renders it with
effort-weighted progress bars. Filter flags cascade leaf-first: release items
are matched first, and containers survive only while they still hold matches.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fatalf(err)
		}

		in, err := loadInput(dashTickets, dashCatalog)
		if err != nil {
			fatalf(err)
		}

		criteria := types.FilterCriteria{
			Area:                 dashArea,
			Stages:               dashStages,
			Assignees:            dashAssignees,
			Cycle:                dashCycle,
			Initiatives:          dashInitiative,
			ShowValidationErrors: dashValidation,
		}

		p := pipeline.New(cfg, pipeline.WithWarnf(warnf))

		render := func() error {
			reference, err := referenceCycle(in.Cycles)
			if err != nil {
				return err
			}

			view, err := p.Build(getRootContext(), in, reference)
			if err != nil {
				return err
			}
			result := filter.Apply(view.Initiatives, criteria)

			if jsonOutput {
				outputJSON(struct {
					Cycle *types.Cycle `json:"cycle,omitempty"`
					filter.Result
				}{Cycle: view.Cycle, Result: result})
				return nil
			}
			return ui.ToPager(renderDashboard(view.Cycle, result), dashNoPager || dashWatch)
		}

		if !dashWatch {
			if err := render(); err != nil {
				fatalf(err)
			}
			return
		}

		if err := watchAndRender(getRootContext(), render, func() error {
			in, err = loadInput(dashTickets, dashCatalog)
			return err
		}); err != nil {
			fatalf(err)
		}
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashTickets, "tickets", "", "Ticket snapshot file (default: <data>/tickets.json)")
	dashboardCmd.Flags().StringVar(&dashCatalog, "catalog", "", "Roadmap catalog file (default: <data>/catalog.json)")
	dashboardCmd.Flags().StringVar(&dashCycle, "cycle", "", "Reference cycle id (also filters release items)")
	dashboardCmd.Flags().StringVar(&dashAsOf, "as-of", "", "Build as of a date/time expression (2025-01-30, +2w, \"next monday\")")
	dashboardCmd.Flags().StringVar(&dashArea, "area", "", "Filter by area (matches leaf areas or the roadmap item's own area)")
	dashboardCmd.Flags().StringSliceVar(&dashStages, "stage", nil, "Filter by stage token (repeatable)")
	dashboardCmd.Flags().StringSliceVar(&dashAssignees, "assignee", nil, "Filter by assignee id or account id (repeatable)")
	dashboardCmd.Flags().StringSliceVar(&dashInitiative, "initiative", nil, "Filter by initiative id (repeatable)")
	dashboardCmd.Flags().BoolVar(&dashValidation, "validation-errors", false, "Keep only nodes carrying data-quality findings")
	dashboardCmd.Flags().BoolVar(&dashWatch, "watch", false, "Re-render when snapshot files change")
	dashboardCmd.Flags().BoolVar(&dashNoPager, "no-pager", false, "Never pipe output through a pager")
	dashboardCmd.Flags().BoolVar(&dashFlat, "flat", false, "Skip release-item detail lines")
	rootCmd.AddCommand(dashboardCmd)
}

// referenceCycle picks the cycle the build is relative to: --cycle wins, then
// --as-of selects the cycle containing that instant, then the current cycle.
// No match means no reference cycle at all.
func referenceCycle(cycles []types.Cycle) (*types.Cycle, error) {
	if dashCycle != "" {
		ref := pipeline.FindCycle(cycles, dashCycle)
		if ref == nil {
			return nil, fmt.Errorf("unknown cycle %q", dashCycle)
		}
		return ref, nil
	}

	at := time.Now()
	if dashAsOf != "" {
		parsed, err := timeparsing.ParseRelativeTime(dashAsOf, at)
		if err != nil {
			return nil, fmt.Errorf("--as-of: %w", err)
		}
		at = parsed
	}
	return pipeline.CycleAt(cycles, at), nil
}

// renderDashboard draws the initiative tree with progress bars.
func renderDashboard(cycle *types.Cycle, result filter.Result) string {
	var b strings.Builder

	if cycle != nil {
		b.WriteString(ui.RenderCategory(cycle.Name))
		b.WriteString(ui.RenderMuted(fmt.Sprintf("  %s-%s, day %d/%d (%d%%)",
			cycle.StartMonth, cycle.EndMonth,
			cycle.DaysFromStartOfCycle, cycle.DaysInCycle, cycle.CurrentDayPercentage)))
		b.WriteString("\n")
		b.WriteString(ui.RenderProgressBar(cycle.Progress, cycle.ProgressWithInProgress, 30))
		b.WriteString(ui.RenderMuted(fmt.Sprintf("  %.1fw done of %.1fw", cycle.WeeksDone, cycle.Weeks)))
		b.WriteString("\n")
		b.WriteString(ui.RenderSeparator())
		b.WriteString("\n")
	}

	for _, init := range result.Initiatives {
		b.WriteString("\n")
		b.WriteString(ui.RenderAccent(init.Name))
		b.WriteString("  ")
		b.WriteString(ui.RenderProgressBar(init.Progress, init.ProgressWithInProgress, 20))
		b.WriteString(ui.RenderMuted(fmt.Sprintf("  %.1fw", init.Weeks)))
		b.WriteString("\n")

		for _, rm := range init.RoadmapItems {
			b.WriteString(ui.TreeIndent)
			b.WriteString(ui.TreeChild)
			b.WriteString(ui.PadRight(rm.Name, 40))
			b.WriteString(" ")
			b.WriteString(ui.RenderProgressBar(rm.Progress, rm.ProgressWithInProgress, 20))
			b.WriteString(ui.RenderMuted(fmt.Sprintf("  %d/%d items", rm.ReleaseItemsDoneCount, rm.ReleaseItemsCount)))
			if rm.Area != "" {
				b.WriteString(ui.RenderMuted(" [" + rm.Area + "]"))
			}
			b.WriteString("\n")

			if dashFlat {
				continue
			}
			for _, item := range rm.ReleaseItems {
				b.WriteString(ui.TreeIndent)
				b.WriteString(ui.TreeIndent)
				b.WriteString(ui.TreeLast)
				b.WriteString(ui.StatusStyle(item.Status).Render(ui.PadRight(item.Name, 36)))
				b.WriteString(ui.RenderMuted(fmt.Sprintf(" %-10s %.1fw", item.Status, item.Effort)))
				if item.Stage != "" {
					b.WriteString(ui.RenderMuted(" (" + item.Stage + ")"))
				}
				if item.IsExternal {
					b.WriteString(" " + ui.RenderAccent("ext"))
				}
				for _, v := range item.Validations {
					b.WriteString(" " + ui.SeverityIcon(v.Status))
				}
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(ui.RenderMuted(fmt.Sprintf("%d initiatives, %d roadmap items, %d release items\n",
		result.InitiativeCount, result.RoadmapItemCount, result.ReleaseItemCount)))
	return b.String()
}

// watchAndRender re-renders on snapshot changes until the context is
// cancelled. Events are debounced; editors often emit several writes per
// save.
func watchAndRender(ctx context.Context, render func() error, reload func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the files: most editors replace files on save,
	// which would drop a per-file watch.
	dirs := map[string]struct{}{dataDir: {}}
	if dashTickets != "" {
		dirs[filepath.Dir(dashTickets)] = struct{}{}
	}
	if dashCatalog != "" {
		dirs[filepath.Dir(dashCatalog)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	if err := render(); err != nil {
		return err
	}

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(250*time.Millisecond, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			fmt.Print("\033[H\033[2J") // clear screen between renders
			if err := reload(); err != nil {
				warnf("reload failed: %v", err)
				continue
			}
			if err := render(); err != nil {
				warnf("rebuild failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			warnf("watch error: %v", err)
		}
	}
}
