package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/strata/internal/pipeline"
	"github.com/steveyegge/strata/internal/types"
	"github.com/steveyegge/strata/internal/ui"
)

var (
	reportTickets string
	reportCatalog string
	reportCycle   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a per-cycle markdown progress report",
	Long: `Builds one view per known cycle and writes a markdown report. Rendered
for human terminals, raw markdown when redirected, JSON with --json.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fatalf(err)
		}
		in, err := loadInput(reportTickets, reportCatalog)
		if err != nil {
			fatalf(err)
		}
		if len(in.Cycles) == 0 {
			fatalf(fmt.Errorf("no cycle definitions; a report needs at least one cycle"))
		}

		p := pipeline.New(cfg, pipeline.WithWarnf(warnf))
		views, err := p.BuildCycleViews(getRootContext(), in)
		if err != nil {
			fatalf(err)
		}

		if jsonOutput {
			outputJSON(views)
			return
		}

		var b strings.Builder
		for _, cycle := range in.Cycles {
			if reportCycle != "" && cycle.ID != reportCycle {
				continue
			}
			writeCycleReport(&b, views[cycle.ID])
		}
		fmt.Print(ui.RenderMarkdown(b.String()))
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportTickets, "tickets", "", "Ticket snapshot file (default: <data>/tickets.json)")
	reportCmd.Flags().StringVar(&reportCatalog, "catalog", "", "Roadmap catalog file (default: <data>/catalog.json)")
	reportCmd.Flags().StringVar(&reportCycle, "cycle", "", "Limit the report to one cycle id")
	rootCmd.AddCommand(reportCmd)
}

// writeCycleReport emits the markdown section for one cycle view.
func writeCycleReport(b *strings.Builder, view pipeline.View) {
	c := view.Cycle
	if c == nil {
		return
	}

	fmt.Fprintf(b, "# %s (%s-%s)\n\n", c.Name, c.StartMonth, c.EndMonth)
	summary := fmt.Sprintf("Day %d of %d (%d%% elapsed). **%d%% done** by effort, %d%% including in-progress work.",
		c.DaysFromStartOfCycle, c.DaysInCycle, c.CurrentDayPercentage,
		c.Progress, c.ProgressWithInProgress)
	b.WriteString(ui.WrapText(summary, 80))
	b.WriteString("\n\n")

	for _, init := range view.Initiatives {
		fmt.Fprintf(b, "## %s - %d%%\n\n", init.Name, init.Progress)
		fmt.Fprintf(b, "| Roadmap item | Area | Done | In progress | Total | Progress |\n")
		fmt.Fprintf(b, "|---|---|---:|---:|---:|---:|\n")
		for _, rm := range init.RoadmapItems {
			fmt.Fprintf(b, "| %s | %s | %.1fw | %.1fw | %.1fw | %d%% |\n",
				rm.Name, rm.Area, rm.WeeksDone, rm.WeeksInProgress, rm.Weeks, rm.Progress)
		}
		b.WriteString("\n")
		writeAtRisk(b, init)
	}
}

// writeAtRisk lists release items flagged at risk, postponed, or carrying
// error findings within the initiative.
func writeAtRisk(b *strings.Builder, init types.Initiative) {
	var lines []string
	for _, rm := range init.RoadmapItems {
		for _, item := range rm.ReleaseItems {
			switch {
			case item.IsReleaseAtRisk:
				lines = append(lines, fmt.Sprintf("- **%s** (%s): flagged at risk", item.Name, item.TicketID))
			case item.Status == types.StatusPostponed:
				lines = append(lines, fmt.Sprintf("- **%s** (%s): postponed", item.Name, item.TicketID))
			case types.HasErrors(item.Validations):
				lines = append(lines, fmt.Sprintf("- **%s** (%s): has data-quality errors", item.Name, item.TicketID))
			}
		}
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("### Attention\n\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
