package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/strata/internal/config"
	"github.com/steveyegge/strata/internal/pipeline"
	"github.com/steveyegge/strata/internal/types"
	"github.com/steveyegge/strata/internal/ui"
)

var (
	validateTickets string
	validateCatalog string
	validateStrict  bool
)

// finding is one reported data-quality issue, located by the node that
// carries it.
type finding struct {
	Node     string                 `json:"node"`
	Code     types.ValidationCode   `json:"code"`
	Severity types.ValidationStatus `json:"severity"`
	Message  string                 `json:"message"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "List data-quality findings in the ticket snapshot",
	Long: `Builds the hierarchy and reports every finding attached to it: missing
estimates, untranslatable labels, absent assignees, stage policy violations.
Findings never abort a build; this command makes them visible.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fatalf(err)
		}
		in, err := loadInput(validateTickets, validateCatalog)
		if err != nil {
			fatalf(err)
		}

		p := pipeline.New(cfg, pipeline.WithWarnf(warnf))
		view, err := p.Build(getRootContext(), in, nil)
		if err != nil {
			fatalf(err)
		}

		findings := collectFindings(cfg, view.Initiatives)

		errorCount := 0
		for _, f := range findings {
			if f.Severity == types.ValidationError {
				errorCount++
			}
		}

		if jsonOutput {
			outputJSON(struct {
				Findings []finding `json:"findings"`
				Errors   int       `json:"errors"`
				Warnings int       `json:"warnings"`
			}{findings, errorCount, len(findings) - errorCount})
		} else {
			fmt.Print(formatFindings(findings, errorCount))
		}

		if validateStrict && errorCount > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateTickets, "tickets", "", "Ticket snapshot file (default: <data>/tickets.json)")
	validateCmd.Flags().StringVar(&validateCatalog, "catalog", "", "Roadmap catalog file (default: <data>/catalog.json)")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit non-zero when any error-severity finding exists")
	rootCmd.AddCommand(validateCmd)
}

// collectFindings walks the tree and flattens every validation item, with
// messages resolved through the configured templates.
func collectFindings(cfg *config.Config, initiatives []types.Initiative) []finding {
	findings := []finding{}
	add := func(node string, items []types.ValidationItem) {
		for _, v := range items {
			findings = append(findings, finding{
				Node:     node,
				Code:     v.Code,
				Severity: v.Status,
				Message:  cfg.MessageFor(v),
			})
		}
	}

	for _, init := range initiatives {
		for _, rm := range init.RoadmapItems {
			add(rm.ID, rm.Validations)
			for _, item := range rm.ReleaseItems {
				add(item.TicketID, item.Validations)
			}
		}
	}
	return findings
}

func formatFindings(findings []finding, errorCount int) string {
	if len(findings) == 0 {
		return ui.RenderDone(ui.IconDone+" no findings") + "\n"
	}

	var b strings.Builder
	lastNode := ""
	for _, f := range findings {
		if f.Node != lastNode {
			b.WriteString(ui.RenderAccent(f.Node))
			b.WriteString("\n")
			lastNode = f.Node
		}
		b.WriteString(ui.TreeIndent)
		b.WriteString(ui.SeverityIcon(f.Severity))
		b.WriteString(" ")
		b.WriteString(ui.SeverityStyle(f.Severity).Render(f.Message))
		b.WriteString(ui.RenderMuted(" (" + string(f.Code) + ")"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d findings (%s, %s)\n",
		len(findings),
		ui.RenderFail(fmt.Sprintf("%d errors", errorCount)),
		ui.RenderWarn(fmt.Sprintf("%d warnings", len(findings)-errorCount))))
	return b.String()
}
