package main

import (
	"strings"
	"testing"

	"github.com/steveyegge/strata/internal/pipeline"
	"github.com/steveyegge/strata/internal/types"
)

func TestWriteCycleReport(t *testing.T) {
	view := pipeline.View{
		Cycle: &types.Cycle{
			Name:                 "Q1",
			StartMonth:           "Jan",
			EndMonth:             "Mar",
			DaysFromStartOfCycle: 30,
			DaysInCycle:          90,
			CurrentDayPercentage: 33,
			ProgressMetrics:      types.ProgressMetrics{Progress: 50, ProgressWithInProgress: 67},
		},
		Initiatives: []types.Initiative{{
			ID:              "growth",
			Name:            "Growth Push",
			ProgressMetrics: types.ProgressMetrics{Progress: 50},
			RoadmapItems: []types.RoadmapItem{{
				ID:   "ROAD-1",
				Name: "Checkout",
				Area: "Frontend",
				ProgressMetrics: types.ProgressMetrics{
					Weeks: 3, WeeksDone: 1.5, WeeksInProgress: 1, Progress: 50,
				},
				ReleaseItems: []types.ReleaseItem{
					{TicketID: "P-1", Name: "Checkout polish", Status: types.StatusPostponed},
				},
			}},
		}},
	}

	var b strings.Builder
	writeCycleReport(&b, view)
	out := b.String()

	for _, want := range []string{
		"# Q1 (Jan-Mar)",
		"Day 30 of 90 (33% elapsed)",
		"## Growth Push - 50%",
		"| Checkout | Frontend | 1.5w | 1.0w | 3.0w | 50% |",
		"### Attention",
		"**Checkout polish** (P-1): postponed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCycleReportNilCycle(t *testing.T) {
	var b strings.Builder
	writeCycleReport(&b, pipeline.View{})
	if b.Len() != 0 {
		t.Errorf("report for nil cycle = %q, want empty", b.String())
	}
}
