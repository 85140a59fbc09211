package main

import (
	"strings"
	"testing"
	"time"

	"github.com/steveyegge/strata/internal/filter"
	"github.com/steveyegge/strata/internal/types"
)

func testCycleSet() []types.Cycle {
	return []types.Cycle{
		{
			ID:    "q1",
			Name:  "Q1",
			Start: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:    "q2",
			Name:  "Q2",
			Start: time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestReferenceCycleExplicitID(t *testing.T) {
	dashCycle = "q2"
	dashAsOf = ""
	defer func() { dashCycle = "" }()

	ref, err := referenceCycle(testCycleSet())
	if err != nil {
		t.Fatalf("referenceCycle: %v", err)
	}
	if ref == nil || ref.ID != "q2" {
		t.Errorf("referenceCycle = %+v, want q2", ref)
	}
}

func TestReferenceCycleUnknownID(t *testing.T) {
	dashCycle = "q9"
	defer func() { dashCycle = "" }()

	if _, err := referenceCycle(testCycleSet()); err == nil {
		t.Error("expected error for unknown cycle id")
	}
}

func TestReferenceCycleAsOf(t *testing.T) {
	dashCycle = ""
	dashAsOf = "2025-05-01"
	defer func() { dashAsOf = "" }()

	ref, err := referenceCycle(testCycleSet())
	if err != nil {
		t.Fatalf("referenceCycle: %v", err)
	}
	if ref == nil || ref.ID != "q2" {
		t.Errorf("referenceCycle = %+v, want q2", ref)
	}
}

func TestReferenceCycleAsOfMalformed(t *testing.T) {
	dashCycle = ""
	dashAsOf = "not-a-date"
	defer func() { dashAsOf = "" }()

	if _, err := referenceCycle(testCycleSet()); err == nil {
		t.Error("expected error for malformed --as-of")
	}
}

func TestRenderDashboard(t *testing.T) {
	result := filter.Result{
		Initiatives: []types.Initiative{
			{
				ID:   "init-1",
				Name: "Search Revamp",
				RoadmapItems: []types.RoadmapItem{
					{
						ID:   "ROAD-1",
						Name: "Checkout",
						Area: "Frontend",
						ReleaseItems: []types.ReleaseItem{
							{
								TicketID: "P-1",
								Name:     "Checkout flow",
								Effort:   2,
								Status:   types.StatusDone,
								Stage:    "s2",
							},
						},
					},
				},
			},
		},
		InitiativeCount:  1,
		RoadmapItemCount: 1,
		ReleaseItemCount: 1,
	}

	out := renderDashboard(nil, result)
	for _, want := range []string{"Search Revamp", "Checkout", "[Frontend]", "Checkout flow", "(s2)", "1 initiatives, 1 roadmap items, 1 release items"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderDashboard output missing %q", want)
		}
	}
}

func TestRenderDashboardWithCycleHeader(t *testing.T) {
	cycle := &types.Cycle{
		ID:         "q1",
		Name:       "Q1",
		StartMonth: "Mar",
		EndMonth:   "Mar",
	}
	out := renderDashboard(cycle, filter.Result{})
	if !strings.Contains(out, "Q1") {
		t.Errorf("renderDashboard output missing cycle header: %q", out)
	}
}
