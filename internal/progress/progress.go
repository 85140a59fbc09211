// Package progress computes rollup metrics over the roadmap hierarchy:
// effort bucketed by status into weighted week counts, percentage fields at
// every level, and cycle-relative day progress. The walk is bottom-up and
// pure; callers get annotated copies.
package progress

import (
	"math"
	"time"

	"github.com/steveyegge/strata/internal/types"
)

// Aggregator walks the hierarchy bottom-up. Replanned is the status excluded
// entirely from totals and counts.
type Aggregator struct {
	Replanned types.Status
}

// New returns an aggregator with the default replanned status.
func New() *Aggregator {
	return &Aggregator{Replanned: types.StatusReplanned}
}

// round1 normalizes a sum to one decimal. It runs after every addition, not
// once at the end, so floating-point drift cannot compound across many items.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// pct is the null-safe percentage: a zero denominator yields 0, never NaN or
// Infinity. Applied at every level, not only the top.
func pct(numerator, denominator float64) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(numerator / denominator * 100))
}

// fill computes the percentage fields from the week buckets.
func fill(m *types.ProgressMetrics) {
	m.Progress = pct(m.WeeksDone, m.Weeks)
	m.ProgressWithInProgress = pct(m.WeeksDone+m.WeeksInProgress, m.Weeks)
	m.ProgressByReleaseItems = pct(float64(m.ReleaseItemsDoneCount), float64(m.ReleaseItemsCount))
	m.PercentageNotToDo = pct(m.WeeksNotToDo, m.Weeks)
}

// add accumulates child metrics into a parent, one rounded addition per
// bucket.
func add(parent *types.ProgressMetrics, child types.ProgressMetrics) {
	parent.Weeks = round1(parent.Weeks + child.Weeks)
	parent.WeeksDone = round1(parent.WeeksDone + child.WeeksDone)
	parent.WeeksInProgress = round1(parent.WeeksInProgress + child.WeeksInProgress)
	parent.WeeksTodo = round1(parent.WeeksTodo + child.WeeksTodo)
	parent.WeeksCancelled = round1(parent.WeeksCancelled + child.WeeksCancelled)
	parent.WeeksPostponed = round1(parent.WeeksPostponed + child.WeeksPostponed)
	parent.WeeksNotToDo = round1(parent.WeeksNotToDo + child.WeeksNotToDo)
	parent.ReleaseItemsCount += child.ReleaseItemsCount
	parent.ReleaseItemsDoneCount += child.ReleaseItemsDoneCount
}

// AggregateRoadmapItem buckets the roadmap item's release items by status.
// Replanned items are excluded entirely; items with an unmapped status count
// toward the totals but land in no bucket.
func (a *Aggregator) AggregateRoadmapItem(rm types.RoadmapItem) types.RoadmapItem {
	m := types.ProgressMetrics{}
	for _, item := range rm.ReleaseItems {
		if item.Status == a.Replanned {
			continue
		}
		m.Weeks = round1(m.Weeks + item.Effort)
		m.ReleaseItemsCount++

		switch item.Status {
		case types.StatusTodo:
			m.WeeksTodo = round1(m.WeeksTodo + item.Effort)
		case types.StatusDone:
			m.WeeksDone = round1(m.WeeksDone + item.Effort)
			m.ReleaseItemsDoneCount++
		case types.StatusInProgress:
			m.WeeksInProgress = round1(m.WeeksInProgress + item.Effort)
		case types.StatusPostponed:
			m.WeeksPostponed = round1(m.WeeksPostponed + item.Effort)
			m.WeeksNotToDo = round1(m.WeeksNotToDo + item.Effort)
		case types.StatusCancelled:
			m.WeeksCancelled = round1(m.WeeksCancelled + item.Effort)
			m.WeeksNotToDo = round1(m.WeeksNotToDo + item.Effort)
		}
	}
	fill(&m)
	rm.ProgressMetrics = m
	return rm
}

// AggregateInitiative rolls roadmap-item metrics up into the initiative and
// orders the roadmap items descending by total weeks.
func (a *Aggregator) AggregateInitiative(init types.Initiative) types.Initiative {
	m := types.ProgressMetrics{}
	items := make([]types.RoadmapItem, len(init.RoadmapItems))
	for i, rm := range init.RoadmapItems {
		items[i] = a.AggregateRoadmapItem(rm)
		add(&m, items[i].ProgressMetrics)
	}
	fill(&m)
	types.SortRoadmapItemsByWeeks(items)
	init.RoadmapItems = items
	init.ProgressMetrics = m
	return init
}

// Aggregate annotates the whole hierarchy and orders initiatives descending
// by total weeks so the largest body of work comes first.
func (a *Aggregator) Aggregate(initiatives []types.Initiative) []types.Initiative {
	out := make([]types.Initiative, len(initiatives))
	for i, init := range initiatives {
		out[i] = a.AggregateInitiative(init)
	}
	types.SortInitiativesByWeeks(out)
	return out
}

// AggregateCycle sums the annotated initiatives into the cycle and derives
// the cycle's date metrics relative to now.
func (a *Aggregator) AggregateCycle(cycle types.Cycle, initiatives []types.Initiative, now time.Time) types.Cycle {
	m := types.ProgressMetrics{}
	for _, init := range initiatives {
		add(&m, init.ProgressMetrics)
	}
	fill(&m)
	cycle.ProgressMetrics = m

	if !cycle.Delivery.IsZero() {
		cycle.StartMonth = cycle.Delivery.Format("Jan")
	}
	if !cycle.End.IsZero() {
		cycle.EndMonth = cycle.End.Format("Jan")
	}
	cycle.DaysFromStartOfCycle = wholeDays(cycle.Delivery, now)
	cycle.DaysInCycle = wholeDays(cycle.Delivery, cycle.End)
	cycle.CurrentDayPercentage = dayPercentage(cycle.DaysFromStartOfCycle, cycle.DaysInCycle)
	return cycle
}

// wholeDays is the absolute whole-day difference between two instants.
func wholeDays(a, b time.Time) int {
	return int(math.Abs(b.Sub(a).Hours()) / 24)
}

// dayPercentage clamps to a maximum of 100 but never below 0; a negative
// ratio yields a negative percentage, a known edge case left uncorrected.
func dayPercentage(days, daysIn int) int {
	if daysIn == 0 {
		return 0
	}
	p := int(math.Round(float64(days) / float64(daysIn) * 100))
	if p > 100 {
		return 100
	}
	return p
}
