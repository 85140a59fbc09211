package types

import "sort"

// SortInitiativesByWeeks orders initiatives descending by total weeks, so the
// largest body of work renders first. The sort is stable; ties keep their
// prior order.
func SortInitiativesByWeeks(initiatives []Initiative) {
	sort.SliceStable(initiatives, func(i, j int) bool {
		return initiatives[i].Weeks > initiatives[j].Weeks
	})
}

// SortRoadmapItemsByWeeks orders roadmap items descending by total weeks.
func SortRoadmapItemsByWeeks(items []RoadmapItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Weeks > items[j].Weeks
	})
}
