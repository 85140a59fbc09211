// Package filter prunes the roadmap hierarchy by multi-field criteria.
// Matching is leaf-first; survival cascades upward and empty branches are
// pruned. The filter never mutates its input: it returns new container
// objects with possibly-shared leaf references.
package filter

import (
	"strings"

	"github.com/steveyegge/strata/internal/types"
)

// Result is a filtered hierarchy plus metadata for UI echo.
type Result struct {
	Initiatives []types.Initiative   `json:"initiatives"`
	Criteria    types.FilterCriteria `json:"criteria"`

	InitiativeCount  int `json:"initiativeCount"`
	RoadmapItemCount int `json:"roadmapItemCount"`
	ReleaseItemCount int `json:"releaseItemCount"`
}

// Apply filters the hierarchy by the given criteria. Any criterion left
// empty always passes; an all-empty criteria object returns the tree with
// every leaf intact.
func Apply(initiatives []types.Initiative, criteria types.FilterCriteria) Result {
	result := Result{Initiatives: []types.Initiative{}, Criteria: criteria}
	for _, init := range initiatives {
		filtered, ok := filterInitiative(init, criteria)
		if !ok {
			continue
		}
		result.Initiatives = append(result.Initiatives, filtered)
		result.InitiativeCount++
		result.RoadmapItemCount += len(filtered.RoadmapItems)
		for _, rm := range filtered.RoadmapItems {
			result.ReleaseItemCount += len(rm.ReleaseItems)
		}
	}
	return result
}

// filterInitiative applies the initiatives criterion directly to the
// initiative, independent of its children: failing it forces the children
// list empty. Otherwise the initiative survives iff at least one roadmap
// item does.
func filterInitiative(init types.Initiative, criteria types.FilterCriteria) (types.Initiative, bool) {
	if len(criteria.Initiatives) > 0 && !contains(criteria.Initiatives, init.ID) {
		return types.Initiative{}, false
	}

	out := init
	out.RoadmapItems = []types.RoadmapItem{}
	for _, rm := range init.RoadmapItems {
		filtered, ok := filterRoadmapItem(rm, criteria)
		if !ok {
			continue
		}
		out.RoadmapItems = append(out.RoadmapItems, filtered)
	}
	return out, len(out.RoadmapItems) > 0
}

// filterRoadmapItem keeps a roadmap item when it has at least one surviving
// leaf, or when an active area filter matches the item's own area directly.
// The direct-match rule keeps administratively-tagged roadmap items visible
// even when none of their work items carry area labels.
func filterRoadmapItem(rm types.RoadmapItem, criteria types.FilterCriteria) (types.RoadmapItem, bool) {
	leaves := []types.ReleaseItem{}
	for _, item := range rm.ReleaseItems {
		if matchesLeaf(item, criteria) {
			leaves = append(leaves, item)
		}
	}

	survives := len(leaves) > 0 ||
		(criteria.Area != "" && strings.EqualFold(rm.Area, criteria.Area))

	// With the validation gate on, a roadmap item with no findings of its
	// own and no surviving leaves carrying findings is emptied regardless.
	if criteria.ShowValidationErrors && len(leaves) == 0 && len(rm.Validations) == 0 {
		survives = false
	}

	out := rm
	out.ReleaseItems = leaves
	return out, survives
}

// matchesLeaf ANDs the independently-optional predicates. An absent criterion
// passes vacuously, never fails the item.
func matchesLeaf(item types.ReleaseItem, criteria types.FilterCriteria) bool {
	if criteria.Area != "" && !matchesArea(item, criteria.Area) {
		return false
	}
	if len(criteria.Stages) > 0 && !contains(criteria.Stages, item.Stage) {
		return false
	}
	if len(criteria.Assignees) > 0 && !matchesAssignee(item.Assignee, criteria.Assignees) {
		return false
	}
	if criteria.Cycle != "" && item.CycleID != criteria.Cycle {
		return false
	}
	if criteria.ShowValidationErrors && len(item.Validations) == 0 {
		return false
	}
	return true
}

// matchesArea checks the leaf's area id list. Release items carry area ids
// only, never a single display area, so the single-area fallback lives one
// level up: the direct-match rule in filterRoadmapItem compares the roadmap
// item's own area.
func matchesArea(item types.ReleaseItem, area string) bool {
	for _, id := range item.AreaIDs {
		if strings.EqualFold(id, area) {
			return true
		}
	}
	return false
}

// matchesAssignee accepts either the current id or the legacy account id.
func matchesAssignee(assignee *types.Assignee, wanted []string) bool {
	if assignee == nil {
		return false
	}
	for _, w := range wanted {
		if (assignee.ID != "" && assignee.ID == w) || (assignee.AccountID != "" && assignee.AccountID == w) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
