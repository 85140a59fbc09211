package resolve

import (
	"github.com/steveyegge/strata/internal/types"
)

// ResolveStatus maps a raw status id to its domain status in the context of a
// reference cycle.
//
// When the work item has an assigned cycle that starts strictly after the
// reference cycle, the item is postponed from the reference cycle's point of
// view regardless of its raw status. Equal start dates do not trigger the
// override. The same ticket can therefore resolve to different statuses under
// different reference cycles; callers invoke this once per (item, cycle) pair.
func ResolveStatus(statusID string, reference, assigned *types.Cycle, mapping StatusMapper) types.Status {
	if assigned != nil && reference != nil && reference.Start.Before(assigned.Start) {
		return types.StatusPostponed
	}
	return mapping.StatusFor(statusID)
}
