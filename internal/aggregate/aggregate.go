// Package aggregate builds the roadmap hierarchy from flat release-item
// lists: release items group into roadmap items by parent ticket, roadmap
// items group into initiatives, and each release item's external visibility
// is recomputed with roadmap-level policy on the way through.
//
// The engine is pure: inputs are never mutated, and every run rebuilds the
// hierarchy wholesale.
package aggregate

import (
	"fmt"
	"os"
	"strings"

	"github.com/steveyegge/strata/internal/resolve"
	"github.com/steveyegge/strata/internal/types"
)

// Engine groups release items into the three-level hierarchy. Policy knobs
// come from configuration; Warnf receives non-fatal referential misses and
// defaults to stderr.
type Engine struct {
	Translator resolve.Translator
	Stages     resolve.StageOracle

	VirtualTheme            string
	NonRoadmapTheme         string
	NoPreReleaseLabel       string
	UncategorizedInitiative string
	VirtualInitiativeName   string

	Warnf func(format string, args ...any)
}

func (e *Engine) warnf(format string, args ...any) {
	if e.Warnf != nil {
		e.Warnf(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// builtItem pairs a roadmap item with the raw theme token needed for the
// virtual-bucket partition.
type builtItem struct {
	item  types.RoadmapItem
	theme string
}

// Build runs the full grouping pipeline: partition by parent ticket, refine
// external state per roadmap item, then partition into initiatives with the
// virtual bucket split out. An empty input produces an empty initiative list.
func (e *Engine) Build(items []types.ReleaseItem, catalog types.Catalog) []types.Initiative {
	built := make([]builtItem, 0)
	for _, group := range groupByProject(items) {
		built = append(built, e.buildRoadmapItem(group.key, group.items, catalog))
	}
	return e.groupByInitiative(built)
}

type projectGroup struct {
	key   string
	items []types.ReleaseItem
}

// groupByProject partitions release items by parent ticket key, preserving
// first-seen order.
func groupByProject(items []types.ReleaseItem) []projectGroup {
	index := make(map[string]int)
	var groups []projectGroup
	for _, item := range items {
		i, ok := index[item.ProjectID]
		if !ok {
			i = len(groups)
			index[item.ProjectID] = i
			groups = append(groups, projectGroup{key: item.ProjectID})
		}
		groups[i].items = append(groups[i].items, item)
	}
	return groups
}

// buildRoadmapItem assembles one roadmap item from a parent-key partition.
// A catalog miss is non-fatal: the item degrades to empty taxonomy with its
// release items preserved verbatim, grouped under the uncategorized
// initiative so it never renders under a blank header.
func (e *Engine) buildRoadmapItem(key string, items []types.ReleaseItem, catalog types.Catalog) builtItem {
	rec, ok := catalog[key]
	if !ok {
		e.warnf("no roadmap record for %q; keeping %d release item(s) without taxonomy", key, len(items))
		return builtItem{item: types.RoadmapItem{
			ID:           key,
			InitiativeID: e.UncategorizedInitiative,
			ReleaseItems: append([]types.ReleaseItem(nil), items...),
		}}
	}

	var validations []types.ValidationItem

	areas := resolve.CollectAreas(e.Translator, rec.Labels)
	validations = append(validations, areas.Validations...)

	themeRaw, themeDisplay := resolve.CollectTheme(e.Translator, rec.Labels)

	initiative := resolve.CollectInitiative(e.Translator, rec.Labels, themeRaw, e.UncategorizedInitiative, e.NonRoadmapTheme)
	validations = append(validations, initiative.Validations...)

	hasNoPreRelease := hasLabel(rec.Labels, e.NoPreReleaseLabel)
	children := e.refineExternalState(items, rec.IsExternal, hasNoPreRelease)

	return builtItem{
		item: types.RoadmapItem{
			ID:           rec.Key,
			Name:         rec.Name,
			Area:         areas.Display,
			Theme:        themeDisplay,
			InitiativeID: initiative.ID,
			OwningTeam:   rec.OwningTeam,
			URL:          rec.URL,
			ReleaseItems: children,
			Validations:  validations,
		},
		theme: themeRaw,
	}
}

// refineExternalState recomputes each release item's external visibility in
// roadmap context and flags pre-release policy violations. It returns new
// items; the input slice is never mutated.
func (e *Engine) refineExternalState(items []types.ReleaseItem, roadmapIsExternal, hasNoPreRelease bool) []types.ReleaseItem {
	out := make([]types.ReleaseItem, len(items))
	for i, item := range items {
		hasExternalStage := e.Stages.IsExternalStage(item.Stage)
		isFinal := e.Stages.IsFinalReleaseStage(item.Stage)

		refined := item
		refined.Validations = append([]types.ValidationItem(nil), item.Validations...)
		refined.IsExternal = hasExternalStage && (roadmapIsExternal || hasNoPreRelease)

		if hasExternalStage && hasNoPreRelease && !isFinal {
			// Informational only; the pipeline keeps going.
			refined.Validations = append(refined.Validations, types.NewValidation(types.CodeTooLowStage))
		}
		out[i] = refined
	}
	return out
}

// groupByInitiative partitions roadmap items by initiative id, with the
// virtual-theme bucket pulled out first. The virtual initiative, when
// non-empty, is exactly one extra entry at the end of the list.
func (e *Engine) groupByInitiative(built []builtItem) []types.Initiative {
	var virtual []types.RoadmapItem

	index := make(map[string]int)
	initiatives := make([]types.Initiative, 0)
	for _, b := range built {
		if b.theme != "" && b.theme == e.VirtualTheme {
			virtual = append(virtual, b.item)
			continue
		}
		id := b.item.InitiativeID
		i, ok := index[id]
		if !ok {
			i = len(initiatives)
			index[id] = i
			initiatives = append(initiatives, types.Initiative{
				ID:   id,
				Name: e.initiativeName(id),
			})
		}
		initiatives[i].RoadmapItems = append(initiatives[i].RoadmapItems, b.item)
	}

	if len(virtual) > 0 {
		initiatives = append(initiatives, types.Initiative{
			ID:           e.VirtualTheme,
			Name:         e.VirtualInitiativeName,
			RoadmapItems: virtual,
		})
	}
	return initiatives
}

// initiativeName resolves an initiative's display name from configuration,
// falling back to the id when unconfigured.
func (e *Engine) initiativeName(id string) string {
	if e.Translator == nil {
		return id
	}
	return e.Translator.Translate("initiative", id)
}

func hasLabel(labels []string, want string) bool {
	if want == "" {
		return false
	}
	for _, l := range labels {
		if strings.TrimSpace(l) == want {
			return true
		}
	}
	return false
}
