package resolve

import (
	"strings"

	"github.com/steveyegge/strata/internal/types"
)

// ExtractByPrefix returns the values of all labels that, after trimming,
// start with "<prefix>:". The returned values have the prefix stripped.
// Matching is case-sensitive and exact.
func ExtractByPrefix(labels []string, prefix string) []string {
	marker := prefix + ":"
	var out []string
	for _, label := range labels {
		trimmed := strings.TrimSpace(label)
		if strings.HasPrefix(trimmed, marker) {
			out = append(out, trimmed[len(marker):])
		}
	}
	return out
}

// Areas is the result of collecting area labels from one entity.
type Areas struct {
	// Display concatenates every area's display value, translated where a
	// mapping exists and raw otherwise.
	Display string
	// IDs are the raw area codes in label order.
	IDs         []string
	Validations []types.ValidationItem
}

// CollectAreas extracts and translates all area labels. A missing area label
// is an error finding; each failed translation adds a finding, but only the
// first failure carries the untranslated value as its parameter.
func CollectAreas(tr Translator, labels []string) Areas {
	ids := ExtractByPrefix(labels, "area")
	result := Areas{IDs: ids}
	if len(ids) == 0 {
		result.Validations = append(result.Validations, types.NewValidation(types.CodeMissingAreaLabel))
		return result
	}

	var display []string
	failed := false
	for _, id := range ids {
		translated, ok := tr.Lookup("area", id)
		if !ok {
			if !failed {
				result.Validations = append(result.Validations, types.NewValidationParam(types.CodeMissingAreaTranslation, id))
				failed = true
			} else {
				result.Validations = append(result.Validations, types.NewValidation(types.CodeMissingAreaTranslation))
			}
			display = append(display, id)
			continue
		}
		display = append(display, translated)
	}
	result.Display = strings.Join(display, ", ")
	return result
}

// Teams is the result of collecting team labels from one work item.
type Teams struct {
	// Names holds the display name per team; raw values are kept for teams
	// whose translation is missing (partial success, not failure).
	Names       []string
	Validations []types.ValidationItem
}

// CollectTeams extracts and translates all team labels. Zero team labels is
// an error finding; each team with a missing translation adds a parameterized
// warning while the raw value stays in the result list.
func CollectTeams(tr Translator, labels []string) Teams {
	raw := ExtractByPrefix(labels, "team")
	result := Teams{}
	if len(raw) == 0 {
		result.Validations = append(result.Validations, types.NewValidation(types.CodeMissingTeamLabel))
		return result
	}

	for _, team := range raw {
		translated, ok := tr.Lookup("team", team)
		if !ok {
			result.Validations = append(result.Validations, types.NewValidationParam(types.CodeMissingTeamTranslation, team))
			result.Names = append(result.Names, team)
			continue
		}
		result.Names = append(result.Names, translated)
	}
	return result
}

// Initiative is the resolved initiative assignment of a roadmap item.
type Initiative struct {
	ID          string
	Name        string
	Validations []types.ValidationItem
}

// CollectInitiative resolves the initiative label of a roadmap item. With no
// initiative label the item falls back to the uncategorized bucket; that is a
// finding unless the item's theme is the non-roadmap theme, which is exempt
// from initiative-labeling requirements.
func CollectInitiative(tr Translator, labels []string, theme, uncategorizedID, nonRoadmapTheme string) Initiative {
	ids := ExtractByPrefix(labels, "initiative")
	if len(ids) == 0 {
		result := Initiative{ID: uncategorizedID, Name: tr.Translate("initiative", uncategorizedID)}
		if theme != nonRoadmapTheme {
			result.Validations = append(result.Validations, types.NewValidation(types.CodeMissingInitiativeLabel))
		}
		return result
	}
	id := ids[0]
	return Initiative{ID: id, Name: tr.Translate("initiative", id)}
}

// CollectTheme resolves the theme label of a roadmap item. The raw token is
// what policy checks (virtual, non-roadmap) compare against.
func CollectTheme(tr Translator, labels []string) (raw, display string) {
	themes := ExtractByPrefix(labels, "theme")
	if len(themes) == 0 {
		return "", ""
	}
	return themes[0], tr.Translate("theme", themes[0])
}
