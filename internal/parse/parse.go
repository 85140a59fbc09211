// Package parse converts raw tickets into release items, accumulating
// field-level validation findings along the way. Parsing is pure: the only
// hard failures are malformed ticket shapes, which violate the upstream
// contract.
package parse

import (
	"fmt"
	"math"
	"strings"

	"github.com/steveyegge/strata/internal/jira"
	"github.com/steveyegge/strata/internal/resolve"
	"github.com/steveyegge/strata/internal/types"
)

// Title markers that force a ticket off the external roadmap regardless of
// its flag.
const (
	internalMarker  = "(Internal)"
	stageZeroMarker = "(S0)"
)

// Flag labels carried verbatim on tickets.
const (
	narrativeLabel = "release-narrative"
	atRiskLabel    = "release-at-risk"
)

const granularityEpsilon = 1e-9

// Parser converts raw tickets into release items using the injected
// reference-data surfaces.
type Parser struct {
	Translator resolve.Translator
	Stages     resolve.StageOracle
	Statuses   resolve.StatusMapper
}

// Parse converts one raw ticket into a release item in the context of the
// given reference cycle. Status resolution is per (ticket, cycle): the same
// ticket can resolve differently under another reference cycle.
//
// cycles is the known-cycle reference list used to find the ticket's assigned
// cycle for the postponement override.
func (p *Parser) Parse(t *jira.Issue, reference *types.Cycle, cycles []types.Cycle) (types.ReleaseItem, error) {
	if t.Key == "" {
		return types.ReleaseItem{}, fmt.Errorf("ticket has no key")
	}
	if t.Fields.Status == nil || t.Fields.Status.ID == "" {
		return types.ReleaseItem{}, fmt.Errorf("ticket %s has no status id", t.Key)
	}

	var validations []types.ValidationItem

	effort := 0.0
	if t.Fields.Effort == nil {
		validations = append(validations, types.NewValidation(types.CodeMissingEstimate))
	} else {
		effort = *t.Fields.Effort
		if !isHalfUnit(effort) {
			// Value is retained, not clamped.
			validations = append(validations, types.NewValidation(types.CodeTooGranularEstimate))
		}
	}

	projectID := t.ParentKey()
	if projectID == "" {
		validations = append(validations, types.NewValidation(types.CodeNoProjectID))
	}

	areas := resolve.CollectAreas(p.Translator, t.Fields.Labels)
	validations = append(validations, areas.Validations...)

	teams := resolve.CollectTeams(p.Translator, t.Fields.Labels)
	validations = append(validations, teams.Validations...)

	assignee := userToAssignee(t.Fields.Assignee)
	if assignee == nil {
		validations = append(validations, types.NewValidation(types.CodeMissingAssignee))
		// Best-effort substitute so the item still has an owner to show.
		assignee = userToAssignee(t.Fields.Reporter)
	}

	stage := resolve.ResolveStage(t.Fields.Summary, p.Stages)
	name := resolve.CleanName(t.Fields.Summary, stage)

	cycleID := t.CycleID()
	assigned := findCycle(cycles, cycleID)
	status := resolve.ResolveStatus(t.Fields.Status.ID, reference, assigned, p.Statuses)

	return types.ReleaseItem{
		TicketID:                 t.Key,
		Name:                     name,
		Effort:                   effort,
		ProjectID:                projectID,
		AreaIDs:                  areas.IDs,
		Teams:                    teams.Names,
		Status:                   status,
		Stage:                    stage,
		Assignee:                 assignee,
		IsExternal:               initialExternal(t),
		Validations:              validations,
		IsPartOfReleaseNarrative: hasLabel(t.Fields.Labels, narrativeLabel),
		IsReleaseAtRisk:          hasLabel(t.Fields.Labels, atRiskLabel),
		CycleID:                  cycleID,
	}, nil
}

// ParseAll converts a ticket snapshot in order, failing fast on the first
// malformed ticket.
func (p *Parser) ParseAll(tickets []jira.Issue, reference *types.Cycle, cycles []types.Cycle) ([]types.ReleaseItem, error) {
	items := make([]types.ReleaseItem, 0, len(tickets))
	for i := range tickets {
		item, err := p.Parse(&tickets[i], reference, cycles)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// initialExternal computes the pre-aggregation external flag: the ticket's
// external-roadmap flag is set and the title carries neither off-roadmap
// marker. The aggregation engine later rewrites this in roadmap context.
func initialExternal(t *jira.Issue) bool {
	if t.Fields.ExternalRoadmap != "Yes" {
		return false
	}
	return !strings.Contains(t.Fields.Summary, internalMarker) &&
		!strings.Contains(t.Fields.Summary, stageZeroMarker)
}

// isHalfUnit reports whether the estimate is a multiple of 0.5 weeks.
func isHalfUnit(effort float64) bool {
	r := math.Abs(math.Mod(effort, 0.5))
	return r < granularityEpsilon || 0.5-r < granularityEpsilon
}

func userToAssignee(u *jira.UserField) *types.Assignee {
	if u == nil {
		return nil
	}
	return &types.Assignee{ID: u.ID, AccountID: u.AccountID, DisplayName: u.DisplayName}
}

func findCycle(cycles []types.Cycle, id string) *types.Cycle {
	if id == "" {
		return nil
	}
	for i := range cycles {
		if cycles[i].ID == id {
			return &cycles[i]
		}
	}
	return nil
}

func hasLabel(labels []string, want string) bool {
	for _, l := range labels {
		if strings.TrimSpace(l) == want {
			return true
		}
	}
	return false
}
