// Package types defines core data structures for the strata roadmap rollup engine.
package types

import "time"

// Status is the domain status of a release item, resolved from the raw
// tracker status id through the configured status mapping.
type Status string

// Release item status constants
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
	StatusPostponed  Status = "postponed" // item belongs to a later cycle than the one being rendered
	StatusReplanned  Status = "replanned" // excluded entirely from progress totals
)

// IsValid checks if the status value is one of the known domain statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusCancelled, StatusPostponed, StatusReplanned:
		return true
	}
	return false
}

// ValidationStatus is the severity of a data-quality finding.
type ValidationStatus string

const (
	ValidationError   ValidationStatus = "error"
	ValidationWarning ValidationStatus = "warning"
)

// ValidationCode identifies a data-quality rule. The set is closed; messages
// are resolved against the configured validation catalog at display time.
type ValidationCode string

const (
	CodeMissingEstimate        ValidationCode = "missingEstimate"
	CodeTooGranularEstimate    ValidationCode = "tooGranularEstimate"
	CodeNoProjectID            ValidationCode = "noProjectId"
	CodeMissingAreaLabel       ValidationCode = "missingAreaLabel"
	CodeMissingAreaTranslation ValidationCode = "missingAreaTranslation"
	CodeMissingTeamLabel       ValidationCode = "missingTeamLabel"
	CodeMissingTeamTranslation ValidationCode = "missingTeamTranslation"
	CodeMissingAssignee        ValidationCode = "missingAssignee"
	CodeMissingInitiativeLabel ValidationCode = "missingInitiativeLabel"
	CodeTooLowStage            ValidationCode = "tooLowStageWithoutProperRoadmapItem"
)

// defaultSeverity maps each validation code to its severity. The config
// catalog can override the display message but not the severity.
var defaultSeverity = map[ValidationCode]ValidationStatus{
	CodeMissingEstimate:        ValidationError,
	CodeTooGranularEstimate:    ValidationWarning,
	CodeNoProjectID:            ValidationError,
	CodeMissingAreaLabel:       ValidationError,
	CodeMissingAreaTranslation: ValidationWarning,
	CodeMissingTeamLabel:       ValidationError,
	CodeMissingTeamTranslation: ValidationWarning,
	CodeMissingAssignee:        ValidationWarning,
	CodeMissingInitiativeLabel: ValidationWarning,
	CodeTooLowStage:            ValidationWarning,
}

// SeverityOf returns the severity for a validation code, defaulting to
// warning for unknown codes.
func SeverityOf(code ValidationCode) ValidationStatus {
	if s, ok := defaultSeverity[code]; ok {
		return s
	}
	return ValidationWarning
}

// ValidationItem is a non-fatal data-quality finding attached to an entity.
// Description optionally carries a dynamic parameter (e.g. the untranslated
// label). Validation lists are append-only and never deduplicated.
type ValidationItem struct {
	ID          string           `json:"id"`
	Code        ValidationCode   `json:"code"`
	Status      ValidationStatus `json:"status"`
	Description string           `json:"description,omitempty"`
}

// NewValidation creates a validation item for the given code.
func NewValidation(code ValidationCode) ValidationItem {
	return ValidationItem{ID: string(code), Code: code, Status: SeverityOf(code)}
}

// NewValidationParam creates a validation item carrying a dynamic parameter.
func NewValidationParam(code ValidationCode, param string) ValidationItem {
	v := NewValidation(code)
	v.Description = param
	return v
}

// HasErrors reports whether any finding in the list is severity error.
func HasErrors(validations []ValidationItem) bool {
	for _, v := range validations {
		if v.Status == ValidationError {
			return true
		}
	}
	return false
}

// Assignee identifies the person a release item is assigned to. AccountID is
// the legacy tracker identifier; filters must accept either.
type Assignee struct {
	ID          string `json:"id,omitempty"`
	AccountID   string `json:"accountId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// ReleaseItem is the smallest unit of planned work (one ticket).
//
// IsExternal and Validations are rewritten by the aggregation engine in
// roadmap context; the engine's output is authoritative. All other fields are
// set once by the parser and never mutated afterwards.
type ReleaseItem struct {
	TicketID                 string           `json:"ticketId"`
	Name                     string           `json:"name"`
	Effort                   float64          `json:"effort"`
	ProjectID                string           `json:"projectId,omitempty"` // parent roadmap item key, "" when absent
	AreaIDs                  []string         `json:"areaIds,omitempty"`
	Teams                    []string         `json:"teams,omitempty"`
	Status                   Status           `json:"status"`
	Stage                    string           `json:"stage"`
	Assignee                 *Assignee        `json:"assignee,omitempty"`
	IsExternal               bool             `json:"isExternal"`
	Validations              []ValidationItem `json:"validations,omitempty"`
	IsPartOfReleaseNarrative bool             `json:"isPartOfReleaseNarrative,omitempty"`
	IsReleaseAtRisk          bool             `json:"isReleaseAtRisk,omitempty"`
	CycleID                  string           `json:"cycleId,omitempty"`
}

// ProgressMetrics holds the derived rollup numbers present on roadmap items,
// initiatives, and cycles after progress aggregation. All fields are derived,
// never set directly.
type ProgressMetrics struct {
	Weeks           float64 `json:"weeks"`
	WeeksDone       float64 `json:"weeksDone"`
	WeeksInProgress float64 `json:"weeksInProgress"`
	WeeksTodo       float64 `json:"weeksTodo"`
	WeeksCancelled  float64 `json:"weeksCancelled"`
	WeeksPostponed  float64 `json:"weeksPostponed"`
	WeeksNotToDo    float64 `json:"weeksNotToDo"` // cancelled + postponed

	ReleaseItemsCount     int `json:"releaseItemsCount"`
	ReleaseItemsDoneCount int `json:"releaseItemsDoneCount"`

	Progress               int `json:"progress"`
	ProgressWithInProgress int `json:"progressWithInProgress"`
	ProgressByReleaseItems int `json:"progressByReleaseItems"`
	PercentageNotToDo      int `json:"percentageNotToDo"`
}

// RoadmapItem is a mid-level grouping of release items, keyed by the parent
// ticket. It owns its ReleaseItems by value and is rebuilt wholesale on every
// aggregation run, never mutated in place.
type RoadmapItem struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Area         string           `json:"area,omitempty"`
	Theme        string           `json:"theme,omitempty"`
	InitiativeID string           `json:"initiativeId,omitempty"`
	OwningTeam   string           `json:"owningTeam,omitempty"`
	URL          string           `json:"url,omitempty"`
	ReleaseItems []ReleaseItem    `json:"releaseItems"`
	Validations  []ValidationItem `json:"validations,omitempty"`

	ProgressMetrics
}

// Initiative is the top-level strategic grouping of roadmap items. The
// virtual initiative is a synthetic bucket for roadmap items tagged with the
// configured virtual theme; when non-empty it is always a separate entry at
// the end of the result list.
type Initiative struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	RoadmapItems []RoadmapItem `json:"roadmapItems"`

	ProgressMetrics
}

// CycleState is the lifecycle state of a planning cycle.
type CycleState string

const (
	CycleActive    CycleState = "active"
	CycleClosed    CycleState = "closed"
	CycleFuture    CycleState = "future"
	CycleCompleted CycleState = "completed"
)

// Cycle is a bounded planning period. It is immutable reference data supplied
// by the configuration collaborator; progress aggregation returns an annotated
// copy with the metric fields populated.
type Cycle struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Start    time.Time  `json:"start"`
	End      time.Time  `json:"end"`
	Delivery time.Time  `json:"delivery"`
	State    CycleState `json:"state"`

	ProgressMetrics

	StartMonth           string `json:"startMonth,omitempty"`
	EndMonth             string `json:"endMonth,omitempty"`
	DaysFromStartOfCycle int    `json:"daysFromStartOfCycle,omitempty"`
	DaysInCycle          int    `json:"daysInCycle,omitempty"`
	CurrentDayPercentage int    `json:"currentDayPercentage,omitempty"`
}

// RoadmapRecord is one entry of the roadmap-item reference catalog: the
// tracker ticket backing a roadmap item. Lookups against the catalog are
// best-effort; a miss degrades to an empty-taxonomy roadmap item.
type RoadmapRecord struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	URL        string   `json:"url,omitempty"`
	Labels     []string `json:"labels,omitempty"`
	IsExternal bool     `json:"isExternal,omitempty"`
	OwningTeam string   `json:"owningTeam,omitempty"`
}

// Catalog indexes roadmap records by ticket key.
type Catalog map[string]RoadmapRecord

// FilterCriteria is the multi-field criteria object for the cascading filter.
// An absent/empty field means "no constraint" at that field.
type FilterCriteria struct {
	Area                 string   `json:"area,omitempty"`
	Stages               []string `json:"stages,omitempty"`
	Assignees            []string `json:"assignees,omitempty"`
	Cycle                string   `json:"cycle,omitempty"`
	Initiatives          []string `json:"initiatives,omitempty"`
	ShowValidationErrors bool     `json:"showValidationErrors,omitempty"`
}

// IsEmpty reports whether no criterion is set.
func (c FilterCriteria) IsEmpty() bool {
	return c.Area == "" && len(c.Stages) == 0 && len(c.Assignees) == 0 &&
		c.Cycle == "" && len(c.Initiatives) == 0 && !c.ShowValidationErrors
}
