// Package jira defines the raw ticket shape consumed by the rollup pipeline
// and decodes locally exported ticket snapshots. There is no network client
// here; fetching and caching belong to the tracker collaborator.
package jira

// Issue represents one raw ticket as exported from the tracker.
type Issue struct {
	ID     string      `json:"id,omitempty"`
	Key    string      `json:"key"`
	Self   string      `json:"self,omitempty"`
	Fields IssueFields `json:"fields"`
}

// IssueFields contains the ticket fields the pipeline reads.
type IssueFields struct {
	Summary         string       `json:"summary"`
	Status          *StatusField `json:"status"`
	Labels          []string     `json:"labels"`
	Assignee        *UserField   `json:"assignee"`
	Reporter        *UserField   `json:"reporter"`
	Parent          *ParentField `json:"parent"`
	Effort          *float64     `json:"effort"` // estimate in weeks; nil when truly unset, 0 is a valid estimate
	ExternalRoadmap string       `json:"externalRoadmap,omitempty"`
	Sprint          *SprintField `json:"sprint"`
}

// StatusField is the raw status of a ticket. The pipeline maps Status.ID
// through the configured status mapping; Name is informational.
type StatusField struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// UserField identifies a tracker user. AccountID is the legacy identifier
// kept for filter compatibility.
type UserField struct {
	ID           string `json:"id,omitempty"`
	AccountID    string `json:"accountId,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// ParentField links a ticket to its parent roadmap item.
type ParentField struct {
	ID  string `json:"id,omitempty"`
	Key string `json:"key"`
}

// SprintField associates a ticket with a planning cycle.
type SprintField struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ParentKey returns the parent roadmap item key, or "" when the ticket has no
// parent.
func (i *Issue) ParentKey() string {
	if i.Fields.Parent == nil {
		return ""
	}
	return i.Fields.Parent.Key
}

// CycleID returns the id of the cycle the ticket is assigned to, or "" when
// unassigned.
func (i *Issue) CycleID() string {
	if i.Fields.Sprint == nil {
		return ""
	}
	return i.Fields.Sprint.ID
}
