// Package resolve turns raw ticket fragments (labels, titles, status ids)
// into domain values. Every function is pure; data-quality problems come back
// as validation items, never as errors.
package resolve

import (
	"github.com/steveyegge/strata/internal/types"
)

// Translator resolves raw label values against the configured dictionaries.
// Kind may be singular or plural (area/areas, team/teams, ...).
type Translator interface {
	// Lookup returns the translated display name, or ok=false when no
	// mapping exists.
	Lookup(kind, value string) (string, bool)
	// Translate returns the translated display name, silently falling back
	// to the raw value.
	Translate(kind, value string) string
}

// StageOracle classifies stage tokens parsed from ticket titles.
type StageOracle interface {
	IsExternalStage(stage string) bool
	IsFinalReleaseStage(stage string) bool
	IsReleasableStage(stage string) bool
}

// StatusMapper maps raw tracker status ids to domain statuses.
type StatusMapper interface {
	StatusFor(statusID string) types.Status
}
