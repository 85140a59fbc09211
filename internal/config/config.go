// Package config holds the reference data the rollup pipeline consumes: label
// dictionaries, the stage taxonomy, the status-id mapping, and the validation
// message catalog. All lookups are pure and side-effect free; loading happens
// once at startup.
package config

import (
	"strings"

	"github.com/steveyegge/strata/internal/types"
)

// Dictionaries translate raw label values into display names, keyed by the
// plural label kind.
type Dictionaries struct {
	Areas       map[string]string `yaml:"areas" toml:"areas"`
	Teams       map[string]string `yaml:"teams" toml:"teams"`
	Themes      map[string]string `yaml:"themes" toml:"themes"`
	Initiatives map[string]string `yaml:"initiatives" toml:"initiatives"`
}

// StageTaxonomy classifies stage tokens parsed from ticket titles.
type StageTaxonomy struct {
	External     []string `yaml:"external"`
	FinalRelease []string `yaml:"final-release"`
	Releasable   []string `yaml:"releasable"`
	CompoundTier string   `yaml:"compound-tier"` // top enhancement tier, rendered with a trailing +
}

// Config is the full reference-data bundle. Zero values fall back to
// DefaultConfig entries during Load.
type Config struct {
	Dictionaries  Dictionaries      `yaml:"dictionaries"`
	Stages        StageTaxonomy     `yaml:"stages"`
	StatusMapping map[string]string `yaml:"status-mapping"`

	// Theme and label policy knobs.
	VirtualTheme            string `yaml:"virtual-theme"`
	NonRoadmapTheme         string `yaml:"non-roadmap-theme"`
	NoPreReleaseLabel       string `yaml:"no-pre-release-allowed-label"`
	UncategorizedInitiative string `yaml:"uncategorized-initiative"`
	VirtualInitiativeName   string `yaml:"virtual-initiative-name"`

	// ValidationMessages maps validation codes to display templates. A "%s"
	// placeholder receives the finding's dynamic parameter.
	ValidationMessages map[string]string `yaml:"validation-messages"`
}

// DefaultConfig returns the built-in reference data. Projects overlay it with
// config.yaml and an optional dictionaries TOML file.
func DefaultConfig() *Config {
	return &Config{
		Dictionaries: Dictionaries{
			Areas:       map[string]string{},
			Teams:       map[string]string{},
			Themes:      map[string]string{},
			Initiatives: map[string]string{},
		},
		Stages: StageTaxonomy{
			External:     []string{"s1", "s2", "s3", "s3+"},
			FinalRelease: []string{"s3", "s3+"},
			Releasable:   []string{"s2", "s3", "s3+"},
			CompoundTier: "s3+",
		},
		StatusMapping: map[string]string{
			"1": string(types.StatusTodo),
			"2": string(types.StatusInProgress),
			"3": string(types.StatusDone),
			"4": string(types.StatusCancelled),
			"5": string(types.StatusPostponed),
			"6": string(types.StatusReplanned),
		},
		VirtualTheme:            "virtual",
		NonRoadmapTheme:         "non-roadmap",
		NoPreReleaseLabel:       "no-pre-release-allowed",
		UncategorizedInitiative: "uncategorized",
		VirtualInitiativeName:   "Virtual",
		ValidationMessages: map[string]string{
			string(types.CodeMissingEstimate):        "estimate is missing",
			string(types.CodeTooGranularEstimate):    "estimate must be a multiple of 0.5 weeks",
			string(types.CodeNoProjectID):            "ticket has no parent roadmap item",
			string(types.CodeMissingAreaLabel):       "no area label on ticket",
			string(types.CodeMissingAreaTranslation): "area label %s has no translation",
			string(types.CodeMissingTeamLabel):       "no team label on ticket",
			string(types.CodeMissingTeamTranslation): "team label %s has no translation",
			string(types.CodeMissingAssignee):        "ticket has no assignee",
			string(types.CodeMissingInitiativeLabel): "roadmap item has no initiative label",
			string(types.CodeTooLowStage):            "external stage on a roadmap item that disallows pre-release",
		},
	}
}

// dictionary returns the map for a label kind. Singular kinds are normalized
// to the dictionary's plural key (area -> areas, team -> teams, ...).
func (c *Config) dictionary(kind string) map[string]string {
	switch normalizeKind(kind) {
	case "areas":
		return c.Dictionaries.Areas
	case "teams":
		return c.Dictionaries.Teams
	case "themes":
		return c.Dictionaries.Themes
	case "initiatives":
		return c.Dictionaries.Initiatives
	}
	return nil
}

func normalizeKind(kind string) string {
	switch kind {
	case "area", "team", "theme", "initiative":
		return kind + "s"
	}
	return kind
}

// Lookup resolves a raw label value against the dictionary for kind. The
// second return is false when no mapping exists; callers decide between the
// silent raw fallback (Translate) and a validation finding.
func (c *Config) Lookup(kind, value string) (string, bool) {
	dict := c.dictionary(kind)
	if dict == nil {
		return "", false
	}
	translated, ok := dict[value]
	return translated, ok
}

// Translate resolves a raw label value, silently falling back to the raw
// value when no mapping exists.
func (c *Config) Translate(kind, value string) string {
	if translated, ok := c.Lookup(kind, value); ok {
		return translated
	}
	return value
}

// IsExternalStage reports whether the stage token is a configured external
// stage. Stage tokens are compared lowercase.
func (c *Config) IsExternalStage(stage string) bool {
	return containsFold(c.Stages.External, stage)
}

// IsFinalReleaseStage reports whether the stage is a final release tier.
func (c *Config) IsFinalReleaseStage(stage string) bool {
	return containsFold(c.Stages.FinalRelease, stage)
}

// IsReleasableStage reports whether the stage may ship to customers.
func (c *Config) IsReleasableStage(stage string) bool {
	return containsFold(c.Stages.Releasable, stage)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// StatusFor maps a raw tracker status id to its domain status, defaulting to
// todo when the id is unmapped.
func (c *Config) StatusFor(statusID string) types.Status {
	if mapped, ok := c.StatusMapping[statusID]; ok {
		return types.Status(mapped)
	}
	return types.StatusTodo
}

// MessageFor resolves a validation finding against the message catalog.
// Unknown codes fall back to the code itself.
func (c *Config) MessageFor(v types.ValidationItem) string {
	tmpl, ok := c.ValidationMessages[string(v.Code)]
	if !ok {
		return string(v.Code)
	}
	if strings.Contains(tmpl, "%s") {
		return strings.Replace(tmpl, "%s", v.Description, 1)
	}
	return tmpl
}
