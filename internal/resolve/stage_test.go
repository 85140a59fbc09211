package resolve

import (
	"strings"
	"testing"
)

// fakeOracle treats the listed stages as external.
type fakeOracle struct {
	external   []string
	final      []string
	releasable []string
}

func (f fakeOracle) IsExternalStage(s string) bool     { return containsFold(f.external, s) }
func (f fakeOracle) IsFinalReleaseStage(s string) bool { return containsFold(f.final, s) }
func (f fakeOracle) IsReleasableStage(s string) bool   { return containsFold(f.releasable, s) }

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func TestResolveStage(t *testing.T) {
	oracle := fakeOracle{external: []string{"s1", "s2", "s3", "s3+"}}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"external stage", "Checkout Redesign (s1)", "s1"},
		{"uppercase token lowercased", "Checkout Redesign (S2)", "s2"},
		{"compound tier", "Search Revamp (S3+)", "s3+"},
		{"unknown token is internal", "Ops Cleanup (Backend)", "internal"},
		{"no parens", "Plain Title", "internal"},
		{"only open paren", "Broken (title", "internal"},
		{"only close paren", "Broken title)", "internal"},
		{"close before open", "a) mid (", "internal"},
		{"empty token", "Title ()", "internal"},
		// The last-open/last-close heuristic pairs the final parens even
		// when that spans unrelated groups. This misparse is load-bearing.
		{"trailing unrelated group wins", "Payments (s1) (EMEA)", "internal"},
		{"stage in last group", "Payments (EMEA rollout) (s2)", "s2"},
		{"nested-ish text", "Fix (see notes (s1)", "s1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveStage(tt.text, oracle); got != tt.want {
				t.Errorf("ResolveStage(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		name  string
		title string
		stage string
		want  string
	}{
		{"strips stage marker", "Checkout Redesign (s1)", "s1", "Checkout Redesign"},
		{"case insensitive", "Checkout Redesign (S1)", "s1", "Checkout Redesign"},
		{"compound tier plus is escaped", "Search Revamp (s3+)", "s3+", "Search Revamp"},
		{"only first occurrence", "A (s1) B (s1)", "s1", "A  B (s1)"},
		{"no marker is a no-op", "Plain Title", "s1", "Plain Title"},
		{"empty stage trims only", "  Padded  ", "", "Padded"},
		{"internal marker", "Tooling (internal)", "internal", "Tooling"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanName(tt.title, tt.stage); got != tt.want {
				t.Errorf("CleanName(%q, %q) = %q, want %q", tt.title, tt.stage, got, tt.want)
			}
		})
	}
}
