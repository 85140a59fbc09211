package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/strata/internal/types"
)

func TestLookupNormalizesKind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dictionaries.Areas["frontend"] = "Frontend"
	cfg.Dictionaries.Teams["core"] = "Core Platform"

	tests := []struct {
		kind  string
		value string
		want  string
		ok    bool
	}{
		{"area", "frontend", "Frontend", true},
		{"areas", "frontend", "Frontend", true},
		{"team", "core", "Core Platform", true},
		{"team", "missing", "", false},
		{"bogus", "frontend", "", false},
	}
	for _, tt := range tests {
		got, ok := cfg.Lookup(tt.kind, tt.value)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%q, %q) = (%q, %v), want (%q, %v)", tt.kind, tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTranslateFallsBackToRaw(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Translate("area", "unmapped-label"); got != "unmapped-label" {
		t.Errorf("Translate fallback = %q, want raw value", got)
	}
}

func TestStageOracle(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		stage      string
		external   bool
		final      bool
		releasable bool
	}{
		{"s1", true, false, false},
		{"S1", true, false, false}, // tokens compare case-insensitively
		{"s2", true, false, true},
		{"s3", true, true, true},
		{"s3+", true, true, true},
		{"internal", false, false, false},
		{"", false, false, false},
	}
	for _, tt := range tests {
		if got := cfg.IsExternalStage(tt.stage); got != tt.external {
			t.Errorf("IsExternalStage(%q) = %v, want %v", tt.stage, got, tt.external)
		}
		if got := cfg.IsFinalReleaseStage(tt.stage); got != tt.final {
			t.Errorf("IsFinalReleaseStage(%q) = %v, want %v", tt.stage, got, tt.final)
		}
		if got := cfg.IsReleasableStage(tt.stage); got != tt.releasable {
			t.Errorf("IsReleasableStage(%q) = %v, want %v", tt.stage, got, tt.releasable)
		}
	}
}

func TestStatusForDefaultsToTodo(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.StatusFor("2"); got != types.StatusInProgress {
		t.Errorf("StatusFor(2) = %q, want inprogress", got)
	}
	if got := cfg.StatusFor("999"); got != types.StatusTodo {
		t.Errorf("StatusFor(999) = %q, want todo", got)
	}
}

func TestMessageForParameter(t *testing.T) {
	cfg := DefaultConfig()
	v := types.NewValidationParam(types.CodeMissingTeamTranslation, "platform-x")
	got := cfg.MessageFor(v)
	assert.Contains(t, got, "platform-x")

	unknown := types.ValidationItem{Code: "neverHeardOfIt"}
	assert.Equal(t, "neverHeardOfIt", cfg.MessageFor(unknown))
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
dictionaries:
  areas:
    fe: Frontend
stages:
  external: [beta, ga]
  compound-tier: ga+
status-mapping:
  "10": done
virtual-theme: synthetic
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Frontend", cfg.Translate("area", "fe"))
	assert.True(t, cfg.IsExternalStage("beta"))
	assert.False(t, cfg.IsExternalStage("s1")) // overlay replaces the list
	assert.Equal(t, "ga+", cfg.Stages.CompoundTier)
	assert.Equal(t, types.StatusDone, cfg.StatusFor("10"))
	assert.Equal(t, "synthetic", cfg.VirtualTheme)
	// untouched defaults survive the merge
	assert.Equal(t, "non-roadmap", cfg.NonRoadmapTheme)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "uncategorized", cfg.UncategorizedInitiative)
}

func TestLoadDictionariesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dictionaries.toml")
	content := `
[areas]
fe = "Frontend"
be = "Backend"

[teams]
core = "Core Platform"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadDictionaries(path))
	assert.Equal(t, "Backend", cfg.Translate("area", "be"))
	assert.Equal(t, "Core Platform", cfg.Translate("team", "core"))
}

func TestLoadCycles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cycles.yaml")
	content := `
cycles:
  - id: 2026-q1
    name: Q1 2026
    start: 2026-01-05
    end: 2026-03-27
    delivery: 2026-01-12
    state: active
  - id: 2026-q2
    name: Q2 2026
    start: 2026-04-06T00:00:00Z
    end: 2026-06-26T00:00:00Z
    delivery: 2026-04-13T00:00:00Z
    state: future
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cycles, err := LoadCycles(path)
	require.NoError(t, err)
	require.Len(t, cycles, 2)
	assert.Equal(t, "2026-q1", cycles[0].ID)
	assert.Equal(t, types.CycleActive, cycles[0].State)
	assert.Equal(t, 2026, cycles[0].Start.Year())
	assert.Equal(t, types.CycleFuture, cycles[1].State)
}
