package ui

import (
	"os"
	"testing"

	"github.com/steveyegge/strata/internal/types"
)

// resetEnv unsets the given variables for the duration of the test and
// restores them afterwards.
func resetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		old, had := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				os.Setenv(key, old)
			} else {
				os.Unsetenv(key)
			}
		})
	}
}

func TestShouldUseColor(t *testing.T) {
	// Every case here is decidable from the environment alone; cases that
	// would fall through to TTY detection rely on go test's piped stdout.
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"NO_COLOR disables", map[string]string{"NO_COLOR": "1"}, false},
		{"NO_COLOR disables even when empty", map[string]string{"NO_COLOR": ""}, false},
		{"NO_COLOR beats CLICOLOR_FORCE", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, false},
		{"CLICOLOR=0 disables", map[string]string{"CLICOLOR": "0"}, false},
		{"CLICOLOR_FORCE enables when piped", map[string]string{"CLICOLOR_FORCE": "1"}, true},
		{"CLICOLOR_FORCE=0 does not force", map[string]string{"CLICOLOR_FORCE": "0"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetEnv(t, "NO_COLOR", "CLICOLOR", "CLICOLOR_FORCE")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := ShouldUseColor(); got != tt.want {
				t.Errorf("ShouldUseColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldUseEmoji(t *testing.T) {
	resetEnv(t, "STRATA_NO_EMOJI")

	t.Run("STRATA_NO_EMOJI disables", func(t *testing.T) {
		t.Setenv("STRATA_NO_EMOJI", "1")
		if ShouldUseEmoji() {
			t.Error("ShouldUseEmoji() = true with STRATA_NO_EMOJI set")
		}
	})

	t.Run("unset follows TTY state", func(t *testing.T) {
		if got, want := ShouldUseEmoji(), IsTerminal(); got != want {
			t.Errorf("ShouldUseEmoji() = %v, want %v", got, want)
		}
	})
}

func TestSeverityIconFallsBackToASCII(t *testing.T) {
	resetEnv(t, "STRATA_NO_EMOJI")
	t.Setenv("STRATA_NO_EMOJI", "1")

	if got := SeverityIcon(types.ValidationError); got != "x" {
		t.Errorf("SeverityIcon(error) = %q, want %q", got, "x")
	}
	if got := SeverityIcon(types.ValidationWarning); got != "!" {
		t.Errorf("SeverityIcon(warning) = %q, want %q", got, "!")
	}
}
