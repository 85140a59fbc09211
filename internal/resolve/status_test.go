package resolve

import (
	"testing"
	"time"

	"github.com/steveyegge/strata/internal/types"
)

type fakeStatusMapper map[string]types.Status

func (f fakeStatusMapper) StatusFor(id string) types.Status {
	if s, ok := f[id]; ok {
		return s
	}
	return types.StatusTodo
}

func cycleStarting(day int) *types.Cycle {
	return &types.Cycle{
		ID:    "c",
		Start: time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestResolveStatus(t *testing.T) {
	mapping := fakeStatusMapper{"2": types.StatusInProgress, "3": types.StatusDone}

	tests := []struct {
		name      string
		statusID  string
		reference *types.Cycle
		assigned  *types.Cycle
		want      types.Status
	}{
		{"mapped status", "2", nil, nil, types.StatusInProgress},
		{"unmapped defaults to todo", "42", nil, nil, types.StatusTodo},
		{"later cycle overrides to postponed", "3", cycleStarting(1), cycleStarting(15), types.StatusPostponed},
		{"earlier cycle keeps mapped status", "3", cycleStarting(15), cycleStarting(1), types.StatusDone},
		// Strict <: equal start dates do not trigger the override.
		{"equal start keeps mapped status", "3", cycleStarting(1), cycleStarting(1), types.StatusDone},
		{"no assigned cycle keeps mapped status", "3", cycleStarting(1), nil, types.StatusDone},
		{"no reference cycle keeps mapped status", "3", nil, cycleStarting(15), types.StatusDone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveStatus(tt.statusID, tt.reference, tt.assigned, mapping); got != tt.want {
				t.Errorf("ResolveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
