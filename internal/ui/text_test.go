package ui

import (
	"strings"
	"testing"
)

func TestTruncateSimple(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{
			name:   "short text unchanged",
			text:   "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exact length unchanged",
			text:   "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "long text truncated with ellipsis",
			text:   "hello world",
			maxLen: 8,
			want:   "hello...",
		},
		{
			name:   "tiny max yields bare ellipsis",
			text:   "hello",
			maxLen: 3,
			want:   "...",
		},
		{
			name:   "multibyte runes counted as one",
			text:   "héllo wörld",
			maxLen: 8,
			want:   "héllo...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateSimple(tt.text, tt.maxLen)
			if got != tt.want {
				t.Errorf("TruncateSimple(%q, %d) = %q, want %q", tt.text, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight(\"ab\", 5) = %q", got)
	}
	if got := PadRight("abcdef", 5); got != "ab..." {
		t.Errorf("PadRight(\"abcdef\", 5) = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     string
	}{
		{
			name:     "short line unchanged",
			text:     "hello world",
			maxWidth: 20,
			want:     "hello world",
		},
		{
			name:     "wraps at word boundary",
			text:     "the quick brown fox jumps",
			maxWidth: 10,
			want:     "the quick\nbrown fox\njumps",
		},
		{
			name:     "preserves existing line breaks",
			text:     "first\nsecond line here",
			maxWidth: 12,
			want:     "first\nsecond line\nhere",
		},
		{
			name:     "overlong word kept whole",
			text:     "a verylongunbreakableword b",
			maxWidth: 10,
			want:     "a\nverylongunbreakableword\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, tt.maxWidth)
			if got != tt.want {
				t.Errorf("WrapText(%q, %d) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestRenderProgressBar(t *testing.T) {
	// Styling collapses to plain text without a TTY, so assertions work on
	// glyph counts and the percent suffix.
	bar := RenderProgressBar(50, 75, 20)
	if !strings.HasSuffix(bar, " 50%") {
		t.Errorf("RenderProgressBar suffix = %q, want ' 50%%'", bar)
	}
	if got := strings.Count(bar, barDone); got != 10 {
		t.Errorf("done cells = %d, want 10", got)
	}
	if got := strings.Count(bar, barInProgress); got != 5 {
		t.Errorf("in-progress cells = %d, want 5", got)
	}
	if got := strings.Count(bar, barRemaining); got != 5 {
		t.Errorf("remaining cells = %d, want 5", got)
	}
}

func TestRenderProgressBarClamps(t *testing.T) {
	bar := RenderProgressBar(150, -10, 10)
	if !strings.HasSuffix(bar, "100%") {
		t.Errorf("clamped bar = %q, want 100%% suffix", bar)
	}
	if got := strings.Count(bar, barDone); got != 10 {
		t.Errorf("done cells = %d, want 10", got)
	}
	if strings.Contains(bar, barRemaining) {
		t.Errorf("full bar should have no remaining cells: %q", bar)
	}
}
