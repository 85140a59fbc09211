package ui

import (
	"fmt"
	"strings"
)

// Progress bar cell glyphs.
const (
	barDone       = "█"
	barInProgress = "▓"
	barRemaining  = "░"
)

// RenderProgressBar draws a fixed-width bar for a roadmap node: done work
// solid, in-progress work shaded, the remainder dimmed, followed by the done
// percentage. Percentages are clamped to [0, 100] for display only.
func RenderProgressBar(progress, progressWithInProgress, width int) string {
	if width <= 0 {
		width = 20
	}
	progress = clampPct(progress)
	progressWithInProgress = clampPct(progressWithInProgress)
	if progressWithInProgress < progress {
		progressWithInProgress = progress
	}

	doneCells := progress * width / 100
	inProgCells := progressWithInProgress*width/100 - doneCells
	restCells := width - doneCells - inProgCells

	var b strings.Builder
	b.WriteString(RenderDone(strings.Repeat(barDone, doneCells)))
	b.WriteString(AccentStyle.Render(strings.Repeat(barInProgress, inProgCells)))
	b.WriteString(RenderMuted(strings.Repeat(barRemaining, restCells)))
	b.WriteString(fmt.Sprintf(" %3d%%", progress))
	return b.String()
}

func clampPct(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
