package ui

import (
	"os"

	"charm.land/glamour/v2"
	"golang.org/x/term"
)

// RenderMarkdown renders markdown for terminal display with the auto-detected
// glamour style. Colorless or redirected output gets the raw markdown back,
// as does any renderer failure.
func RenderMarkdown(markdown string) string {
	if !ShouldUseColor() {
		return markdown
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(renderWidth()),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

// renderWidth is the terminal width capped at 100 columns; wider report
// lines are hard to scan.
func renderWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	if w > 100 {
		return 100
	}
	return w
}
