package resolve

import (
	"regexp"
	"strings"
)

// StageInternal is the stage assigned to work that carries no external stage
// marker in its title.
const StageInternal = "internal"

// ResolveStage extracts a stage token from free text: the substring strictly
// between the last "(" and the last ")", lowercased. Tokens the oracle does
// not recognize as external resolve to StageInternal.
//
// The last-open/last-close pairing is deliberate and must not be replaced by
// balanced-parenthesis parsing: titles with unrelated trailing parentheses
// misparse under this heuristic, and downstream data depends on that exact
// behavior.
func ResolveStage(text string, oracle StageOracle) string {
	open := strings.LastIndex(text, "(")
	close := strings.LastIndex(text, ")")
	if open == -1 || close == -1 || close <= open {
		return StageInternal
	}
	token := strings.ToLower(text[open+1 : close])
	if oracle.IsExternalStage(token) {
		return token
	}
	return StageInternal
}

// CleanName derives a display name from a title by stripping exactly one
// occurrence of "(<stage>)" (case-insensitive) and trimming whitespace. The
// stage token is regex-escaped first, which matters for the compound
// enhancement tier rendered with a trailing "+".
func CleanName(title, stage string) string {
	if stage == "" {
		return strings.TrimSpace(title)
	}
	re, err := regexp.Compile(`(?i)\(` + regexp.QuoteMeta(stage) + `\)`)
	if err != nil {
		return strings.TrimSpace(title)
	}
	if loc := re.FindStringIndex(title); loc != nil {
		title = title[:loc[0]] + title[loc[1]:]
	}
	return strings.TrimSpace(title)
}
