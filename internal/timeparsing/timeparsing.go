// Package timeparsing resolves the date expressions the --as-of flag
// accepts: compact offsets relative to now (+2w, -1d), absolute dates, and
// natural language phrases.
package timeparsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// offsetRe matches signed count-plus-unit offsets: +6h, -1d, 2w, 3m, 1y.
// No sign means forward.
var offsetRe = regexp.MustCompile(`^([+-]?)(\d+)([hdwmy])$`)

var nlp = func() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}()

// ParseRelativeTime resolves a date/time expression relative to now. Layers
// are tried in order: compact offset, absolute date (date-only in now's
// location, then RFC3339), natural language ("tomorrow", "next monday").
// Absolute formats come before natural language so a date string can never
// be reinterpreted by the heuristic layer.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time expression")
	}

	if t, ok := applyOffset(s, now); ok {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if r, err := nlp.Parse(s, now); err == nil && r != nil {
		return r.Time, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time expression: %q", s)
}

// applyOffset moves now by a compact offset. Hours go through Add; the
// calendar units go through AddDate, so month-end offsets normalize the way
// the time package does.
func applyOffset(s string, now time.Time) (time.Time, bool) {
	m := offsetRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	n, _ := strconv.Atoi(m[2])
	if m[1] == "-" {
		n = -n
	}
	switch m[3] {
	case "h":
		return now.Add(time.Duration(n) * time.Hour), true
	case "d":
		return now.AddDate(0, 0, n), true
	case "w":
		return now.AddDate(0, 0, 7*n), true
	case "m":
		return now.AddDate(0, n, 0), true
	default: // y
		return now.AddDate(n, 0, 0), true
	}
}
