package jira

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/steveyegge/strata/internal/types"
)

// DecodeIssues reads a ticket snapshot: either a single JSON array or JSONL
// with one ticket per line. Blank lines are skipped.
func DecodeIssues(r io.Reader) ([]Issue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var issues []Issue
		if err := json.Unmarshal(trimmed, &issues); err != nil {
			return nil, fmt.Errorf("parsing snapshot: %w", err)
		}
		return issues, nil
	}

	var issues []Issue
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var issue Issue
		if err := json.Unmarshal([]byte(line), &issue); err != nil {
			return nil, fmt.Errorf("parsing snapshot line %d: %w", lineNo, err)
		}
		issues = append(issues, issue)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return issues, nil
}

// LoadIssues reads a ticket snapshot file.
func LoadIssues(path string) ([]Issue, error) {
	f, err := os.Open(path) // #nosec G304 - path comes from the --tickets flag
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()
	return DecodeIssues(f)
}

// LoadCatalog reads the roadmap-item reference catalog: a JSON array of
// roadmap records keyed by ticket key.
func LoadCatalog(path string) (types.Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the --catalog flag
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var records []types.RoadmapRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	catalog := make(types.Catalog, len(records))
	for _, rec := range records {
		catalog[rec.Key] = rec
	}
	return catalog, nil
}
