package jira

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeIssuesArray(t *testing.T) {
	input := `[
		{"key": "P-1", "fields": {"summary": "One", "status": {"id": "2"}, "labels": ["area:fe"], "effort": 1.5}},
		{"key": "P-2", "fields": {"summary": "Two", "status": {"id": "3"}, "parent": {"key": "ROAD-1"}}}
	]`
	issues, err := DecodeIssues(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeIssues: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("len = %d, want 2", len(issues))
	}
	if issues[0].Key != "P-1" || issues[0].Fields.Summary != "One" {
		t.Errorf("issue 0 = %+v", issues[0])
	}
	if issues[0].Fields.Effort == nil || *issues[0].Fields.Effort != 1.5 {
		t.Errorf("effort = %v, want 1.5", issues[0].Fields.Effort)
	}
	if issues[1].Fields.Effort != nil {
		t.Errorf("absent effort should decode to nil, got %v", *issues[1].Fields.Effort)
	}
	if issues[1].ParentKey() != "ROAD-1" {
		t.Errorf("ParentKey = %q", issues[1].ParentKey())
	}
}

func TestDecodeIssuesJSONL(t *testing.T) {
	input := `{"key": "P-1", "fields": {"summary": "One", "status": {"id": "1"}}}

{"key": "P-2", "fields": {"summary": "Two", "status": {"id": "1"}, "sprint": {"id": "2026-q1"}}}
`
	issues, err := DecodeIssues(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeIssues: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("len = %d, want 2", len(issues))
	}
	if issues[1].CycleID() != "2026-q1" {
		t.Errorf("CycleID = %q", issues[1].CycleID())
	}
	if issues[0].CycleID() != "" {
		t.Errorf("CycleID without sprint = %q, want empty", issues[0].CycleID())
	}
}

func TestDecodeIssuesEmpty(t *testing.T) {
	issues, err := DecodeIssues(strings.NewReader("  \n "))
	if err != nil {
		t.Fatalf("DecodeIssues: %v", err)
	}
	if issues != nil {
		t.Errorf("issues = %v, want nil", issues)
	}
}

func TestDecodeIssuesMalformedLine(t *testing.T) {
	input := "{\"key\": \"P-1\", \"fields\": {}}\nnot json\n"
	if _, err := DecodeIssues(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for malformed line")
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	content := `[
		{"key": "ROAD-1", "name": "Checkout", "labels": ["theme:plat", "initiative:growth"], "isExternal": true},
		{"key": "ROAD-2", "name": "Search"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("len = %d, want 2", len(catalog))
	}
	rec, ok := catalog["ROAD-1"]
	if !ok || rec.Name != "Checkout" || !rec.IsExternal {
		t.Errorf("ROAD-1 = %+v", rec)
	}
}
