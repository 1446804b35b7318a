package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gougewatch/internal/sections"
)

func TestFileSink_JSONAggregate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	_ = s.Write(Event{Type: "run.started", RunID: "r1"})
	_ = s.Write(sampleFragment())
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []sections.Fragment
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, raw)
	}
	if len(got) != 1 || got[0].SectionID != "headline-metrics" {
		t.Fatalf("fragments = %+v", got)
	}
}

func TestFileSink_NDJSONStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	_ = s.Write(Event{Type: "run.started", RunID: "r1"})
	_ = s.Write(sampleFragment())
	_ = s.Write(Event{Type: "run.finished", RunID: "r1", ExitCode: 2})
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines:\n%s", raw)
	}

	var last Event
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatal(err)
	}
	if last.Type != "run.finished" || last.ExitCode != 2 {
		t.Errorf("last event = %+v", last)
	}
}

func TestFileSink_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.jsonl")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}

func TestFileSink_FormatValidation(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewFileSink("", ""); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := NewFileSink(filepath.Join(dir, "out.xml"), ""); err == nil {
		t.Error("expected error for uninferrable extension")
	}
	if _, err := NewFileSink(filepath.Join(dir, "out.json"), "yaml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestEmitSink_Validation(t *testing.T) {
	if _, err := NewEmitSink(nil, "json"); err == nil {
		t.Error("expected error for nil writer")
	}
	if _, err := NewEmitSink(os.Stdout, "yaml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
