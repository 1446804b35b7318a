package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gougewatch/internal/sections"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleFragment() sections.Fragment {
	return sections.Fragment{
		SectionID: "headline-metrics",
		Title:     "Rent Gouging in Los Angeles County",
		Status:    sections.StatusOK,
		Metrics: []sections.Metric{
			{Label: "Total Gouged Listings", Value: "2,000"},
			{Label: "Total Listings Gouged in Last 7 Days", Value: "500", Delta: "25.0% increase"},
		},
	}
}

func TestConsoleSink_Text(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "text")

	if err := s.Write(sampleFragment()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"== Rent Gouging in Los Angeles County ==",
		"Total Gouged Listings: 2,000",
		"Total Listings Gouged in Last 7 Days: 500 (25.0% increase)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleSink_Text_ErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "text")

	_ = s.Write(sections.Fragment{
		SectionID: "enforcement",
		Title:     "Enforcement",
		Status:    sections.StatusError,
		Message:   "Missing datasets: [dataset.charged_gougers]",
	})

	out := buf.String()
	if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "Missing datasets") {
		t.Errorf("output = %s", out)
	}
}

func TestConsoleSink_Text_Table(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "text")

	_ = s.Write(sections.Fragment{
		Title:  "Map: Cities",
		Status: sections.StatusOK,
		Table: &sections.Table{
			Columns: []string{"City", "Gouged Listings"},
			Rows:    [][]string{{"Los Angeles", "15"}, {"Burbank", "8"}},
		},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// Header, separator, two rows (after the title line).
	if len(lines) < 5 {
		t.Fatalf("output too short:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[1], "City") {
		t.Errorf("header line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "----") {
		t.Errorf("separator line = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "Los Angeles") {
		t.Errorf("first row = %q", lines[3])
	}
}

func TestConsoleSink_Text_ChartAndMapNote(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "text")

	_ = s.Write(sections.Fragment{
		Title:  "Rent-Gouged Listings Over Time",
		Status: sections.StatusOK,
		Chart: &sections.Chart{
			Label: "Total Gouged Listings",
			Points: []sections.ChartPoint{
				{Date: day("2025-01-10"), Value: 10},
				{Date: day("2025-01-11"), Value: 20},
			},
		},
	})
	_ = s.Write(sections.Fragment{
		Title:  "Map: Cities",
		Status: sections.StatusOK,
		Map: &sections.MapSpec{
			Label:  "Cities",
			Center: [2]float64{34.32, -118.26},
			Zoom:   9,
		},
	})

	out := buf.String()
	if !strings.Contains(out, "2025-01-11     20 "+strings.Repeat("#", 50)) {
		t.Errorf("chart bar missing:\n%s", out)
	}
	if !strings.Contains(out, "use --html for the interactive map") {
		t.Errorf("map note missing:\n%s", out)
	}
}

func TestConsoleSink_JSONAggregatesOnClose(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "json")

	_ = s.Write(Event{Type: "run.started", RunID: "r1"})
	_ = s.Write(sampleFragment())
	if buf.Len() != 0 {
		t.Fatalf("json mode should buffer until Close, wrote: %s", buf.String())
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var got []sections.Fragment
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if len(got) != 1 || got[0].SectionID != "headline-metrics" {
		t.Fatalf("fragments = %+v", got)
	}
}

func TestConsoleSink_NDJSONStreamsEvents(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "ndjson")

	_ = s.Write(Event{Type: "run.started", RunID: "r1", Sections: 2, Datasets: 3})
	_ = s.Write(sampleFragment())
	_ = s.Write(Event{Type: "run.finished", RunID: "r1", ExitCode: 0})
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}

	var first Event
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 0: %v", err)
	}
	if first.Type != "run.started" || first.Sections != 2 {
		t.Errorf("first event = %+v", first)
	}

	var second Event
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("line 1: %v", err)
	}
	if second.Type != "section.rendered" || second.Fragment == nil || second.Fragment.SectionID != "headline-metrics" {
		t.Errorf("second event = %+v", second)
	}
}

func TestConsoleSink_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "yaml")
	if err := s.Write(sampleFragment()); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestManager_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := NewManager()
	if err := m.AddSink(NewConsoleSink(&a, "ndjson")); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSink(NewConsoleSink(&b, "ndjson")); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSink(nil); err == nil {
		t.Error("expected error adding nil sink")
	}

	if err := m.Write(sampleFragment()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if a.String() != b.String() || a.Len() == 0 {
		t.Errorf("sinks diverged:\n%s\n%s", a.String(), b.String())
	}
}
