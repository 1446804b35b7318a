package render

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gougewatch/internal/sections"
)

// reportTopRegions caps how many ranked regions a map section contributes to
// the Markdown report.
const reportTopRegions = 10

// ReportSink accumulates fragments and writes a Markdown summary on Close.
type ReportSink struct {
	path         string
	file         *os.File
	mu           sync.Mutex
	runID        string
	fragments    []sections.Fragment
	exitCode     int
	haveExitCode bool
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{
		path: path,
		file: f,
	}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case sections.Fragment:
		s.fragments = append(s.fragments, t)
	case Event:
		if t.RunID != "" {
			s.runID = t.RunID
		}
		if t.Type == "run.finished" {
			s.exitCode = t.ExitCode
			s.haveExitCode = true
		}
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("# Rent Gouging Dashboard\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().UTC().Format(time.RFC3339))
	if s.runID != "" {
		fmt.Fprintf(&b, "Run ID: `%s`\n\n", s.runID)
	}
	if s.haveExitCode {
		fmt.Fprintf(&b, "Exit code: %d\n\n", s.exitCode)
	}

	// Section status overview.
	b.WriteString("## Sections\n\n")
	b.WriteString("| Section | Status |\n|---|---|\n")
	for _, f := range s.fragments {
		fmt.Fprintf(&b, "| %s | %s |\n", f.Title, f.Status)
	}
	b.WriteString("\n")

	for _, f := range s.fragments {
		if f.Status != sections.StatusOK {
			fmt.Fprintf(&b, "## %s\n\n%s: %s\n\n", f.Title, f.Status, f.Message)
			continue
		}
		if len(f.Metrics) == 0 && f.Map == nil && f.Chart == nil {
			continue
		}

		fmt.Fprintf(&b, "## %s\n\n", f.Title)
		for _, m := range f.Metrics {
			if m.Delta != "" {
				fmt.Fprintf(&b, "- **%s**: %s (%s)\n", m.Label, m.Value, m.Delta)
			} else {
				fmt.Fprintf(&b, "- **%s**: %s\n", m.Label, m.Value)
			}
		}
		if len(f.Metrics) > 0 {
			b.WriteString("\n")
		}

		if f.Chart != nil && len(f.Chart.Points) > 0 {
			first := f.Chart.Points[0]
			last := f.Chart.Points[len(f.Chart.Points)-1]
			fmt.Fprintf(&b, "%s: %d on %s, %d on %s.\n\n",
				f.Chart.Label,
				first.Value, first.Date.Format("2006-01-02"),
				last.Value, last.Date.Format("2006-01-02"))
		}

		if f.Map != nil && f.Table != nil {
			fmt.Fprintf(&b, "Top regions by gouged listings:\n\n")
			fmt.Fprintf(&b, "| %s |\n|%s|\n", strings.Join(f.Table.Columns, " | "), strings.Repeat("---|", len(f.Table.Columns)))
			for i, row := range f.Table.Rows {
				if i >= reportTopRegions {
					break
				}
				fmt.Fprintf(&b, "| %s |\n", strings.Join(row, " | "))
			}
			b.WriteString("\n")
		}
	}

	if _, err := s.file.WriteString(b.String()); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}
