package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"gougewatch/internal/sections"
)

// maxConsoleBarWidth is the widest bar drawn for text-mode charts.
const maxConsoleBarWidth = 50

// consoleChartRows is how many timeline rows text mode keeps after downsampling.
const consoleChartRows = 20

type ConsoleSink struct {
	writer    io.Writer
	format    string // "text", "json", "ndjson"
	mu        sync.Mutex
	fragments []sections.Fragment // For JSON array output
}

func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}
	return &ConsoleSink{
		writer: w,
		format: format,
	}
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	switch s.format {
	case "json":
		f, ok := v.(sections.Fragment)
		if !ok {
			// Ignore lifecycle events in JSON console mode.
			return nil
		}
		s.fragments = append(s.fragments, f)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case sections.Fragment:
			e := eventFromFragment(t)
			if err := encoder.Encode(e); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		f, ok := v.(sections.Fragment)
		if !ok {
			// Ignore events in text mode.
			return nil
		}
		if err := s.writeText(f); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) writeText(f sections.Fragment) error {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	bold.Fprintf(s.writer, "== %s ==\n", f.Title)

	if f.Status != sections.StatusOK {
		red.Fprintf(s.writer, "[%s]", f.Status)
		if f.Message != "" {
			fmt.Fprintf(s.writer, " %s", f.Message)
		}
		fmt.Fprintln(s.writer)
		fmt.Fprintln(s.writer)
		return nil
	}

	for _, m := range f.Metrics {
		fmt.Fprintf(s.writer, "%s: %s", m.Label, m.Value)
		if m.Delta != "" {
			fmt.Fprint(s.writer, " (")
			green.Fprint(s.writer, m.Delta)
			fmt.Fprint(s.writer, ")")
		}
		fmt.Fprintln(s.writer)
	}

	if f.Chart != nil {
		writeTextChart(s.writer, f.Chart)
	}

	if f.Map != nil {
		fmt.Fprintf(s.writer, "Layer %s centered at %.2f, %.2f (zoom %.0f); use --html for the interactive map.\n",
			f.Map.Label, f.Map.Center[0], f.Map.Center[1], f.Map.Zoom)
	}

	if f.Table != nil {
		writeTextTable(s.writer, f.Table)
	}

	fmt.Fprintln(s.writer)
	return nil
}

func writeTextTable(w io.Writer, t *sections.Table) {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len(c)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		parts := make([]string, 0, len(cells))
		for i, cell := range cells {
			if i < len(widths) {
				parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	writeRow(t.Columns)
	sep := make([]string, len(t.Columns))
	for i := range sep {
		sep[i] = strings.Repeat("-", widths[i])
	}
	writeRow(sep)
	for _, row := range t.Rows {
		writeRow(row)
	}
}

func writeTextChart(w io.Writer, c *sections.Chart) {
	points := c.Points
	if len(points) == 0 {
		return
	}

	// Downsample so long histories stay readable.
	if len(points) > consoleChartRows {
		sampled := make([]sections.ChartPoint, 0, consoleChartRows)
		for i := 0; i < consoleChartRows; i++ {
			sampled = append(sampled, points[i*(len(points)-1)/(consoleChartRows-1)])
		}
		points = sampled
	}

	maxVal := 0
	for _, p := range points {
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	for _, p := range points {
		bar := strings.Repeat("#", p.Value*maxConsoleBarWidth/maxVal)
		fmt.Fprintf(w, "%s %6d %s\n", p.Date.Format("2006-01-02"), p.Value, bar)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.fragments); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
