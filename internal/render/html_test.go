package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gougewatch/internal/sections"
)

func TestHTMLSink_WritesDashboardPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.html")
	s, err := NewHTMLSink(path)
	if err != nil {
		t.Fatalf("NewHTMLSink: %v", err)
	}

	fc := json.RawMessage(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"region":"Burbank","gouged_listings":8}}]}`)

	_ = s.Write(sampleFragment())
	_ = s.Write(sections.Fragment{
		SectionID: "gouged-timeline",
		Title:     "Rent-Gouged Listings Over Time",
		Status:    sections.StatusOK,
		Chart: &sections.Chart{
			Label: "Total Gouged Listings",
			Points: []sections.ChartPoint{
				{Date: day("2025-01-10"), Value: 10},
				{Date: day("2025-02-10"), Value: 40},
			},
		},
	})
	_ = s.Write(sections.Fragment{
		SectionID: "map-cities",
		Title:     "Map: Cities",
		Status:    sections.StatusOK,
		Map: &sections.MapSpec{
			LayerID:           "cities",
			Label:             "Cities",
			LabelColumn:       "City",
			Center:            [2]float64{34.32, -118.26},
			Zoom:              9,
			FeatureCollection: fc,
			LabelProperty:     "region",
			MetricProperty:    "gouged_listings",
			Breaks:            []float64{0, 1, 2, 3, 4, 6, 8},
			Legend:            "Ever Gouged Listings",
		},
		Table: &sections.Table{
			Columns: []string{"City", "Gouged Listings"},
			Rows:    [][]string{{"Burbank", "8"}},
			Height:  200,
		},
	})
	_ = s.Write(sections.Fragment{
		SectionID: "enforcement",
		Title:     "Enforcement",
		Status:    sections.StatusError,
		Message:   "upstream down",
	})

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(raw)

	for _, want := range []string{
		"<title>Rent Gouging in Los Angeles County</title>",
		"leaflet@1.9.4",
		"Total Gouged Listings",
		"<polyline",
		`id="map-cities"`,
		`"element_id":"map-cities"`,
		`"gouged_listings"`,
		"#fef0d9",
		"basemaps.cartocdn.com",
		"[ERROR] upstream down",
		"<td>Burbank</td>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}

	// First chart point (value 10 of max 40) sits at the left axis.
	if !strings.Contains(out, `points="40.0,205.0`) {
		t.Error("chart polyline should start at the left axis")
	}
}

func TestHTMLSink_RequiresPath(t *testing.T) {
	if _, err := NewHTMLSink(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestChartPolyline(t *testing.T) {
	c := &sections.Chart{Points: []sections.ChartPoint{
		{Date: day("2025-01-10"), Value: 0},
		{Date: day("2025-01-20"), Value: 100},
	}}

	points, yMax := chartPolyline(c)
	if yMax != 100 {
		t.Errorf("yMax = %d", yMax)
	}
	if points != "40.0,260.0 860.0,40.0" {
		t.Errorf("points = %q", points)
	}
}
