package sections

import (
	"encoding/json"
	"time"
)

type Status string

const (
	StatusOK      Status = "OK"
	StatusError   Status = "ERROR"
	StatusSkipped Status = "SKIPPED"
)

// Fragment is one rendered dashboard section. Sinks decide how to draw it;
// at most one of Table/Chart/Map is set alongside optional headline Metrics.
type Fragment struct {
	SectionID string   `json:"section_id"`
	Title     string   `json:"title"`
	Status    Status   `json:"status"`
	Message   string   `json:"message,omitempty"`
	Metrics   []Metric `json:"metrics,omitempty"`
	Table     *Table   `json:"table,omitempty"`
	Chart     *Chart   `json:"chart,omitempty"`
	Map       *MapSpec `json:"map,omitempty"`
}

// Metric is a single headline number with an optional delta annotation.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// Table is a rendered table: column names plus stringified cell rows.
// Height is the suggested pixel height for HTML rendering.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Height  int        `json:"height,omitempty"`
}

type ChartPoint struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// Chart is a single-series timeline.
type Chart struct {
	Label  string       `json:"label"`
	Points []ChartPoint `json:"points"`
}

// MapSpec is a choropleth layer: the assembled FeatureCollection plus the
// class breaks and property names sinks need to style and label it.
type MapSpec struct {
	LayerID           string          `json:"layer_id"`
	Label             string          `json:"label"`
	LabelColumn       string          `json:"label_column"`
	Center            [2]float64      `json:"center"`
	Zoom              float64         `json:"zoom"`
	FeatureCollection json.RawMessage `json:"feature_collection"`
	LabelProperty     string          `json:"label_property"`
	MetricProperty    string          `json:"metric_property"`
	Breaks            []float64       `json:"breaks,omitempty"`
	Legend            string          `json:"legend"`
}
