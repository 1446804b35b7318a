package layers

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Layer is one selectable map layer.
//
// A layer is backed either by a prebuilt single-row geojson table
// (GeoJSONTable) or by per-region metric rows carrying raw geometry
// (MetricsTable + IDColumn). Exactly one of the two must be set.
type Layer struct {
	ID           string     `yaml:"id"`
	Label        string     `yaml:"label"`
	LabelColumn  string     `yaml:"label_column"`
	GeoJSONTable string     `yaml:"geojson_table"`
	MetricsTable string     `yaml:"metrics_table"`
	IDColumn     string     `yaml:"id_column"`
	Center       [2]float64 `yaml:"center"`
	Zoom         float64    `yaml:"zoom"`
	// GroupRegions merges features sharing a (title-cased) region name in the
	// side table. Used by the cities layer, whose source splits some cities
	// across multiple features.
	GroupRegions bool `yaml:"group_regions"`
}

type layersFile struct {
	Layers []Layer `yaml:"layers"`
}

// Defaults is the built-in LA County layer set.
func Defaults() []Layer {
	return []Layer{
		{
			ID:           "supervisor-districts",
			Label:        "Supervisor Districts",
			LabelColumn:  "District",
			GeoJSONTable: "supervisor_geojson",
			Center:       [2]float64{34.32, -118.26},
			Zoom:         9,
		},
		{
			ID:           "council-districts",
			Label:        "Council Districts",
			LabelColumn:  "District",
			GeoJSONTable: "council_geojson",
			Center:       [2]float64{34.05, -118.4},
			Zoom:         10,
		},
		{
			ID:           "zip-codes",
			Label:        "ZIP Codes",
			LabelColumn:  "ZIP Code",
			GeoJSONTable: "zipcode_geojson",
			Center:       [2]float64{34.32, -118.26},
			Zoom:         9,
		},
		{
			ID:           "cities",
			Label:        "Cities",
			LabelColumn:  "City",
			GeoJSONTable: "city_geojson",
			Center:       [2]float64{34.32, -118.26},
			Zoom:         9,
			GroupRegions: true,
		},
	}
}

// Load returns the layer set: the built-in defaults, or the contents of the
// given YAML file when path is non-empty.
func Load(path string) ([]Layer, error) {
	if strings.TrimSpace(path) == "" {
		return Defaults(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layers file: %w", err)
	}

	var f layersFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse layers file %s: %w", path, err)
	}
	if len(f.Layers) == 0 {
		return nil, fmt.Errorf("layers file %s defines no layers", path)
	}

	for i := range f.Layers {
		if err := validate(&f.Layers[i]); err != nil {
			return nil, fmt.Errorf("layers file %s: layer %d: %w", path, i, err)
		}
	}
	return f.Layers, nil
}

func validate(l *Layer) error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if l.Label == "" {
		l.Label = l.ID
	}
	if l.LabelColumn == "" {
		l.LabelColumn = "Region"
	}
	hasGeoJSON := l.GeoJSONTable != ""
	hasMetrics := l.MetricsTable != ""
	if hasGeoJSON == hasMetrics {
		return fmt.Errorf("exactly one of geojson_table or metrics_table must be set")
	}
	if hasMetrics && l.IDColumn == "" {
		return fmt.Errorf("id_column is required with metrics_table")
	}
	if l.Center[0] < -90 || l.Center[0] > 90 || l.Center[1] < -180 || l.Center[1] > 180 {
		return fmt.Errorf("center %v is not a lat/lon pair", l.Center)
	}
	if l.Zoom == 0 {
		l.Zoom = 9
	}
	return nil
}
