package widgets

import (
	"context"
	"fmt"

	"gougewatch/internal/data"
	"gougewatch/internal/geo"
	"gougewatch/internal/layers"
	"gougewatch/internal/sections"
	"gougewatch/internal/tabular"
)

// choroplethClasses is the number of fill classes on map layers.
const choroplethClasses = 6

// MapLayerSection is a choropleth section for one configured map layer.
// Unlike the static sections, these are constructed from layer config at
// runtime rather than registered in init.
type MapLayerSection struct {
	Layer layers.Layer
}

func NewMapLayerSection(l layers.Layer) *MapLayerSection {
	return &MapLayerSection{Layer: l}
}

func (s *MapLayerSection) ID() string    { return "map-" + s.Layer.ID }
func (s *MapLayerSection) Title() string { return "Map: " + s.Layer.Label }
func (s *MapLayerSection) Description() string {
	return fmt.Sprintf("Choropleth of gouged listings by %s, with a ranked region table.", s.Layer.Label)
}

func (s *MapLayerSection) request() data.DatasetRequest {
	if s.Layer.MetricsTable != "" {
		return data.DatasetRequest{
			Key: data.DatasetRegionMetrics,
			Params: map[string]string{
				"table":     s.Layer.MetricsTable,
				"id_column": s.Layer.IDColumn,
			},
		}
	}
	return data.DatasetRequest{
		Key:    data.DatasetRegionGeoJSON,
		Params: map[string]string{"table": s.Layer.GeoJSONTable},
	}
}

func (s *MapLayerSection) Dependencies(_ context.Context) ([]data.DatasetRequest, error) {
	return []data.DatasetRequest{s.request()}, nil
}

func (s *MapLayerSection) Build(_ context.Context, dc data.DataContext) (sections.Fragment, error) {
	raw, err := datasetAs[[]byte](dc, s.request())
	if err != nil {
		return sections.Fragment{}, err
	}

	fc := raw
	labelProp, metricProp := geo.PropRegion, geo.PropGougedListings
	if s.Layer.MetricsTable != "" {
		fc, err = geo.FeatureCollection(raw, s.Layer.IDColumn)
		if err != nil {
			return sections.Fragment{}, fmt.Errorf("%s: %w", s.Layer.MetricsTable, err)
		}
		labelProp, metricProp = geo.PropDistrictID, geo.PropEverGouged
	}

	breaks := geo.QuantileBreaks(geo.MetricValues(fc, metricProp), choroplethClasses)

	ranked := geo.LayerTable(fc, labelProp, metricProp, s.Layer.GroupRegions)
	table := &sections.Table{
		Columns: []string{s.Layer.LabelColumn, "Gouged Listings"},
		Height:  tabular.TableHeight(len(ranked)),
	}
	for _, r := range ranked {
		table.Rows = append(table.Rows, []string{r.Region, countWithCommas(r.Count)})
	}

	return sections.Fragment{
		Status: sections.StatusOK,
		Map: &sections.MapSpec{
			LayerID:           s.Layer.ID,
			Label:             s.Layer.Label,
			LabelColumn:       s.Layer.LabelColumn,
			Center:            s.Layer.Center,
			Zoom:              s.Layer.Zoom,
			FeatureCollection: fc,
			LabelProperty:     labelProp,
			MetricProperty:    metricProp,
			Breaks:            breaks,
			Legend:            "Ever Gouged Listings",
		},
		Table: table,
	}, nil
}
