package providers

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"gougewatch/internal/data"
	"gougewatch/internal/fetcher"
	"gougewatch/internal/supabase"
)

type regionGeoJSONFetcher struct{}

func (r *regionGeoJSONFetcher) Key() data.DatasetKey { return data.DatasetRegionGeoJSON }

// Fetch reads the single-row geojson table for one region layer and returns the
// raw FeatureCollection bytes stored in its "geojson" column.
func (r *regionGeoJSONFetcher) Fetch(ctx context.Context, params map[string]string, f *fetcher.Fetcher) (any, error) {
	table := params["table"]
	if table == "" {
		return nil, fmt.Errorf("%s: missing required param: table", data.DatasetRegionGeoJSON)
	}

	if err := f.Budget().Acquire(ctx); err != nil {
		return nil, err
	}

	body, resp, err := f.Client().Select(ctx, table, supabase.Query{
		Columns: []string{"geojson"},
		Limit:   1,
	})
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		return nil, err
	}

	doc := gjson.GetBytes(body, "0.geojson")
	if !doc.Exists() {
		return nil, fmt.Errorf("%s: no geojson row", table)
	}
	if doc.Get("type").String() != "FeatureCollection" {
		return nil, fmt.Errorf("%s: geojson column is not a FeatureCollection", table)
	}
	return []byte(doc.Raw), nil
}

func init() {
	fetcher.RegisterDatasetFetcher(&regionGeoJSONFetcher{})
}
