package providers

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"gougewatch/internal/data"
	"gougewatch/internal/fetcher"
	"gougewatch/internal/supabase"
)

type regionMetricsFetcher struct{}

func (r *regionMetricsFetcher) Key() data.DatasetKey { return data.DatasetRegionMetrics }

// Fetch reads per-region metric rows (id column, ever_gouged_listings, geom)
// and returns the raw JSON row array for the geo package to assemble into a
// FeatureCollection.
func (r *regionMetricsFetcher) Fetch(ctx context.Context, params map[string]string, f *fetcher.Fetcher) (any, error) {
	table := params["table"]
	if table == "" {
		return nil, fmt.Errorf("%s: missing required param: table", data.DatasetRegionMetrics)
	}
	idColumn := params["id_column"]
	if idColumn == "" {
		return nil, fmt.Errorf("%s: missing required param: id_column", data.DatasetRegionMetrics)
	}

	if err := f.Budget().Acquire(ctx); err != nil {
		return nil, err
	}

	body, resp, err := f.Client().Select(ctx, table, supabase.Query{})
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		return nil, err
	}

	rows := gjson.ParseBytes(body)
	if !rows.IsArray() {
		return nil, fmt.Errorf("%s: expected a row array", table)
	}
	return body, nil
}

func init() {
	fetcher.RegisterDatasetFetcher(&regionMetricsFetcher{})
}
