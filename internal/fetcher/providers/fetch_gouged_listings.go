package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"gougewatch/internal/data"
	"gougewatch/internal/fetcher"
	"gougewatch/internal/model"
	"gougewatch/internal/supabase"
)

// DefaultListingsTable is the gouged listings table name. Overridable via the
// listings section's "table" option.
const DefaultListingsTable = "gouges"

type gougedListingsFetcher struct{}

func (g *gougedListingsFetcher) Key() data.DatasetKey { return data.DatasetGougedListings }

func (g *gougedListingsFetcher) Fetch(ctx context.Context, params map[string]string, f *fetcher.Fetcher) (any, error) {
	table := params["table"]
	if table == "" {
		table = DefaultListingsTable
	}

	if err := f.Budget().Acquire(ctx); err != nil {
		return nil, err
	}

	body, resp, err := f.Client().Select(ctx, table, supabase.Query{
		Order: "first_gouged_date.asc",
		Limit: f.RowLimit(),
	})
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		return nil, err
	}

	var listings []model.Listing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("%s: decode rows: %w", table, err)
	}
	return listings, nil
}

func init() {
	fetcher.RegisterDatasetFetcher(&gougedListingsFetcher{})
}
