package providers

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"gougewatch/internal/data"
	"gougewatch/internal/fetcher"
	"gougewatch/internal/model"
	"gougewatch/internal/supabase"
)

// AggByDateTable is the per-day aggregates table maintained by the scraper side.
const AggByDateTable = "agg_by_date"

type gougedByDateFetcher struct{}

func (g *gougedByDateFetcher) Key() data.DatasetKey { return data.DatasetGougedByDate }

func (g *gougedByDateFetcher) Fetch(ctx context.Context, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	if err := f.Budget().Acquire(ctx); err != nil {
		return nil, err
	}

	body, resp, err := f.Client().Select(ctx, AggByDateTable, supabase.Query{
		Columns: []string{"first_gouged_price_date", "gouged_listings", "total_dollars_gouged", "cumulative_count"},
		Order:   "first_gouged_price_date.asc",
	})
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		return nil, err
	}

	var out []model.GougedByDate
	var parseErr error
	gjson.ParseBytes(body).ForEach(func(_, row gjson.Result) bool {
		date, err := model.ParseDate(row.Get("first_gouged_price_date").String())
		if err != nil {
			parseErr = fmt.Errorf("%s: %w", AggByDateTable, err)
			return false
		}
		out = append(out, model.GougedByDate{
			Date:               date,
			GougedListings:     int(row.Get("gouged_listings").Int()),
			TotalDollarsGouged: row.Get("total_dollars_gouged").Float(),
			CumulativeCount:    int(row.Get("cumulative_count").Int()),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}

func init() {
	fetcher.RegisterDatasetFetcher(&gougedByDateFetcher{})
}
