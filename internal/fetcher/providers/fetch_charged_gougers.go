package providers

import (
	"context"

	"github.com/tidwall/gjson"

	"gougewatch/internal/data"
	"gougewatch/internal/fetcher"
	"gougewatch/internal/model"
	"gougewatch/internal/supabase"
)

// ChargedGougersTable is the enforcement table of charged gougers.
const ChargedGougersTable = "charged_gougers"

type chargedGougersFetcher struct{}

func (c *chargedGougersFetcher) Key() data.DatasetKey { return data.DatasetChargedGougers }

func (c *chargedGougersFetcher) Fetch(ctx context.Context, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	if err := f.Budget().Acquire(ctx); err != nil {
		return nil, err
	}

	body, resp, err := f.Client().Select(ctx, ChargedGougersTable, supabase.Query{
		Columns: []string{"name", "date_charged"},
		Order:   "date_charged.asc",
	})
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		return nil, err
	}

	// Rows without a name or a parseable charge date are dropped; they carry
	// nothing the enforcement timeline can show.
	var out []model.ChargedGouger
	gjson.ParseBytes(body).ForEach(func(_, row gjson.Result) bool {
		name := row.Get("name").String()
		if name == "" {
			return true
		}
		date, err := model.ParseDate(row.Get("date_charged").String())
		if err != nil {
			return true
		}
		out = append(out, model.ChargedGouger{Name: name, DateCharged: date})
		return true
	})
	return out, nil
}

func init() {
	fetcher.RegisterDatasetFetcher(&chargedGougersFetcher{})
}
