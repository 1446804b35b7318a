package widgets

import (
	"context"
	"fmt"

	"gougewatch/internal/data"
	"gougewatch/internal/fetcher/providers"
	"gougewatch/internal/model"
	"gougewatch/internal/sections"
	"gougewatch/internal/tabular"
)

type listingsTableSection struct {
	table string
}

func (s *listingsTableSection) ID() string    { return "listings-table" }
func (s *listingsTableSection) Title() string { return "Gouged Listings" }
func (s *listingsTableSection) Description() string {
	return "Every gouged listing with its link, address, type, base price, current price, and percent increase."
}

func (s *listingsTableSection) Options() []sections.Option {
	return []sections.Option{
		{Name: "table", Description: "Source table for gouged listings", Default: providers.DefaultListingsTable},
	}
}

func (s *listingsTableSection) Configure(opts map[string]string) error {
	if t, ok := opts["table"]; ok {
		if t == "" {
			return fmt.Errorf("option table must not be empty")
		}
		s.table = t
	}
	return nil
}

func (s *listingsTableSection) request() data.DatasetRequest {
	table := s.table
	if table == "" {
		table = providers.DefaultListingsTable
	}
	return data.DatasetRequest{Key: data.DatasetGougedListings, Params: map[string]string{"table": table}}
}

func (s *listingsTableSection) Dependencies(_ context.Context) ([]data.DatasetRequest, error) {
	return []data.DatasetRequest{s.request()}, nil
}

func (s *listingsTableSection) Build(_ context.Context, dc data.DataContext) (sections.Fragment, error) {
	listings, err := datasetAs[[]model.Listing](dc, s.request())
	if err != nil {
		return sections.Fragment{}, err
	}

	// Display columns only, with the city folded into the address column.
	var cols []tabular.Column
	for _, c := range tabular.ListingColumns() {
		if c.Display && c.Key != "city" {
			cols = append(cols, c)
		}
	}

	table := &sections.Table{Height: tabular.TableHeight(len(listings))}
	for _, c := range cols {
		table.Columns = append(table.Columns, c.Name)
	}
	for _, l := range listings {
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			row = append(row, listingCell(l, c))
		}
		table.Rows = append(table.Rows, row)
	}

	return sections.Fragment{
		Status: sections.StatusOK,
		Table:  table,
	}, nil
}

func listingCell(l model.Listing, c tabular.Column) string {
	switch c.Key {
	case "listing_url":
		return l.ListingURL
	case "address":
		return tabular.CombineAddress(l.Address, l.City)
	case "zipcode":
		return l.Zipcode
	case "bedrooms":
		return tabular.FormatNumber(l.Bedrooms, c.Format, c.Key)
	case "home_type":
		return tabular.FormatText(l.HomeType, c.Format)
	case "fair_market_rent":
		return tabular.FormatNumber(l.FairMarketRent, c.Format, c.Key)
	case "base_price":
		return tabular.FormatNumber(l.BasePrice, c.Format, c.Key)
	case "max_legal_rent":
		return tabular.FormatNumber(l.MaxLegalRent, c.Format, c.Key)
	case "base_price_date":
		return tabular.FormatText(l.BasePriceDate, c.Format)
	case "emergency_peak_price":
		return tabular.FormatNumber(l.EmergencyPeakPrice, c.Format, c.Key)
	case "emergency_peak_price_date":
		return tabular.FormatText(l.EmergencyPeakPriceDate, c.Format)
	case "latest_price":
		return tabular.FormatNumber(l.LatestPrice, c.Format, c.Key)
	case "latest_price_date":
		return tabular.FormatText(l.LatestPriceDate, c.Format)
	case "peak_price_vs_fmr":
		return tabular.FormatNumber(l.PeakPriceVsFMR, c.Format, c.Key)
	case "base_vs_peak_price":
		return tabular.FormatNumber(l.BaseVsPeakPrice, c.Format, c.Key)
	case "base_vs_latest_price":
		return tabular.FormatNumber(l.BaseVsLatestPrice, c.Format, c.Key)
	case "first_gouged_price":
		return tabular.FormatNumber(l.FirstGougedPrice, c.Format, c.Key)
	case "first_gouged_date":
		return tabular.FormatText(l.FirstGougedDate, c.Format)
	default:
		return ""
	}
}

func init() {
	sections.Register(&listingsTableSection{})
}
