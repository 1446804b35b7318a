package widgets

import (
	"context"
	"fmt"
	"time"

	"gougewatch/internal/data"
	"gougewatch/internal/model"
	"gougewatch/internal/sections"
	"gougewatch/internal/series"
	"gougewatch/internal/tabular"
)

const recentWindow = 7 * 24 * time.Hour

type headlineMetricsSection struct {
	now func() time.Time
}

func (s *headlineMetricsSection) ID() string    { return "headline-metrics" }
func (s *headlineMetricsSection) Title() string { return "Rent Gouging in Los Angeles County" }
func (s *headlineMetricsSection) Description() string {
	return "Headline totals: gouged listings, listings gouged in the last 7 days, and total dollars gouged."
}

func (s *headlineMetricsSection) Dependencies(_ context.Context) ([]data.DatasetRequest, error) {
	return []data.DatasetRequest{{Key: data.DatasetGougedByDate}}, nil
}

func (s *headlineMetricsSection) Build(_ context.Context, dc data.DataContext) (sections.Fragment, error) {
	rows, err := datasetAs[[]model.GougedByDate](dc, data.DatasetRequest{Key: data.DatasetGougedByDate})
	if err != nil {
		return sections.Fragment{}, err
	}

	total, dollars := series.Totals(rows)
	recent, deltaPct := series.WindowDelta(rows, s.clock()(), recentWindow)

	return sections.Fragment{
		Status: sections.StatusOK,
		Metrics: []sections.Metric{
			{Label: "Total Gouged Listings", Value: countWithCommas(total)},
			{Label: "Total Listings Gouged in Last 7 Days", Value: countWithCommas(recent), Delta: fmt.Sprintf("%.1f%% increase", deltaPct)},
			{Label: "Total Dollars Gouged", Value: fmt.Sprintf("$%.2fMM", dollars/1e6)},
		},
	}, nil
}

func (s *headlineMetricsSection) clock() func() time.Time {
	if s.now != nil {
		return s.now
	}
	return time.Now
}

func countWithCommas(n int) string {
	// tabular.Currency already does grouped thousands; strip the sign.
	return tabular.Currency(float64(n))[1:]
}

func init() {
	sections.Register(&headlineMetricsSection{})
}
