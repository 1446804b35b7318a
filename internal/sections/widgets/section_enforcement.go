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

type enforcementSection struct {
	now func() time.Time
}

func (s *enforcementSection) ID() string    { return "enforcement" }
func (s *enforcementSection) Title() string { return "Enforcement" }
func (s *enforcementSection) Description() string {
	return "Gougers charged by the City Attorney: totals, recent activity, and the charge timeline."
}

func (s *enforcementSection) Dependencies(_ context.Context) ([]data.DatasetRequest, error) {
	return []data.DatasetRequest{{Key: data.DatasetChargedGougers}}, nil
}

func (s *enforcementSection) Build(_ context.Context, dc data.DataContext) (sections.Fragment, error) {
	charged, err := datasetAs[[]model.ChargedGouger](dc, data.DatasetRequest{Key: data.DatasetChargedGougers})
	if err != nil {
		return sections.Fragment{}, err
	}

	recent, deltaPct := series.ChargedWindowDelta(charged, s.clock()(), recentWindow)

	table := &sections.Table{
		Columns: []string{"Charged Gouger", "Date Charged"},
		Height:  tabular.TableHeight(len(charged)),
	}
	for _, c := range charged {
		table.Rows = append(table.Rows, []string{c.Name, c.DateCharged.Format(model.DateLayout)})
	}

	return sections.Fragment{
		Status: sections.StatusOK,
		Metrics: []sections.Metric{
			{Label: "Total Gougers Charged", Value: countWithCommas(len(charged))},
			{Label: "Gougers Charged in Last 7 Days", Value: countWithCommas(recent), Delta: fmt.Sprintf("%.1f%% increase", deltaPct)},
		},
		Table: table,
	}, nil
}

func (s *enforcementSection) clock() func() time.Time {
	if s.now != nil {
		return s.now
	}
	return time.Now
}

func init() {
	sections.Register(&enforcementSection{})
}
