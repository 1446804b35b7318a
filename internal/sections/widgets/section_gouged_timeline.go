package widgets

import (
	"context"

	"gougewatch/internal/data"
	"gougewatch/internal/model"
	"gougewatch/internal/sections"
	"gougewatch/internal/series"
)

type gougedTimelineSection struct{}

func (s *gougedTimelineSection) ID() string    { return "gouged-timeline" }
func (s *gougedTimelineSection) Title() string { return "Rent-Gouged Listings Over Time" }
func (s *gougedTimelineSection) Description() string {
	return "Cumulative count of gouged listings by the date each was first gouged."
}

func (s *gougedTimelineSection) Dependencies(_ context.Context) ([]data.DatasetRequest, error) {
	return []data.DatasetRequest{{Key: data.DatasetGougedByDate}}, nil
}

func (s *gougedTimelineSection) Build(_ context.Context, dc data.DataContext) (sections.Fragment, error) {
	rows, err := datasetAs[[]model.GougedByDate](dc, data.DatasetRequest{Key: data.DatasetGougedByDate})
	if err != nil {
		return sections.Fragment{}, err
	}

	points := series.Cumulative(rows)
	chart := &sections.Chart{Label: "Total Gouged Listings"}
	for _, p := range points {
		chart.Points = append(chart.Points, sections.ChartPoint{Date: p.Date, Value: p.Value})
	}

	return sections.Fragment{
		Status: sections.StatusOK,
		Chart:  chart,
	}, nil
}

func init() {
	sections.Register(&gougedTimelineSection{})
}
