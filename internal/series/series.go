package series

import (
	"sort"
	"time"

	"gougewatch/internal/model"
)

// Point is one day on the gouged-listings timeline.
type Point struct {
	Date  time.Time
	Value int
}

// Totals sums the listing count and dollars gouged across all days.
func Totals(rows []model.GougedByDate) (listings int, dollars float64) {
	for _, r := range rows {
		listings += r.GougedListings
		dollars += r.TotalDollarsGouged
	}
	return listings, dollars
}

// Cumulative returns the running total of gouged listings per day, ordered by
// date. When the rows already carry a cumulative count it is used as-is;
// otherwise the running sum is derived from the per-day counts.
func Cumulative(rows []model.GougedByDate) []Point {
	if len(rows) == 0 {
		return nil
	}

	sorted := make([]model.GougedByDate, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	precomputed := false
	for _, r := range sorted {
		if r.CumulativeCount > 0 {
			precomputed = true
			break
		}
	}

	out := make([]Point, 0, len(sorted))
	running := 0
	for _, r := range sorted {
		running += r.GougedListings
		v := running
		if precomputed {
			v = r.CumulativeCount
		}
		out = append(out, Point{Date: r.Date, Value: v})
	}
	return out
}

// WindowDelta reports how many listings were gouged inside the window ending
// at now, and that count as a percentage of the all-time total. A zero total
// yields a zero delta.
func WindowDelta(rows []model.GougedByDate, now time.Time, window time.Duration) (recent int, deltaPct float64) {
	cutoff := now.Add(-window)
	total := 0
	for _, r := range rows {
		total += r.GougedListings
		if r.Date.After(cutoff) && !r.Date.After(now) {
			recent += r.GougedListings
		}
	}
	if total == 0 {
		return recent, 0
	}
	return recent, float64(recent) / float64(total) * 100
}

// ChargedWindowDelta is WindowDelta for the enforcement timeline.
func ChargedWindowDelta(rows []model.ChargedGouger, now time.Time, window time.Duration) (recent int, deltaPct float64) {
	cutoff := now.Add(-window)
	for _, r := range rows {
		if r.DateCharged.After(cutoff) && !r.DateCharged.After(now) {
			recent++
		}
	}
	if len(rows) == 0 {
		return recent, 0
	}
	return recent, float64(recent) / float64(len(rows)) * 100
}
