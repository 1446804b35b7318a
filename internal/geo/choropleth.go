package geo

import "sort"

// OrRdRamp is the 6-class OrRd color ramp used for choropleth fills.
var OrRdRamp = []string{"#fef0d9", "#fdd49e", "#fdbb84", "#fc8d59", "#e34a33", "#b30000"}

// QuantileBreaks computes n-1 interior class breaks plus the min and max, so
// that values fall into n classes of (roughly) equal population. Returns nil
// when there are no values.
func QuantileBreaks(values []float64, classes int) []float64 {
	if len(values) == 0 || classes < 2 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	breaks := make([]float64, 0, classes+1)
	for i := 0; i <= classes; i++ {
		q := float64(i) / float64(classes)
		breaks = append(breaks, quantile(sorted, q))
	}
	return breaks
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

// FillColor maps a value onto the ramp using the given breaks (as produced by
// QuantileBreaks). Values at or below the first break take the first color;
// values above the last break take the last.
func FillColor(v float64, breaks []float64, ramp []string) string {
	if len(ramp) == 0 {
		return ""
	}
	if len(breaks) < 2 {
		return ramp[0]
	}

	// breaks has len(classes)+1 entries; interior breaks separate the classes.
	classes := len(breaks) - 1
	for i := 1; i < classes; i++ {
		if v <= breaks[i] {
			return rampColor(ramp, i-1, classes)
		}
	}
	return rampColor(ramp, classes-1, classes)
}

func rampColor(ramp []string, class, classes int) string {
	if classes <= 1 {
		return ramp[0]
	}
	idx := class * (len(ramp) - 1) / (classes - 1)
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	return ramp[idx]
}
