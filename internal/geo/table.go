package geo

import (
	"sort"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// RegionCount is one ranked row of a map layer's side table.
type RegionCount struct {
	Region string
	Count  int
}

// LayerTable extracts (region, gouged count) pairs from a FeatureCollection's
// feature properties and ranks them by count descending.
//
// When groupRegions is set (the city layer), region names are title-cased and
// counts summed per resulting name, since the source splits some cities across
// multiple features.
func LayerTable(fc []byte, labelProp, metricProp string, groupRegions bool) []RegionCount {
	features := gjson.GetBytes(fc, "features")

	var rows []RegionCount
	features.ForEach(func(_, f gjson.Result) bool {
		rows = append(rows, RegionCount{
			Region: f.Get("properties." + labelProp).String(),
			Count:  int(f.Get("properties." + metricProp).Int()),
		})
		return true
	})

	if groupRegions {
		grouped := make(map[string]int)
		order := make([]string, 0, len(rows))
		for _, r := range rows {
			name := TitleCase(r.Region)
			if _, seen := grouped[name]; !seen {
				order = append(order, name)
			}
			grouped[name] += r.Count
		}
		rows = rows[:0]
		for _, name := range order {
			rows = append(rows, RegionCount{Region: name, Count: grouped[name]})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	return rows
}

// TitleCase uppercases the first letter of each space-separated word and
// lowercases the rest ("LOS ANGELES" -> "Los Angeles").
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
