package geo

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Property names carried by assembled features.
const (
	PropDistrictID     = "district_id"
	PropEverGouged     = "ever_gouged_listings"
	PropRegion         = "region"
	PropGougedListings = "gouged_listings"
)

const emptyCollection = `{"type":"FeatureCollection","features":[]}`

// FeatureCollection assembles a GeoJSON FeatureCollection from region metric
// rows. Each row contributes its "geom" column as the feature geometry and two
// properties: the region identifier (taken from idColumn) and the
// ever_gouged_listings count.
func FeatureCollection(rows []byte, idColumn string) ([]byte, error) {
	if idColumn == "" {
		return nil, fmt.Errorf("feature collection: id column is required")
	}

	parsed := gjson.ParseBytes(rows)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("feature collection: expected a row array")
	}

	out := []byte(emptyCollection)
	var buildErr error
	i := 0
	parsed.ForEach(func(_, row gjson.Result) bool {
		geom := row.Get("geom")
		if !geom.Exists() {
			buildErr = fmt.Errorf("feature collection: row %d has no geom column", i)
			return false
		}

		feature := []byte(`{"type":"Feature"}`)
		feature, buildErr = sjson.SetRawBytes(feature, "geometry", []byte(geom.Raw))
		if buildErr != nil {
			return false
		}
		feature, buildErr = sjson.SetBytes(feature, "properties."+PropDistrictID, row.Get(idColumn).Value())
		if buildErr != nil {
			return false
		}
		feature, buildErr = sjson.SetBytes(feature, "properties."+PropEverGouged, row.Get(PropEverGouged).Int())
		if buildErr != nil {
			return false
		}

		out, buildErr = sjson.SetRawBytes(out, fmt.Sprintf("features.%d", i), feature)
		if buildErr != nil {
			return false
		}
		i++
		return true
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return out, nil
}

// MetricValues extracts the named numeric property from every feature of a
// FeatureCollection. Missing properties count as 0.
func MetricValues(fc []byte, property string) []float64 {
	features := gjson.GetBytes(fc, "features")
	var out []float64
	features.ForEach(func(_, f gjson.Result) bool {
		out = append(out, f.Get("properties."+property).Float())
		return true
	})
	return out
}
