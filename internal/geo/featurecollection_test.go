package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestFeatureCollection_AssemblesFeatures(t *testing.T) {
	rows := []byte(`[
		{"supervisor_district": 1, "ever_gouged_listings": 42, "geom": {"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
		{"supervisor_district": 2, "ever_gouged_listings": 7, "geom": {"type":"Polygon","coordinates":[[[2,2],[3,2],[3,3],[2,2]]]}}
	]`)

	fc, err := FeatureCollection(rows, "supervisor_district")
	require.NoError(t, err)

	doc := gjson.ParseBytes(fc)
	assert.Equal(t, "FeatureCollection", doc.Get("type").String())
	features := doc.Get("features").Array()
	require.Len(t, features, 2)

	first := features[0]
	assert.Equal(t, "Feature", first.Get("type").String())
	assert.Equal(t, "Polygon", first.Get("geometry.type").String())
	assert.Equal(t, int64(1), first.Get("properties.district_id").Int())
	assert.Equal(t, int64(42), first.Get("properties.ever_gouged_listings").Int())

	assert.Equal(t, int64(7), features[1].Get("properties.ever_gouged_listings").Int())
}

func TestFeatureCollection_Errors(t *testing.T) {
	_, err := FeatureCollection([]byte(`[{"id":1}]`), "")
	assert.Error(t, err)

	_, err = FeatureCollection([]byte(`{"not":"an array"}`), "id")
	assert.Error(t, err)

	_, err = FeatureCollection([]byte(`[{"id":1,"ever_gouged_listings":3}]`), "id")
	assert.ErrorContains(t, err, "geom")
}

func TestMetricValues(t *testing.T) {
	fc := []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"gouged_listings":5}},
		{"type":"Feature","properties":{"gouged_listings":12}},
		{"type":"Feature","properties":{}}
	]}`)

	values := MetricValues(fc, "gouged_listings")
	assert.Equal(t, []float64{5, 12, 0}, values)
}

func TestLayerTable_RanksByCountDesc(t *testing.T) {
	fc := []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"region":"Palmdale","gouged_listings":3}},
		{"type":"Feature","properties":{"region":"Altadena","gouged_listings":90}},
		{"type":"Feature","properties":{"region":"Pasadena","gouged_listings":25}}
	]}`)

	rows := LayerTable(fc, "region", "gouged_listings", false)
	assert.Equal(t, []RegionCount{
		{Region: "Altadena", Count: 90},
		{Region: "Pasadena", Count: 25},
		{Region: "Palmdale", Count: 3},
	}, rows)
}

func TestLayerTable_GroupsSplitRegions(t *testing.T) {
	// The city source splits some cities across multiple features with
	// inconsistent casing; grouping must merge them under one title-cased name.
	fc := []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"region":"LOS ANGELES","gouged_listings":10}},
		{"type":"Feature","properties":{"region":"los angeles","gouged_listings":5}},
		{"type":"Feature","properties":{"region":"Burbank","gouged_listings":8}}
	]}`)

	rows := LayerTable(fc, "region", "gouged_listings", true)
	assert.Equal(t, []RegionCount{
		{Region: "Los Angeles", Count: 15},
		{Region: "Burbank", Count: 8},
	}, rows)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Los Angeles", TitleCase("LOS ANGELES"))
	assert.Equal(t, "La Cañada Flintridge", TitleCase("la CAÑADA flintridge"))
	assert.Equal(t, "Águila Heights", TitleCase("ÁGUILA HEIGHTS"))
	assert.Equal(t, "", TitleCase(""))
}
