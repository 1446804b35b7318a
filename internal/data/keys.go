package data

const (
	// DatasetGougedByDate represents the per-day gouging aggregates table
	// (count, dollars gouged, and the cumulative count per day).
	DatasetGougedByDate DatasetKey = "dataset.gouged_by_date"

	// DatasetGougedListings represents the individual gouged listings table.
	DatasetGougedListings DatasetKey = "dataset.gouged_listings"

	// DatasetChargedGougers represents the enforcement table of charged
	// gougers (name and date charged).
	DatasetChargedGougers DatasetKey = "dataset.charged_gougers"

	// DatasetRegionGeoJSON represents a prebuilt GeoJSON FeatureCollection for
	// one region layer. Parameterized by "table" (e.g. supervisor_geojson).
	//
	// Each feature carries "region" and "gouged_listings" properties.
	DatasetRegionGeoJSON DatasetKey = "dataset.region_geojson"

	// DatasetRegionMetrics represents per-region metric rows carrying a raw
	// geometry column. Parameterized by "table" and "id_column"
	// (e.g. supervisor_district_metrics / supervisor_district).
	DatasetRegionMetrics DatasetKey = "dataset.region_metrics"
)

// Priority returns the fetch priority for a dataset key (lower is higher priority).
func Priority(key DatasetKey) int {
	switch key {
	case DatasetGougedByDate:
		return 0 // Headline metrics and the timeline both hang off this (P0)
	case DatasetRegionGeoJSON, DatasetRegionMetrics:
		return 1 // Map layers (P1)
	default:
		return 2 // Everything else (P2)
	}
}
