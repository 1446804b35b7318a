package data

import (
	"sort"
	"strings"
)

// DatasetKey uniquely identifies a remote dataset the dashboard can depend on.
type DatasetKey string

// DatasetRequest represents a request for a specific dataset with optional parameters.
//
// Parameters distinguish instances of parameterized datasets (e.g. which
// region table a geojson layer is read from), so two requests for the same key
// with different params are distinct datasets.
type DatasetRequest struct {
	Key    DatasetKey
	Params map[string]string
}

// ID returns the deterministic identity of the request: the dataset key plus
// the sorted parameter list. It is used as the DataContext and cache key.
func (r DatasetRequest) ID() string {
	if len(r.Params) == 0 {
		return string(r.Key)
	}

	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+r.Params[k])
	}
	return string(r.Key) + ":" + strings.Join(parts, "&")
}
