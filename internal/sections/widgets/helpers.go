package widgets

import (
	"fmt"

	"gougewatch/internal/data"
)

// datasetAs reads a declared dataset from the context and asserts its type.
// A missing dataset here is an engine bug (the engine refuses to build a
// section whose dependencies did not fetch), so both cases are plain errors.
func datasetAs[T any](dc data.DataContext, req data.DatasetRequest) (T, error) {
	var zero T
	val, ok := dc.Get(req)
	if !ok {
		return zero, fmt.Errorf("dataset %s not in context", req.ID())
	}
	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("dataset %s: unexpected type %T", req.ID(), val)
	}
	return typed, nil
}
