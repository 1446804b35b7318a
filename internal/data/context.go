package data

// DataContext provides fetched datasets to dashboard sections.
type DataContext interface {
	Get(req DatasetRequest) (any, bool)
}

// MapDataContext is a simple read-only map-based implementation of DataContext,
// keyed by DatasetRequest identity.
type MapDataContext struct {
	data map[string]any
}

func NewMapDataContext(data map[string]any) *MapDataContext {
	// A nil map is treated as an empty context.
	// Keeping it nil avoids hidden initialization and ensures the context is read-only.
	return &MapDataContext{data: data}
}

func (c *MapDataContext) Get(req DatasetRequest) (any, bool) {
	if c == nil {
		return nil, false
	}
	val, ok := c.data[req.ID()]
	return val, ok
}
