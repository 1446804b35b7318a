package data

import "sort"

// TrackingDataContext wraps another DataContext and records the identity of
// every dataset that callers attempt to read via Get().
//
// This is primarily used by the engine to enforce the contract that sections
// must declare all datasets up front via Section.Dependencies().
type TrackingDataContext struct {
	inner    DataContext
	accessed map[string]struct{}
}

func NewTrackingDataContext(inner DataContext) *TrackingDataContext {
	return &TrackingDataContext{
		inner:    inner,
		accessed: make(map[string]struct{}),
	}
}

func (c *TrackingDataContext) Get(req DatasetRequest) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.accessed[req.ID()] = struct{}{}
	if c.inner == nil {
		return nil, false
	}
	return c.inner.Get(req)
}

// AccessedIDs returns the sorted identities of every dataset read through this context.
func (c *TrackingDataContext) AccessedIDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.accessed))
	for id := range c.accessed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
