package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for date columns.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate parses a date column value. PostgREST serializes date columns as
// YYYY-MM-DD, but timestamp columns show up with a time component.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
