package sections

import (
	"context"

	"gougewatch/internal/data"
)

// Section is one dashboard section: a self-contained widget that declares the
// datasets it needs and builds a renderable Fragment from them.
type Section interface {
	ID() string
	Title() string
	Description() string

	// Dependencies declares the datasets this section reads.
	Dependencies(ctx context.Context) ([]data.DatasetRequest, error)

	// Build assembles the section's fragment using only the DataContext.
	// Sections MUST NOT call the backend directly.
	Build(ctx context.Context, dc data.DataContext) (Fragment, error)
}

type Option struct {
	Name        string
	Description string
	Default     string
}

type ConfigurableSection interface {
	Section
	Options() []Option
	Configure(opts map[string]string) error
}
