package fetcher

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"gougewatch/internal/data"
	"gougewatch/internal/supabase"
)

var tracer = otel.Tracer("gougewatch/internal/fetcher")

type Fetcher struct {
	client *supabase.Client
	budget *RequestBudget
	group  Group
	cache  *Cache
	limit  int
}

type fetchChainKey struct{}

func NewFetcher(client *supabase.Client, budget *RequestBudget) *Fetcher {
	return &Fetcher{
		client: client,
		budget: budget,
		cache:  NewCache(),
	}
}

func (f *Fetcher) Budget() *RequestBudget {
	return f.budget
}

func (f *Fetcher) Client() *supabase.Client {
	return f.client
}

// SetRowLimit caps the number of rows row-level providers request. 0 means no cap.
func (f *Fetcher) SetRowLimit(limit int) {
	f.limit = limit
}

// RowLimit returns the configured row cap (0 = unlimited).
func (f *Fetcher) RowLimit() int {
	if f == nil {
		return 0
	}
	return f.limit
}

func (f *Fetcher) Fetch(ctx context.Context, req data.DatasetRequest) (any, error) {
	if ctx == nil {
		return nil, fmt.Errorf("Fetch: nil context")
	}
	if f == nil {
		return nil, fmt.Errorf("Fetch: nil Fetcher")
	}
	if f.client == nil {
		return nil, fmt.Errorf("Fetch: nil supabase client (use NewFetcher)")
	}
	if f.budget == nil {
		return nil, fmt.Errorf("Fetch: nil request budget (use NewFetcher)")
	}
	if f.cache == nil {
		return nil, fmt.Errorf("Fetch: nil cache (use NewFetcher)")
	}
	if req.Key == "" {
		return nil, fmt.Errorf("Fetch: empty dataset key")
	}

	fetchImpl, ok := ResolveDatasetFetcher(req.Key)
	if !ok {
		return nil, fmt.Errorf("unsupported dataset key: %s", req.Key)
	}

	// Cache key (must be deterministic)
	flightKey := f.client.ProjectRef() + ":" + req.ID()

	ctx, err := withFetchChain(ctx, flightKey)
	if err != nil {
		return nil, err
	}

	// Cache lookup
	if val, ok := f.cache.Get(flightKey); ok {
		return val, nil
	}

	// Single-flight (dedupe concurrent identical requests)
	val, err, _ := f.group.Do(flightKey, func() (interface{}, error) {
		return f.doFetch(ctx, req, fetchImpl)
	})

	if err == nil {
		f.cache.Set(flightKey, val)
	}

	return val, err
}

func (f *Fetcher) doFetch(ctx context.Context, req data.DatasetRequest, impl DatasetFetcher) (any, error) {
	ctx, span := tracer.Start(ctx, "fetch "+string(req.Key))
	defer span.End()
	span.SetAttributes(attribute.String("dataset.id", req.ID()))

	val, err := impl.Fetch(ctx, req.Params, f)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return val, nil
}

func withFetchChain(ctx context.Context, flightKey string) (context.Context, error) {
	chain := getFetchChain(ctx)
	for _, existing := range chain {
		if existing == flightKey {
			return nil, fmt.Errorf("Fetch: dataset cycle detected: %s -> %s", strings.Join(chain, " -> "), flightKey)
		}
	}

	updated := make([]string, 0, len(chain)+1)
	updated = append(updated, chain...)
	updated = append(updated, flightKey)
	return context.WithValue(ctx, fetchChainKey{}, updated), nil
}

func getFetchChain(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	v := ctx.Value(fetchChainKey{})
	chain, ok := v.([]string)
	if !ok {
		return nil
	}
	return chain
}
