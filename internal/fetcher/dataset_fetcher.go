package fetcher

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gougewatch/internal/data"
)

// DatasetFetcher knows how to fetch one dataset kind from the hosted backend.
type DatasetFetcher interface {
	Key() data.DatasetKey
	Fetch(ctx context.Context, params map[string]string, f *Fetcher) (any, error)
}

var (
	datasetFetcherRegistry = make(map[data.DatasetKey]DatasetFetcher)
	datasetFetcherMu       sync.RWMutex
)

func RegisterDatasetFetcher(df DatasetFetcher) {
	if df == nil {
		panic("dataset fetcher is nil")
	}
	k := df.Key()
	if k == "" {
		panic("dataset fetcher key is empty")
	}

	datasetFetcherMu.Lock()
	defer datasetFetcherMu.Unlock()
	if _, exists := datasetFetcherRegistry[k]; exists {
		panic(fmt.Sprintf("dataset fetcher %s already registered", k))
	}
	datasetFetcherRegistry[k] = df
}

func ResolveDatasetFetcher(key data.DatasetKey) (DatasetFetcher, bool) {
	datasetFetcherMu.RLock()
	defer datasetFetcherMu.RUnlock()
	df, ok := datasetFetcherRegistry[key]
	return df, ok
}

func ListDatasetFetchers() []DatasetFetcher {
	datasetFetcherMu.RLock()
	defer datasetFetcherMu.RUnlock()

	all := make([]DatasetFetcher, 0, len(datasetFetcherRegistry))
	for _, df := range datasetFetcherRegistry {
		all = append(all, df)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Key() < all[j].Key()
	})
	return all
}
