package sections

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registry = make(map[string]Section)
	mu       sync.RWMutex
)

// Register adds a statically-defined section. Map layer sections are built
// from layer config at runtime and are not registered here.
func Register(s Section) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[s.ID()]; exists {
		panic(fmt.Sprintf("section %s already registered", s.ID()))
	}
	registry[s.ID()] = s
}

func List() []Section {
	mu.RLock()
	defer mu.RUnlock()
	var all []Section
	for _, s := range registry {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID() < all[j].ID()
	})
	return all
}

// Select filters a composed section list by a comma-separated ID selector.
// An empty selector selects everything.
func Select(all []Section, selector string) ([]Section, error) {
	if selector == "" {
		return all, nil
	}

	byID := make(map[string]Section, len(all))
	for _, s := range all {
		byID[s.ID()] = s
	}

	ids := strings.Split(selector, ",")
	var selected []Section
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("section not found: %s", id)
		}
		selected = append(selected, s)
	}
	return selected, nil
}
