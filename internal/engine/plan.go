package engine

import (
	"context"
	"fmt"
	"sort"

	"gougewatch/internal/data"
	"gougewatch/internal/sections"
)

// RenderPlan is the resolved unit of work for a run: the sections to render
// and the deduplicated set of datasets they declared.
type RenderPlan struct {
	Sections []sections.Section

	// Requests holds every distinct dataset request, keyed by request identity.
	Requests map[string]data.DatasetRequest

	// SectionDeps maps section ID to its declared dataset requests.
	SectionDeps map[string][]data.DatasetRequest
}

func NewRenderPlan() *RenderPlan {
	return &RenderPlan{
		Requests:    make(map[string]data.DatasetRequest),
		SectionDeps: make(map[string][]data.DatasetRequest),
	}
}

func (p *RenderPlan) AddSection(ctx context.Context, s sections.Section) error {
	if s == nil {
		return fmt.Errorf("nil section")
	}
	deps, err := s.Dependencies(ctx)
	if err != nil {
		return fmt.Errorf("resolve dependencies for section %s: %w", s.ID(), err)
	}

	p.Sections = append(p.Sections, s)
	p.SectionDeps[s.ID()] = deps
	for _, d := range deps {
		p.Requests[d.ID()] = d
	}
	return nil
}

// SortedRequests returns the plan's dataset requests ordered by fetch priority
// (then by identity, for determinism).
func (p *RenderPlan) SortedRequests() []data.DatasetRequest {
	reqs := make([]data.DatasetRequest, 0, len(p.Requests))
	for _, r := range p.Requests {
		reqs = append(reqs, r)
	}
	sort.Slice(reqs, func(i, j int) bool {
		pi, pj := data.Priority(reqs[i].Key), data.Priority(reqs[j].Key)
		if pi != pj {
			return pi < pj
		}
		return reqs[i].ID() < reqs[j].ID()
	})
	return reqs
}
