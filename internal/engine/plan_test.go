package engine

import (
	"context"
	"errors"
	"testing"

	"gougewatch/internal/data"
	"gougewatch/internal/sections"
)

type stubSection struct {
	id      string
	title   string
	deps    []data.DatasetRequest
	depsErr error
	build   func(ctx context.Context, dc data.DataContext) (sections.Fragment, error)
}

func (s *stubSection) ID() string { return s.id }
func (s *stubSection) Title() string {
	if s.title != "" {
		return s.title
	}
	return s.id
}
func (s *stubSection) Description() string { return "" }
func (s *stubSection) Dependencies(context.Context) ([]data.DatasetRequest, error) {
	return s.deps, s.depsErr
}
func (s *stubSection) Build(ctx context.Context, dc data.DataContext) (sections.Fragment, error) {
	if s.build == nil {
		return sections.Fragment{Status: sections.StatusOK}, nil
	}
	return s.build(ctx, dc)
}

func TestRenderPlan_AddSection_DeduplicatesRequests(t *testing.T) {
	shared := data.DatasetRequest{Key: data.DatasetGougedByDate}
	a := &stubSection{id: "a", deps: []data.DatasetRequest{shared}}
	b := &stubSection{id: "b", deps: []data.DatasetRequest{shared, {Key: data.DatasetChargedGougers}}}

	plan := NewRenderPlan()
	if err := plan.AddSection(context.Background(), a); err != nil {
		t.Fatalf("AddSection a: %v", err)
	}
	if err := plan.AddSection(context.Background(), b); err != nil {
		t.Fatalf("AddSection b: %v", err)
	}

	if len(plan.Sections) != 2 {
		t.Errorf("sections = %d", len(plan.Sections))
	}
	if len(plan.Requests) != 2 {
		t.Errorf("requests = %d, want shared dataset deduplicated", len(plan.Requests))
	}
	if got := plan.SectionDeps["b"]; len(got) != 2 {
		t.Errorf("deps for b = %v", got)
	}
}

func TestRenderPlan_AddSection_Errors(t *testing.T) {
	plan := NewRenderPlan()
	if err := plan.AddSection(context.Background(), nil); err == nil {
		t.Error("expected error for nil section")
	}

	broken := &stubSection{id: "broken", depsErr: errors.New("no layer config")}
	err := plan.AddSection(context.Background(), broken)
	if err == nil {
		t.Fatal("expected dependency resolution error")
	}
	if len(plan.Sections) != 0 {
		t.Errorf("failed section should not be planned, got %d", len(plan.Sections))
	}
}

func TestRenderPlan_SortedRequests_PriorityThenIdentity(t *testing.T) {
	plan := NewRenderPlan()
	s := &stubSection{id: "s", deps: []data.DatasetRequest{
		{Key: data.DatasetChargedGougers},
		{Key: data.DatasetRegionGeoJSON, Params: map[string]string{"table": "supervisor_geojson"}},
		{Key: data.DatasetRegionGeoJSON, Params: map[string]string{"table": "cities_geojson"}},
		{Key: data.DatasetGougedByDate},
	}}
	if err := plan.AddSection(context.Background(), s); err != nil {
		t.Fatal(err)
	}

	got := plan.SortedRequests()
	want := []string{
		"dataset.gouged_by_date",
		"dataset.region_geojson:table=cities_geojson",
		"dataset.region_geojson:table=supervisor_geojson",
		"dataset.charged_gougers",
	}
	if len(got) != len(want) {
		t.Fatalf("requests = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].ID() != w {
			t.Errorf("request[%d] = %s, want %s", i, got[i].ID(), w)
		}
	}
}
