package sections

import (
	"context"
	"testing"

	"gougewatch/internal/data"
)

type stubSection struct {
	id string
}

func (s *stubSection) ID() string          { return s.id }
func (s *stubSection) Title() string       { return "Stub " + s.id }
func (s *stubSection) Description() string { return "stub" }
func (s *stubSection) Dependencies(context.Context) ([]data.DatasetRequest, error) {
	return nil, nil
}
func (s *stubSection) Build(context.Context, data.DataContext) (Fragment, error) {
	return Fragment{Status: StatusOK}, nil
}

func TestSelect(t *testing.T) {
	all := []Section{
		&stubSection{id: "alpha"},
		&stubSection{id: "beta"},
		&stubSection{id: "gamma"},
	}

	got, err := Select(all, "")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("empty selector should select all, got %d", len(got))
	}

	got, err = Select(all, "gamma, alpha")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 2 || got[0].ID() != "gamma" || got[1].ID() != "alpha" {
		t.Fatalf("selector order not honored: %v", ids(got))
	}

	if _, err := Select(all, "alpha,nope"); err == nil {
		t.Fatal("expected error for unknown section")
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	Register(&stubSection{id: "dup-test-section"})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	Register(&stubSection{id: "dup-test-section"})
}

func ids(secs []Section) []string {
	out := make([]string, 0, len(secs))
	for _, s := range secs {
		out = append(out, s.ID())
	}
	return out
}
