package recipe

import (
	"context"
	"errors"
	"testing"

	"refit/internal/marker"
	"refit/internal/results"
	"refit/internal/snapshot"
)

// stubRecipe rewrites every source's content to a fixed replacement.
type stubRecipe struct {
	name        string
	replacement string
	validateErr error
}

func (s *stubRecipe) Name() string { return s.name }

func (s *stubRecipe) Descriptor() Descriptor {
	return Descriptor{Name: s.name, DisplayName: s.name}
}

func (s *stubRecipe) Validate() error { return s.validateErr }

func (s *stubRecipe) Apply(_ context.Context, sources []*snapshot.Snapshot) []*results.Result {
	var out []*results.Result
	for _, src := range sources {
		after := snapshot.New(src.Path, s.replacement)
		out = append(out, &results.Result{Before: src, After: after, Recipes: []string{s.name}})
	}
	return out
}

func TestActivateUnknownRecipe(t *testing.T) {
	env := NewEnvironment()
	env.Register(&stubRecipe{name: "known"})

	if _, err := env.Activate([]string{"known", "missing"}); err == nil {
		t.Error("Activate() expected error for unknown recipe")
	}
}

func TestActivatePreservesOrder(t *testing.T) {
	env := NewEnvironment()
	env.Register(&stubRecipe{name: "a", replacement: "from-a"})
	env.Register(&stubRecipe{name: "b", replacement: "from-b"})

	run, err := env.Activate([]string{"b", "a"})
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	sources := []*snapshot.Snapshot{snapshot.New("f.txt", "orig")}
	rs, err := run.Apply(context.Background(), sources)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("got %d results, want 2", len(rs))
	}
	if rs[0].Recipes[0] != "b" || rs[1].Recipes[0] != "a" {
		t.Errorf("results out of activation order: %v, %v", rs[0].Recipes, rs[1].Recipes)
	}
}

func TestValidateAll(t *testing.T) {
	env := NewEnvironment()
	env.Register(&stubRecipe{name: "good"})
	env.Register(&stubRecipe{name: "bad", validateErr: errors.New("missing option")})

	run, err := env.Activate([]string{"good", "bad"})
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	failures := run.ValidateAll()
	if len(failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(failures))
	}
	if failures[0].Recipe != "bad" {
		t.Errorf("failing recipe = %q, want %q", failures[0].Recipe, "bad")
	}
}

func TestApplyFiltersGeneratedSources(t *testing.T) {
	env := NewEnvironment()
	env.Register(&stubRecipe{name: "r", replacement: "changed"})
	run, err := env.Activate([]string{"r"})
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	generated := snapshot.New("gen.txt", "machine output")
	generated.Root.Markers = []marker.Marker{{ID: "g", Kind: marker.KindGenerated}}
	plain := snapshot.New("hand.txt", "hand written")

	rs, err := run.Apply(context.Background(), []*snapshot.Snapshot{generated, plain})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(rs) != 1 || rs[0].Before.Path != "hand.txt" {
		t.Errorf("generated source was not filtered: %d results", len(rs))
	}
}

func TestApplyHonorsCancellation(t *testing.T) {
	env := NewEnvironment()
	env.Register(&stubRecipe{name: "r"})
	run, err := env.Activate([]string{"r"})
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := run.Apply(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Apply() error = %v, want context.Canceled", err)
	}
}
