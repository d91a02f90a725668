package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"refit/internal/marker"
	"refit/internal/results"
	"refit/internal/snapshot"
)

// Environment holds the recipes available to a run, registered by name.
type Environment struct {
	recipes map[string]Recipe
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{recipes: make(map[string]Recipe)}
}

// Register adds a recipe. Registering a second recipe under the same name
// replaces the first.
func (e *Environment) Register(r Recipe) {
	e.recipes[r.Name()] = r
}

// Descriptors lists every registered recipe's descriptor, sorted by name.
func (e *Environment) Descriptors() []Descriptor {
	names := make([]string, 0, len(e.recipes))
	for name := range e.recipes {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		out = append(out, e.recipes[name].Descriptor())
	}
	return out
}

// Lookup returns the descriptor of the named recipe, if registered.
func (e *Environment) Lookup(name string) (Descriptor, bool) {
	r, ok := e.recipes[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.Descriptor(), true
}

// Activate resolves the named recipes into a Run, in the order given.
func (e *Environment) Activate(names []string) (*Run, error) {
	run := &Run{}
	for _, name := range names {
		r, ok := e.recipes[name]
		if !ok {
			return nil, fmt.Errorf("could not find recipe %q among available recipes", name)
		}
		run.recipes = append(run.recipes, r)
	}
	return run, nil
}

// Run is an activated, ordered set of recipes.
type Run struct {
	recipes []Recipe
}

// Empty reports whether no recipes were activated.
func (r *Run) Empty() bool {
	return len(r.recipes) == 0
}

// ValidationError is one failed recipe validation.
type ValidationError struct {
	Recipe string
	Err    error
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("recipe validation error in %s: %v", v.Recipe, v.Err)
}

func (v *ValidationError) Unwrap() error { return v.Err }

// ValidateAll collects the validation failures of every activated recipe.
func (r *Run) ValidateAll() []*ValidationError {
	var failures []*ValidationError
	for _, rec := range r.recipes {
		if err := rec.Validate(); err != nil {
			failures = append(failures, &ValidationError{Recipe: rec.Name(), Err: err})
		}
	}
	return failures
}

// Apply runs every activated recipe over the sources and returns the merged
// result list, with results whose before snapshot is marked as
// machine-generated filtered out. Downstream classification never re-checks
// the generated marker. Cancellation is consulted between recipes only.
func (r *Run) Apply(ctx context.Context, sources []*snapshot.Snapshot) ([]*results.Result, error) {
	var all []*results.Result
	for _, rec := range r.recipes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slog.Debug("applying recipe", "recipe", rec.Name())
		for _, res := range rec.Apply(ctx, sources) {
			if fromGenerated(res) {
				slog.Debug("dropping result for machine-generated source", "recipe", rec.Name())
				continue
			}
			all = append(all, res)
		}
	}
	return all, nil
}

func fromGenerated(r *results.Result) bool {
	if r.Before == nil || r.Before.Root == nil {
		return false
	}
	_, ok := r.Before.Root.Find(marker.KindGenerated)
	return ok
}
