// Package recipe defines the contract between refit and the transformation
// recipes it runs, plus the environment that activates and validates them.
// Recipe logic itself lives behind the Recipe interface; this package only
// orchestrates.
package recipe

import (
	"context"

	"refit/internal/results"
	"refit/internal/snapshot"
)

// Recipe is one automated source transformation. Apply receives the full set
// of parsed snapshots and returns before/after pairs for the files it would
// change; files it leaves alone produce no result. Failures during
// transformation are embedded in the after tree as error markers, not
// returned.
type Recipe interface {
	Name() string
	Descriptor() Descriptor
	Validate() error
	Apply(ctx context.Context, sources []*snapshot.Snapshot) []*results.Result
}

// Option is a configured option on a recipe, shown in reports.
type Option struct {
	Name  string
	Value string
}

// Descriptor describes a recipe and the recipes it delegates to, forming the
// tree reported for each changed file.
type Descriptor struct {
	Name        string
	DisplayName string
	Options     []Option
	Recipes     []Descriptor
}
