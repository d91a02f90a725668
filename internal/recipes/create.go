package recipes

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"refit/internal/recipe"
	"refit/internal/results"
	"refit/internal/snapshot"
)

func init() {
	register("files.create", newCreate, recipe.Descriptor{
		Name:        "files.create",
		DisplayName: "Create a text file",
		Options: []recipe.Option{
			{Name: "path"},
			{Name: "content"},
		},
	})
}

// create adds a new text file at a root-relative path. If a loaded source
// already has that path the recipe does nothing, so repeated runs are
// idempotent.
type create struct {
	name string
	opts map[string]string
}

func newCreate(name string, opts map[string]string) recipe.Recipe {
	return &create{name: name, opts: opts}
}

func (c *create) Name() string { return c.name }

func (c *create) Descriptor() recipe.Descriptor {
	return recipe.Descriptor{
		Name:        c.name,
		DisplayName: "Create a text file",
		Options: []recipe.Option{
			{Name: "path", Value: c.opts["path"]},
			{Name: "content", Value: c.opts["content"]},
		},
	}
}

func (c *create) Validate() error {
	p := c.opts["path"]
	if p == "" {
		return errors.New(`requires a "path" option`)
	}
	if path.IsAbs(p) || p != path.Clean(p) || p == ".." || strings.HasPrefix(p, "../") {
		return fmt.Errorf("path %q must be a clean path relative to the project root", p)
	}
	return nil
}

func (c *create) Apply(ctx context.Context, sources []*snapshot.Snapshot) []*results.Result {
	target := c.opts["path"]
	if target == "" {
		return nil
	}
	for _, s := range sources {
		if s.Path == target {
			return nil
		}
	}
	return []*results.Result{{
		After:   snapshot.New(target, c.opts["content"]),
		Recipes: []string{c.name},
	}}
}
