package recipes

import (
	"context"
	"errors"

	"refit/internal/recipe"
	"refit/internal/results"
	"refit/internal/snapshot"
)

func init() {
	register("files.delete", newDelete, recipe.Descriptor{
		Name:        "files.delete",
		DisplayName: "Delete files",
		Options: []recipe.Option{
			{Name: "filePattern"},
		},
	})
}

// deleteFiles removes every loaded source whose path matches the glob.
// Directories left empty by the deletions are cleaned up after the run.
type deleteFiles struct {
	name string
	opts map[string]string
}

func newDelete(name string, opts map[string]string) recipe.Recipe {
	return &deleteFiles{name: name, opts: opts}
}

func (d *deleteFiles) Name() string { return d.name }

func (d *deleteFiles) Descriptor() recipe.Descriptor {
	return recipe.Descriptor{
		Name:        d.name,
		DisplayName: "Delete files",
		Options: []recipe.Option{
			{Name: "filePattern", Value: d.opts["filePattern"]},
		},
	}
}

func (d *deleteFiles) Validate() error {
	if d.opts["filePattern"] == "" {
		return errors.New(`requires a "filePattern" option`)
	}
	return validateFilePattern(d.opts["filePattern"])
}

func (d *deleteFiles) Apply(ctx context.Context, sources []*snapshot.Snapshot) []*results.Result {
	pattern := d.opts["filePattern"]
	if pattern == "" {
		return nil
	}
	var out []*results.Result
	for _, s := range sources {
		if ok, err := matchFile(pattern, s.Path); err != nil || !ok {
			continue
		}
		out = append(out, &results.Result{Before: s, Recipes: []string{d.name}})
	}
	return out
}
