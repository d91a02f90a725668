package recipes

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"refit/internal/recipe"
	"refit/internal/results"
	"refit/internal/snapshot"
)

func init() {
	register("files.rename", newRename, recipe.Descriptor{
		Name:        "files.rename",
		DisplayName: "Rename files",
		Options: []recipe.Option{
			{Name: "find"},
			{Name: "replace"},
		},
	})
}

// rename moves files whose root-relative path matches a regular expression
// to the path produced by the replacement, which may use $1-style group
// references. A file whose rewritten path collides with another loaded
// source is skipped.
type rename struct {
	name string
	opts map[string]string
}

func newRename(name string, opts map[string]string) recipe.Recipe {
	return &rename{name: name, opts: opts}
}

func (r *rename) Name() string { return r.name }

func (r *rename) Descriptor() recipe.Descriptor {
	return recipe.Descriptor{
		Name:        r.name,
		DisplayName: "Rename files",
		Options: []recipe.Option{
			{Name: "find", Value: r.opts["find"]},
			{Name: "replace", Value: r.opts["replace"]},
		},
	}
}

func (r *rename) pattern() (*regexp.Regexp, error) {
	if r.opts["find"] == "" {
		return nil, errors.New(`requires a "find" option`)
	}
	return regexp.Compile(r.opts["find"])
}

func (r *rename) Validate() error {
	_, err := r.pattern()
	return err
}

func (r *rename) Apply(ctx context.Context, sources []*snapshot.Snapshot) []*results.Result {
	re, err := r.pattern()
	if err != nil {
		return nil
	}

	taken := make(map[string]bool, len(sources))
	for _, s := range sources {
		taken[s.Path] = true
	}

	var out []*results.Result
	for _, s := range sources {
		newPath := re.ReplaceAllString(s.Path, r.opts["replace"])
		if newPath == s.Path {
			continue
		}
		if taken[newPath] {
			slog.Warn("rename target already exists, skipping", "from", s.Path, "to", newPath)
			continue
		}
		taken[newPath] = true
		out = append(out, &results.Result{
			Before:  s,
			After:   &snapshot.Snapshot{Path: newPath, Root: s.Root},
			Recipes: []string{r.name},
		})
	}
	return out
}
