package recipes

import (
	"context"
	"errors"
	"regexp"

	"refit/internal/recipe"
	"refit/internal/results"
	"refit/internal/snapshot"
)

func init() {
	register("text.findAndReplace", newFindAndReplace, recipe.Descriptor{
		Name:        "text.findAndReplace",
		DisplayName: "Find and replace text",
		Options: []recipe.Option{
			{Name: "find"},
			{Name: "replace"},
			{Name: "regex"},
			{Name: "filePattern"},
		},
	})
}

// findAndReplace rewrites every occurrence of find with replace. With
// regex: "true" the find option is a regular expression and replace may use
// $1-style group references; otherwise both are literal strings.
type findAndReplace struct {
	name string
	opts map[string]string
}

func newFindAndReplace(name string, opts map[string]string) recipe.Recipe {
	return &findAndReplace{name: name, opts: opts}
}

func (f *findAndReplace) Name() string { return f.name }

func (f *findAndReplace) Descriptor() recipe.Descriptor {
	return recipe.Descriptor{
		Name:        f.name,
		DisplayName: "Find and replace text",
		Options: []recipe.Option{
			{Name: "find", Value: f.opts["find"]},
			{Name: "replace", Value: f.opts["replace"]},
			{Name: "regex", Value: f.opts["regex"]},
			{Name: "filePattern", Value: f.opts["filePattern"]},
		},
	}
}

func (f *findAndReplace) isRegex() bool { return f.opts["regex"] == "true" }

func (f *findAndReplace) pattern() (*regexp.Regexp, error) {
	if f.opts["find"] == "" {
		return nil, errors.New(`requires a "find" option`)
	}
	if f.isRegex() {
		return regexp.Compile(f.opts["find"])
	}
	return regexp.Compile(regexp.QuoteMeta(f.opts["find"]))
}

func (f *findAndReplace) Validate() error {
	if _, err := f.pattern(); err != nil {
		return err
	}
	return validateFilePattern(f.opts["filePattern"])
}

func (f *findAndReplace) Apply(ctx context.Context, sources []*snapshot.Snapshot) []*results.Result {
	re, err := f.pattern()
	if err != nil {
		return nil
	}

	var out []*results.Result
	for _, s := range sources {
		if ok, err := matchFile(f.opts["filePattern"], s.Path); err != nil || !ok {
			continue
		}
		text := s.Print(snapshot.PlainPrinter{})
		var replaced string
		if f.isRegex() {
			replaced = re.ReplaceAllString(text, f.opts["replace"])
		} else {
			replaced = re.ReplaceAllLiteralString(text, f.opts["replace"])
		}
		if replaced == text {
			continue
		}
		out = append(out, &results.Result{
			Before:  s,
			After:   snapshot.New(s.Path, replaced),
			Recipes: []string{f.name},
		})
	}
	return out
}
