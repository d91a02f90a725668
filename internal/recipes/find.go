package recipes

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"refit/internal/marker"
	"refit/internal/recipe"
	"refit/internal/results"
	"refit/internal/snapshot"
)

func init() {
	register("text.find", newFind, recipe.Descriptor{
		Name:        "text.find",
		DisplayName: "Find text",
		Options: []recipe.Option{
			{Name: "find"},
			{Name: "regex"},
			{Name: "filePattern"},
		},
	})
}

// find marks every occurrence of a literal string or regular expression with
// a search-result marker. It changes no text; the marked occurrences surface
// in dry-run diffs as fenced search results.
type find struct {
	name string
	opts map[string]string
}

func newFind(name string, opts map[string]string) recipe.Recipe {
	return &find{name: name, opts: opts}
}

func (f *find) Name() string { return f.name }

func (f *find) Descriptor() recipe.Descriptor {
	return recipe.Descriptor{
		Name:        f.name,
		DisplayName: "Find text",
		Options: []recipe.Option{
			{Name: "find", Value: f.opts["find"]},
			{Name: "regex", Value: f.opts["regex"]},
			{Name: "filePattern", Value: f.opts["filePattern"]},
		},
	}
}

func (f *find) pattern() (*regexp.Regexp, error) {
	if expr := f.opts["regex"]; expr != "" {
		return regexp.Compile(expr)
	}
	if f.opts["find"] == "" {
		return nil, errors.New(`requires a "find" or "regex" option`)
	}
	return regexp.Compile(regexp.QuoteMeta(f.opts["find"]))
}

func (f *find) Validate() error {
	if _, err := f.pattern(); err != nil {
		return err
	}
	return validateFilePattern(f.opts["filePattern"])
}

func (f *find) Apply(ctx context.Context, sources []*snapshot.Snapshot) []*results.Result {
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
		locs := re.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		out = append(out, &results.Result{
			Before:  s,
			After:   &snapshot.Snapshot{Path: s.Path, Root: markMatches(text, locs)},
			Recipes: []string{f.name},
		})
	}
	return out
}

// markMatches splits text into child nodes, attaching a search-result marker
// to each matched segment. Marker ids number the matches within the file.
func markMatches(text string, locs [][]int) *marker.Node {
	root := &marker.Node{}
	prev := 0
	for i, loc := range locs {
		if loc[0] > prev {
			root.Children = append(root.Children, &marker.Node{Text: text[prev:loc[0]]})
		}
		root.Children = append(root.Children, &marker.Node{
			Text:    text[loc[0]:loc[1]],
			Markers: []marker.Marker{{ID: fmt.Sprintf("%d", i+1), Kind: marker.KindSearchResult}},
		})
		prev = loc[1]
	}
	if prev < len(text) {
		root.Children = append(root.Children, &marker.Node{Text: text[prev:]})
	}
	return root
}
