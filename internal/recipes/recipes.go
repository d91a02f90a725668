// Package recipes provides the built-in recipe kinds and builds configured
// instances of them from the recipes block of refit.yml. Each kind registers
// itself in an init function; Configure turns declarations into recipes and
// installs them in an environment.
package recipes

import (
	"fmt"
	"sort"

	"refit/internal/config"
	"refit/internal/recipe"
)

// Factory builds one configured instance of a recipe kind. The instance
// reports name as its Name() and validates its options in Validate.
type Factory func(name string, opts map[string]string) recipe.Recipe

type kind struct {
	factory    Factory
	descriptor recipe.Descriptor
}

var kinds = map[string]kind{}

// register adds a recipe kind. The descriptor is the unconfigured template
// shown by discover; option values stay empty until an instance is declared.
func register(name string, f Factory, d recipe.Descriptor) {
	if _, dup := kinds[name]; dup {
		panic(fmt.Sprintf("recipe kind %q registered twice", name))
	}
	kinds[name] = kind{factory: f, descriptor: d}
}

// Kinds lists the descriptors of every built-in recipe kind, sorted by name.
func Kinds() []recipe.Descriptor {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]recipe.Descriptor, 0, len(names))
	for _, name := range names {
		out = append(out, kinds[name].descriptor)
	}
	return out
}

// Configure builds every declared recipe instance and registers it in env.
// Unknown kinds and duplicate names are configuration errors; option
// validation is deferred to the environment's validation pass.
func Configure(env *recipe.Environment, decls []config.RecipeDecl) error {
	seen := make(map[string]bool, len(decls))
	for _, decl := range decls {
		k, ok := kinds[decl.Kind]
		if !ok {
			return fmt.Errorf("unknown recipe kind %q (declared as %q)", decl.Kind, decl.Name)
		}
		name := decl.Name
		if name == "" {
			name = decl.Kind
		}
		if seen[name] {
			return fmt.Errorf("recipe %q declared twice", name)
		}
		seen[name] = true
		env.Register(k.factory(name, decl.Options))
	}
	return nil
}
