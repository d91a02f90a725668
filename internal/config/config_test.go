package config

import (
	"testing"

	"github.com/spf13/afero"
)

func TestLoadMergesOverDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	yaml := `
activeRecipes:
  - org.example.FormatImports
exclusions:
  - "vendor/**"
logging:
  level: debug
`
	if err := afero.WriteFile(fs, "/refit.yml", []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fs, "/refit.yml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.ActiveRecipes) != 1 || cfg.ActiveRecipes[0] != "org.example.FormatImports" {
		t.Errorf("ActiveRecipes = %v", cfg.ActiveRecipes)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Defaults survive for fields the file does not set.
	if cfg.SizeThresholdMb != 10 {
		t.Errorf("SizeThresholdMb = %d, want default 10", cfg.SizeThresholdMb)
	}
	if len(cfg.ModuleMarkers) == 0 {
		t.Error("ModuleMarkers default was lost")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := Load(fs, "/nope.yml"); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg, err := LoadOrDefault(fs, "/nope.yml")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.PatchFile != "refit.patch" {
		t.Errorf("PatchFile = %q, want default", cfg.PatchFile)
	}
}

func TestLoadRecipeDeclarations(t *testing.T) {
	fs := afero.NewMemMapFs()
	yaml := `
recipes:
  - name: fixSpelling
    kind: text.findAndReplace
    options:
      find: teh
      replace: the
activeRecipes:
  - fixSpelling
`
	if err := afero.WriteFile(fs, "/refit.yml", []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fs, "/refit.yml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Recipes) != 1 {
		t.Fatalf("Recipes = %v", cfg.Recipes)
	}
	decl := cfg.Recipes[0]
	if decl.Name != "fixSpelling" || decl.Kind != "text.findAndReplace" {
		t.Errorf("decl = %+v", decl)
	}
	if decl.Options["find"] != "teh" || decl.Options["replace"] != "the" {
		t.Errorf("Options = %v", decl.Options)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/refit.yml", []byte("activeRecipes: {broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(fs, "/refit.yml"); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}
