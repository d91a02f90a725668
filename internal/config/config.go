// Package config loads refit's YAML configuration.
package config

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"refit/internal/pathutil"
)

// Config represents the top-level configuration.
type Config struct {
	// ActiveRecipes are applied in order. An empty list makes the run a
	// no-op.
	ActiveRecipes []string `yaml:"activeRecipes"`

	// Recipes declares configured instances of the built-in recipe kinds,
	// available for activation by name.
	Recipes []RecipeDecl `yaml:"recipes"`

	// ActiveStyles are style names passed through to the recipe engine.
	ActiveStyles []string `yaml:"activeStyles"`

	// Exclusions are doublestar patterns for files to leave out of the run.
	Exclusions []string `yaml:"exclusions"`

	// PlainTextMasks force-load files the binary detection would skip.
	PlainTextMasks []string `yaml:"plainTextMasks"`

	// SizeThresholdMb skips source files larger than this many megabytes.
	SizeThresholdMb int64 `yaml:"sizeThresholdMb"`

	// ModuleMarkers are the file names whose presence makes a directory a
	// module during project discovery.
	ModuleMarkers []string `yaml:"moduleMarkers"`

	// FailOnInvalidActiveRecipes aborts the run when an active recipe
	// fails validation instead of continuing with a logged error.
	FailOnInvalidActiveRecipes bool `yaml:"failOnInvalidActiveRecipes"`

	// LocalCache is the shared artifact cache directory; module base
	// directories under it never become the build root.
	LocalCache string `yaml:"localCache"`

	// PatchFile names the dry-run patch file. Supports strftime tokens
	// (for example refit-%Y%m%d.patch) and a leading ~.
	PatchFile string `yaml:"patchFile"`

	Logging LoggingConfig `yaml:"logging"`
}

// RecipeDecl declares one configured recipe instance: a built-in kind plus
// the option values it runs with. Name is what activeRecipes refers to and
// defaults to the kind.
type RecipeDecl struct {
	Name    string            `yaml:"name"`
	Kind    string            `yaml:"kind"`
	Options map[string]string `yaml:"options"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		SizeThresholdMb: 10,
		ModuleMarkers:   []string{"go.mod", "pom.xml", "build.gradle", "build.gradle.kts"},
		PatchFile:       "refit.patch",
		Logging:         LoggingConfig{Level: "info"},
	}
}

// Load reads and parses a configuration file, merging it over defaults.
func Load(fs afero.Fs, path string) (*Config, error) {
	expanded := pathutil.ExpandTilde(path)

	data, err := afero.ReadFile(fs, expanded)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", expanded, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", expanded, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the config file if it exists and falls back to
// defaults otherwise; configuration is optional.
func LoadOrDefault(fs afero.Fs, path string) (*Config, error) {
	expanded := pathutil.ExpandTilde(path)
	if ok, _ := afero.Exists(fs, expanded); !ok {
		return Default(), nil
	}
	return Load(fs, expanded)
}
