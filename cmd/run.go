package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"refit/internal/apply"
	"refit/internal/config"
	"refit/internal/fsys"
	"refit/internal/pathutil"
	"refit/internal/project"
	"refit/internal/recipe"
	"refit/internal/recipes"
	"refit/internal/report"
	"refit/internal/results"
	"refit/internal/source"
)

var flagRecipes []string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the active recipes and apply their changes to disk",
	Long: `Run resolves the build root, loads source files across every discovered
module, runs the active recipes over them and applies the resulting
changes: generated files are written, deleted files removed, moved files
relocated and refactored files rewritten in place. Directories left empty
by deletes and moves are cleaned up afterwards.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := fsys.NewReal()
		container, _, err := execute(cmd, fs)
		if err != nil {
			return err
		}
		if container == nil {
			return nil
		}

		if err := apply.Changes(fs, container); err != nil {
			return err
		}
		for _, dir := range container.NewlyEmptyDirectories(fs) {
			slog.Info("removed newly empty directory", "dir", dir)
		}
		return firstFailure(container)
	},
}

func init() {
	runCmd.Flags().StringSliceVarP(&flagRecipes, "recipe", "r", nil, "Recipe to activate, in addition to the configured activeRecipes (repeatable)")
	rootCmd.AddCommand(runCmd)
}

// execute runs the shared half of run and dry-run: project discovery, build
// root resolution, configuration, source loading, recipe application and
// result classification. It prints the report and returns the classified
// container, or (nil, cfg, nil) when the run was an intentional no-op.
func execute(cmd *cobra.Command, fs afero.Fs) (*results.Container, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := config.LoadOrDefault(fs, pathutil.ResolveConfig(flagConfig, cwd))
	if err != nil {
		return nil, nil, err
	}
	if !cmd.Flags().Changed("log-level") && cfg.Logging.Level != "" {
		SetupLogging(cfg.Logging.Level)
	}

	session, err := project.Discover(fs, cwd, cfg.ModuleMarkers, cfg.LocalCache)
	if err != nil {
		return nil, nil, err
	}
	buildRoot, err := session.BuildRoot()
	if err != nil {
		return nil, nil, err
	}
	repoRoot := project.RepositoryRoot(fs, buildRoot)
	slog.Debug("resolved project roots", "buildRoot", buildRoot, "repositoryRoot", repoRoot)

	if err := recipes.Configure(recipe.Default(), cfg.Recipes); err != nil {
		return nil, nil, err
	}

	active := append(append([]string{}, cfg.ActiveRecipes...), flagRecipes...)
	run, err := recipe.Default().Activate(active)
	if err != nil {
		return nil, nil, err
	}
	if run.Empty() {
		slog.Warn("no recipes were activated; activate a recipe with --recipe or activeRecipes in refit.yml")
		return nil, cfg, nil
	}
	if failures := run.ValidateAll(); len(failures) > 0 {
		for _, f := range failures {
			slog.Error("recipe validation failed", "recipe", f.Recipe, "error", f.Err)
		}
		if cfg.FailOnInvalidActiveRecipes {
			return nil, nil, fmt.Errorf("%d recipe(s) failed validation", len(failures))
		}
	}

	sources, err := source.Load(fs, session, repoRoot, source.Options{
		Exclusions:      cfg.Exclusions,
		PlainTextMasks:  cfg.PlainTextMasks,
		SizeThresholdMB: cfg.SizeThresholdMb,
	})
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("loaded sources", "count", len(sources))

	raw, err := run.Apply(cmd.Context(), sources)
	if err != nil {
		return nil, nil, err
	}
	container := results.NewContainer(repoRoot, raw)

	printer := report.NewPrinter()
	printer.Lookup = recipe.Default().Lookup
	printer.Print(container)

	return container, cfg, nil
}

// firstFailure turns an error marker embedded in the results into a non-zero
// exit after all changes have been applied and reported.
func firstFailure(c *results.Container) error {
	if err := c.FirstError(); err != nil {
		return fmt.Errorf("one or more recipes reported a failure: %w", err)
	}
	return nil
}
