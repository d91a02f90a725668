package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"refit/internal/config"
	"refit/internal/fsys"
	"refit/internal/pathutil"
	"refit/internal/recipe"
	"refit/internal/recipes"
	"refit/internal/report"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List the recipes available to activate",
	Long: `Discover lists the recipes declared in refit.yml with their configured
options, or the built-in recipe kinds when no recipes are declared.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg, err := config.LoadOrDefault(fsys.NewReal(), pathutil.ResolveConfig(flagConfig, cwd))
		if err != nil {
			return err
		}
		if err := recipes.Configure(recipe.Default(), cfg.Recipes); err != nil {
			return err
		}

		printer := report.NewPrinter()
		if ds := recipe.Default().Descriptors(); len(ds) > 0 {
			printer.PrintDescriptors(ds)
			return nil
		}
		printer.PrintDescriptors(recipes.Kinds())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}
