package cmd

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"refit/internal/apply"
	"refit/internal/fsys"
	"refit/internal/utils"
)

var dryRunCmd = &cobra.Command{
	Use:   "dry-run",
	Short: "Run the active recipes and write a patch file instead of changing sources",
	Long: `Dry-run performs the same discovery, loading and recipe application as
run, but never touches the source tree. The would-be changes are printed
as a report and written as a unified diff to the patch file, which can be
inspected or applied with git apply.

The patch file name is taken from patchFile in refit.yml and supports a
leading ~, strftime tokens such as %Y%m%d and the ${root} variable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, cfg, err := execute(cmd, fsys.NewDryRun())
		if err != nil {
			return err
		}
		if container == nil {
			return nil
		}

		patch := utils.Template(cfg.PatchFile).
			ExpandTilde().
			ExpandWithTime(time.Now()).
			ExpandVariables(map[string]string{"root": container.ProjectRoot}).
			String()
		if !filepath.IsAbs(patch) {
			patch = filepath.Join(container.ProjectRoot, patch)
		}

		written, err := apply.WritePatch(fsys.NewReal(), container, patch)
		if err != nil {
			return err
		}
		if written {
			slog.Info("patch file written", "path", patch)
		}
		return firstFailure(container)
	},
}

func init() {
	dryRunCmd.Flags().StringSliceVarP(&flagRecipes, "recipe", "r", nil, "Recipe to activate, in addition to the configured activeRecipes (repeatable)")
	rootCmd.AddCommand(dryRunCmd)
}
