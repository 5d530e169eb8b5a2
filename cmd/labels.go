package cmd

import (
	"github.com/spf13/cobra"

	"github.com/danielolaszy/issuer/internal/importer"
	"github.com/danielolaszy/issuer/internal/logging"
)

// newLabelsCmd returns the command that prepares repository labels.
func newLabelsCmd() *cobra.Command {
	labelsCmd := &cobra.Command{
		Use:   "labels",
		Short: "Create the labels used by the review document",
		Long: `Create every label referenced by the issues in the selected range
that does not exist in the GitHub repository yet. No issues are created.

Labels are created with the document's label colour (0366d6 unless the
document's front matter sets label_color). Like create, this is a dry run
unless --dry-run=false or DRY_RUN=false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			tracker, err := liveTracker(cfg)
			if err != nil {
				return err
			}

			run, err := loadDocument(cfg)
			if err != nil {
				return err
			}

			im := importer.New(tracker, cmd.OutOrStdout(), importer.Options{
				DryRun:     cfg.DryRun,
				Repository: cfg.GitHub.Repository,
				LabelColor: run.doc.Meta.LabelColor,
			})

			labels, err := im.EnsureLabels(cmd.Context(), run.filtered)
			if err != nil {
				return err
			}

			logging.Info("labels synchronized",
				"repository", cfg.GitHub.Repository,
				"dry_run", cfg.DryRun,
				"labels", labels)
			return nil
		},
	}

	labelsCmd.Flags().Bool("dry-run", true, "only report which labels would be ensured (env DRY_RUN)")

	return labelsCmd
}
