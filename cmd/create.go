package cmd

import (
	"github.com/spf13/cobra"

	"github.com/danielolaszy/issuer/internal/importer"
	"github.com/danielolaszy/issuer/internal/logging"
)

// newCreateCmd returns the command that creates GitHub issues from the review document.
func newCreateCmd() *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create GitHub issues from the review document",
		Long: `Create one GitHub issue per "### Issue N:" section of the review document.

Only issues numbered between --start and --end (inclusive) are processed.
By default this is a dry run that only prints what would be created; pass
--dry-run=false or set DRY_RUN=false to create issues.

In live mode GITHUB_TOKEN and GITHUB_REPOSITORY are required. Labels missing
from the repository are created before the issue that uses them. A failure
to create one issue is reported and the remaining issues are still created.

Example:
  DRY_RUN=false START_ISSUE=1 END_ISSUE=5 issuer create`,
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

			report := importer.NewReport(cmd.OutOrStdout())
			report.Configuration(cfg.DryRun, cfg.StartIssue, cfg.EndIssue)

			run, err := loadDocument(cfg)
			if err != nil {
				return err
			}

			report.Parsed(len(run.doc.Issues), sourceName(cfg.IssuesFile))
			report.Selected(len(run.filtered), cfg.StartIssue, cfg.EndIssue)

			logging.Info("starting import",
				"dry_run", cfg.DryRun,
				"repository", cfg.GitHub.Repository,
				"parsed", len(run.doc.Issues),
				"selected", len(run.filtered))

			im := importer.New(tracker, cmd.OutOrStdout(), importer.Options{
				DryRun:     cfg.DryRun,
				Repository: cfg.GitHub.Repository,
				RelatedTo:  run.doc.Meta.RelatedTo,
				LabelColor: run.doc.Meta.LabelColor,
			})
			_, err = im.Run(cmd.Context(), run.filtered)
			return err
		},
	}

	createCmd.Flags().Bool("dry-run", true, "only report what would be created (env DRY_RUN)")

	return createCmd
}
