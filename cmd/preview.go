package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/issuer/internal/reviewdoc"
)

// newPreviewCmd returns the command that prints one rendered issue body.
func newPreviewCmd() *cobra.Command {
	previewCmd := &cobra.Command{
		Use:   "preview NUMBER",
		Short: "Print the issue body that would be submitted for one issue",
		Long: `Print the GitHub issue body rendered for the issue with the given number.
The --start/--end range does not apply. Use --html to see the body as
GitHub flavoured markdown HTML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid issue number %q", args[0])
			}

			asHTML, err := cmd.Flags().GetBool("html")
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			doc, err := reviewdoc.Load(cfg.IssuesFile)
			if err != nil {
				return err
			}

			for _, issue := range doc.Issues {
				if issue.Number != number {
					continue
				}

				body := reviewdoc.RenderBody(issue, doc.Meta.RelatedTo)
				if asHTML {
					body, err = reviewdoc.RenderHTML(body)
					if err != nil {
						return err
					}
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "# %s\n\n", issue.Title)
				}
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}

			return fmt.Errorf("issue %d not found in %s", number, cfg.IssuesFile)
		},
	}

	previewCmd.Flags().Bool("html", false, "render the body as HTML")

	return previewCmd
}
