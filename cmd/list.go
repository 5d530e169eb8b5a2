package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newListCmd returns the command that prints the parsed issues.
func newListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the issues parsed from the review document",
		Long: `List the issues in the selected range exactly as they were parsed.

Use --output yaml to get every field, for example to check that a section
was recognised before running create. Sections that do not follow the
expected layout are not listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			run, err := loadDocument(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch output {
			case "yaml":
				encoder := yaml.NewEncoder(out)
				encoder.SetIndent(2)
				if err := encoder.Encode(run.filtered); err != nil {
					return fmt.Errorf("failed to encode issues: %w", err)
				}
				return encoder.Close()
			case "table":
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NUMBER\tTITLE\tLABELS\tEFFORT")
				for _, issue := range run.filtered {
					fmt.Fprintf(w, "#%d\t%s\t%s\t%s\n", issue.Number, issue.Title, strings.Join(issue.Labels, ", "), issue.Effort)
				}
				return w.Flush()
			default:
				return fmt.Errorf("unsupported output format %q, expected table or yaml", output)
			}
		},
	}

	listCmd.Flags().StringP("output", "o", "table", "output format: table or yaml")

	return listCmd
}
