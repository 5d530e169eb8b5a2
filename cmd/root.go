// Package cmd provides the command-line interface for the issuer CLI tool.
package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/issuer/internal/config"
	"github.com/danielolaszy/issuer/internal/github"
	"github.com/danielolaszy/issuer/internal/importer"
	"github.com/danielolaszy/issuer/internal/reviewdoc"
	"github.com/danielolaszy/issuer/pkg/models"
)

// newTracker builds the tracker used by live runs. Tests replace it.
var newTracker = func(cfg config.GitHubConfig) (importer.Tracker, error) {
	client, err := github.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// NewRootCmd builds the issuer command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "issuer",
		Short: "Issuer files code review follow-ups as GitHub issues",
		Long: `Issuer is a CLI tool that reads a code review follow-up document
(CODE_REVIEW_ISSUES.md) and creates one GitHub issue per "### Issue N:" section.

Configuration is read from the environment (DRY_RUN, START_ISSUE, END_ISSUE,
GITHUB_TOKEN, GITHUB_REPOSITORY, GITHUB_DOMAIN, ISSUES_FILE, LOG_LEVEL) and can
be overridden with flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags that will be available to all commands
	rootCmd.PersistentFlags().StringP("file", "f", config.DefaultIssuesFile, "review document to read (env ISSUES_FILE)")
	rootCmd.PersistentFlags().Int("start", 1, "first issue number to include (env START_ISSUE)")
	rootCmd.PersistentFlags().Int("end", 20, "last issue number to include (env END_ISSUE)")
	rootCmd.PersistentFlags().StringP("repository", "r", "", "GitHub repository name, e.g. 'owner/repo' (env GITHUB_REPOSITORY)")

	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newLabelsCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newPreviewCmd())

	return rootCmd
}

// Execute builds the command tree and runs it.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// loadRun is the shared first half of every command: configuration, the
// parsed document and the issues in the configured range.
type loadRun struct {
	cfg      *config.Config
	doc      *reviewdoc.Document
	filtered []models.ReviewIssue
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func loadDocument(cfg *config.Config) (*loadRun, error) {
	doc, err := reviewdoc.Load(cfg.IssuesFile)
	if err != nil {
		return nil, err
	}

	return &loadRun{
		cfg:      cfg,
		doc:      doc,
		filtered: importer.Filter(doc.Issues, cfg.StartIssue, cfg.EndIssue),
	}, nil
}

// liveTracker validates the live configuration and builds a tracker. It
// returns nil in dry-run mode.
func liveTracker(cfg *config.Config) (importer.Tracker, error) {
	if cfg.DryRun {
		return nil, nil
	}

	if err := config.ValidateLiveConfig(cfg); err != nil {
		return nil, err
	}

	tracker, err := newTracker(cfg.GitHub)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GitHub client: %w", err)
	}
	return tracker, nil
}

func sourceName(path string) string {
	return filepath.Base(path)
}
