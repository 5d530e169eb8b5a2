// Package importer turns parsed review issues into GitHub issues.
//
// A run is strictly sequential: the repository's labels are listed once, then
// every issue gets its missing labels created followed by the issue itself.
// A failed issue is reported and skipped; label failures end the run.
package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/danielolaszy/issuer/internal/logging"
	"github.com/danielolaszy/issuer/internal/reviewdoc"
	"github.com/danielolaszy/issuer/pkg/models"
)

// Tracker is the issue tracker API the importer talks to.
type Tracker interface {
	ListLabels(ctx context.Context, repository string) ([]string, error)
	CreateLabel(ctx context.Context, repository, name, color string) error
	CreateIssue(ctx context.Context, repository, title, body string, labels []string) (*models.CreatedIssue, error)
}

// Options controls a run.
type Options struct {
	// DryRun reports what would be created without calling the tracker.
	DryRun bool
	// Repository is the "owner/repo" target; unused in dry-run mode.
	Repository string
	// RelatedTo is the footer tag of every issue body.
	RelatedTo string
	// LabelColor is the hex colour of labels the importer creates.
	LabelColor string
}

// Summary describes the outcome of a run.
type Summary struct {
	DryRun        bool
	Filtered      int
	Created       []models.CreatedIssue
	Failed        []int
	LabelsCreated []string
}

// Importer creates tracker issues from review issues.
type Importer struct {
	tracker Tracker
	opts    Options
	report  *Report
}

// New returns an Importer writing its console report to out. tracker may be
// nil when opts.DryRun is set.
func New(tracker Tracker, out io.Writer, opts Options) *Importer {
	if opts.LabelColor == "" {
		opts.LabelColor = reviewdoc.DefaultLabelColor
	}
	if opts.RelatedTo == "" {
		opts.RelatedTo = reviewdoc.DefaultRelatedTo
	}
	return &Importer{
		tracker: tracker,
		opts:    opts,
		report:  NewReport(out),
	}
}

// Filter returns the issues numbered within [start, end], in their original order.
func Filter(issues []models.ReviewIssue, start, end int) []models.ReviewIssue {
	filtered := []models.ReviewIssue{}
	for _, issue := range issues {
		if start <= issue.Number && issue.Number <= end {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// Run processes issues in order and prints the per-issue report and the
// final summary. The returned error is non-nil only when listing or creating
// labels fails; the summary then covers the issues handled so far.
func (im *Importer) Run(ctx context.Context, issues []models.ReviewIssue) (*Summary, error) {
	summary := &Summary{
		DryRun:   im.opts.DryRun,
		Filtered: len(issues),
	}

	warnInvalid(issues)

	var known map[string]bool
	if !im.opts.DryRun {
		if im.tracker == nil {
			return summary, fmt.Errorf("no tracker configured for live run")
		}

		var err error
		known, err = im.existingLabels(ctx)
		if err != nil {
			return summary, err
		}
	}

	for _, issue := range issues {
		body := reviewdoc.RenderBody(issue, im.opts.RelatedTo)

		im.report.Issue(issue, im.opts.DryRun)

		if im.opts.DryRun {
			im.report.WouldCreate(issue.Title)
			continue
		}

		for _, label := range issue.Labels {
			if known[label] {
				continue
			}
			im.report.CreatingLabel(label)
			if err := im.tracker.CreateLabel(ctx, im.opts.Repository, label, im.opts.LabelColor); err != nil {
				return summary, fmt.Errorf("create label %q for issue %d: %w", label, issue.Number, err)
			}
			known[label] = true
			summary.LabelsCreated = append(summary.LabelsCreated, label)
		}

		created, err := im.tracker.CreateIssue(ctx, im.opts.Repository, issue.Title, body, issue.Labels)
		if err != nil {
			logging.Error("failed to create issue",
				"issue_number", issue.Number,
				"repository", im.opts.Repository,
				"error", err)
			im.report.CreateFailed(err)
			summary.Failed = append(summary.Failed, issue.Number)
			continue
		}

		im.report.Created(created)
		summary.Created = append(summary.Created, *created)
	}

	im.report.Summary(summary)

	logging.Info("import complete",
		"dry_run", summary.DryRun,
		"filtered", summary.Filtered,
		"created", len(summary.Created),
		"failed", len(summary.Failed),
		"labels_created", len(summary.LabelsCreated))

	return summary, nil
}

// EnsureLabels makes sure every label used by issues exists on the repository
// without creating any issue. It returns the labels that were (or in dry-run
// mode would have been) considered, in first-seen order.
func (im *Importer) EnsureLabels(ctx context.Context, issues []models.ReviewIssue) ([]string, error) {
	labels := collectLabels(issues)

	if im.opts.DryRun {
		for _, label := range labels {
			im.report.WouldEnsureLabel(label)
		}
		im.report.LabelSummary(0, len(labels), true)
		return labels, nil
	}

	if im.tracker == nil {
		return nil, fmt.Errorf("no tracker configured for live run")
	}

	known, err := im.existingLabels(ctx)
	if err != nil {
		return nil, err
	}

	created := 0
	for _, label := range labels {
		if known[label] {
			logging.Debug("label already exists", "label", label)
			continue
		}
		im.report.CreatingLabel(label)
		if err := im.tracker.CreateLabel(ctx, im.opts.Repository, label, im.opts.LabelColor); err != nil {
			return nil, fmt.Errorf("create label %q: %w", label, err)
		}
		known[label] = true
		created++
	}

	im.report.LabelSummary(created, len(labels), false)
	return labels, nil
}

func (im *Importer) existingLabels(ctx context.Context) (map[string]bool, error) {
	names, err := im.tracker.ListLabels(ctx, im.opts.Repository)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}

	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
	}

	logging.Debug("existing labels", "repository", im.opts.Repository, "count", len(known))
	return known, nil
}

func collectLabels(issues []models.ReviewIssue) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, issue := range issues {
		for _, label := range issue.Labels {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	return labels
}

func warnInvalid(issues []models.ReviewIssue) {
	for _, issue := range issues {
		if err := reviewdoc.Validate(issue); err != nil {
			logging.Warn("issue is not well-formed",
				"issue_number", issue.Number,
				"problem", err)
		}
	}
}
