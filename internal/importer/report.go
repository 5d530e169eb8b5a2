package importer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/danielolaszy/issuer/pkg/models"
)

// Report writes the human readable progress of a run.
type Report struct {
	w       io.Writer
	success func(a ...interface{}) string
	failure func(a ...interface{}) string
	notice  func(a ...interface{}) string
}

// NewReport returns a Report writing to w. Colour is only used when w is a terminal.
func NewReport(w io.Writer) *Report {
	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed)
	notice := color.New(color.FgYellow, color.Bold)

	if !isTerminal(w) {
		success.DisableColor()
		failure.DisableColor()
		notice.DisableColor()
	}

	return &Report{
		w:       w,
		success: success.SprintFunc(),
		failure: failure.SprintFunc(),
		notice:  notice.SprintFunc(),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Report) printf(format string, a ...interface{}) {
	fmt.Fprintf(r.w, format, a...)
}

// Configuration prints the effective run configuration.
func (r *Report) Configuration(dryRun bool, start, end int) {
	r.printf("Configuration:\n")
	r.printf("  Dry run: %t\n", dryRun)
	r.printf("  Issue range: %d to %d\n\n", start, end)
}

// Parsed prints how many issues the document yielded.
func (r *Report) Parsed(count int, source string) {
	r.printf("Parsed %d issues from %s\n\n", count, source)
}

// Selected prints how many issues fall in the requested range.
func (r *Report) Selected(count, start, end int) {
	r.printf("Creating %d issues (range: %d-%d)\n\n", count, start, end)
}

// Issue prints the header block of one issue.
func (r *Report) Issue(issue models.ReviewIssue, dryRun bool) {
	prefix := ""
	if dryRun {
		prefix = r.notice("[DRY RUN]") + " "
	}
	r.printf("%sIssue #%d: %s\n", prefix, issue.Number, issue.Title)
	r.printf("  Labels: %s\n", strings.Join(issue.Labels, ", "))
	r.printf("  Effort: %s\n", issue.Effort)
}

// WouldCreate prints the dry-run line for an issue.
func (r *Report) WouldCreate(title string) {
	r.printf("  Would create issue with title: %s\n\n", title)
}

// CreatingLabel prints that a missing label is being created.
func (r *Report) CreatingLabel(name string) {
	r.printf("  Creating label: %s\n", name)
}

// WouldEnsureLabel prints the dry-run line for a label.
func (r *Report) WouldEnsureLabel(name string) {
	r.printf("%s Would ensure label: %s\n", r.notice("[DRY RUN]"), name)
}

// Created prints a successfully created issue.
func (r *Report) Created(issue *models.CreatedIssue) {
	r.printf("  %s Created issue #%d: %s\n\n", r.success("✓"), issue.Number, issue.URL)
}

// CreateFailed prints a failed issue creation.
func (r *Report) CreateFailed(err error) {
	r.printf("  %s Error creating issue: %v\n\n", r.failure("✗"), err)
}

// Summary prints the closing lines of a run.
func (r *Report) Summary(s *Summary) {
	r.printf("Done!\n")
	if s.DryRun {
		r.printf("\n%s\n", r.notice("This was a DRY RUN. No issues were created."))
		r.printf("To create issues, run this workflow again with dry_run=false\n")
		return
	}
	r.printf("\n%s Successfully created %d of %d issues\n", r.success("✓"), len(s.Created), s.Filtered)
}

// LabelSummary prints the closing line of a label sync.
func (r *Report) LabelSummary(created, total int, dryRun bool) {
	r.printf("Done!\n")
	if dryRun {
		r.printf("\n%s\n", r.notice("This was a DRY RUN. No labels were created."))
		return
	}
	r.printf("\n%s Created %d of %d labels (%d already existed)\n", r.success("✓"), created, total, total-created)
}
