// Package models defines data structures shared across the application.
package models

// ReviewIssue represents one follow-up issue parsed from a code review document.
type ReviewIssue struct {
	// Number is the issue number within the review document (e.g., 7 from "### Issue 7: ...")
	Number int `yaml:"number"`

	// ShortTitle is the text following the number in the section heading
	ShortTitle string `yaml:"short_title"`

	// Title is the title the tracker issue is created with
	Title string `yaml:"title"`

	// Description is the free-form problem statement
	Description string `yaml:"description"`

	// Goals lists what the follow-up work should achieve
	Goals string `yaml:"goals"`

	// Files lists the files expected to change
	Files string `yaml:"files"`

	// Acceptance holds the acceptance criteria
	Acceptance string `yaml:"acceptance"`

	// Labels is an ordered slice of label names to attach to the issue
	Labels []string `yaml:"labels"`

	// Effort is the estimated effort string (e.g., "2-3 days")
	Effort string `yaml:"effort"`
}

// CreatedIssue represents an issue the tracker accepted.
type CreatedIssue struct {
	// Number is the issue number assigned by GitHub
	Number int

	// URL is the browser URL of the created issue
	URL string
}
