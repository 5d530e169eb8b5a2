// Package reviewdoc parses code review follow-up documents into issue records
// and renders those records into tracker issue bodies.
package reviewdoc

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/danielolaszy/issuer/internal/logging"
	"github.com/danielolaszy/issuer/pkg/models"
)

const (
	// DefaultRelatedTo is the footer tag attached to every rendered body.
	DefaultRelatedTo = "Code Review 2025-10-24"
	// DefaultLabelColor is the colour used for labels the importer creates.
	DefaultLabelColor = "0366d6"
)

// sectionPattern matches one complete issue section. Block fields are lazy and
// end at the next blank line followed by a field label.
var sectionPattern = regexp.MustCompile(`(?s)### Issue (\d+): ([^\n]+)\n` +
	`\*\*Title\*\*: ([^\n]+)\n\n` +
	`\*\*Description\*\*:\n(.*?)\n\n` +
	`\*\*Goals\*\*:\n(.*?)\n\n` +
	`\*\*Files to modify\*\*:\n(.*?)\n\n` +
	`\*\*Acceptance Criteria\*\*:\n(.*?)\n\n` +
	`\*\*Labels\*\*: ([^\n]+)\n` +
	`\*\*Estimated effort\*\*: ([^\n]+)`)

var labelColorPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// Meta holds the optional front matter of a review document.
type Meta struct {
	RelatedTo  string `yaml:"related_to"`
	LabelColor string `yaml:"label_color"`
}

// Document is a parsed review document.
type Document struct {
	Meta   Meta
	Issues []models.ReviewIssue
}

// Load reads and parses the review document at path.
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read review document %s: %w", path, err)
	}

	doc, err := ParseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse review document %s: %w", path, err)
	}

	logging.Debug("loaded review document",
		"path", path,
		"issue_count", len(doc.Issues),
		"related_to", doc.Meta.RelatedTo)

	return doc, nil
}

// ParseDocument reads optional YAML front matter from content, applies
// defaults to it and parses the markdown into issue records. A leading block
// that is not a YAML mapping is treated as ordinary markdown. Front matter never
// contains sections, so issues are always taken from the whole text.
func ParseDocument(content []byte) (*Document, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	var meta Meta
	if _, err := frontmatter.Parse(bytes.NewReader(content), &meta); err != nil {
		logging.Warn("ignoring unreadable front matter", "error", err)
		meta = Meta{}
	}

	meta.RelatedTo = strings.TrimSpace(meta.RelatedTo)
	if meta.RelatedTo == "" {
		meta.RelatedTo = DefaultRelatedTo
	}
	meta.LabelColor = strings.TrimPrefix(strings.TrimSpace(meta.LabelColor), "#")
	if meta.LabelColor == "" {
		meta.LabelColor = DefaultLabelColor
	}

	err := validation.ValidateStruct(&meta,
		validation.Field(&meta.LabelColor, validation.Match(labelColorPattern).Error("must be a 6 digit hex colour")),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid front matter: %w", err)
	}

	return &Document{
		Meta:   meta,
		Issues: Parse(string(content)),
	}, nil
}

// Parse extracts every well-formed issue section from text in document order.
// Text outside sections and sections that do not match the full layout are
// ignored. The result is never nil.
func Parse(text string) []models.ReviewIssue {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	issues := []models.ReviewIssue{}
	for _, match := range sectionPattern.FindAllStringSubmatch(text, -1) {
		number, err := strconv.Atoi(match[1])
		if err != nil {
			logging.Debug("skipping section with unusable number", "number", match[1], "error", err)
			continue
		}

		issues = append(issues, models.ReviewIssue{
			Number:      number,
			ShortTitle:  strings.TrimSpace(match[2]),
			Title:       strings.TrimSpace(match[3]),
			Description: strings.TrimSpace(match[4]),
			Goals:       strings.TrimSpace(match[5]),
			Files:       strings.TrimSpace(match[6]),
			Acceptance:  strings.TrimSpace(match[7]),
			Labels:      SplitLabels(match[8]),
			Effort:      strings.TrimSpace(match[9]),
		})
	}

	return issues
}

// SplitLabels splits a comma separated label line. Each name is trimmed and
// empty names are dropped. Order and duplicates are kept.
func SplitLabels(line string) []string {
	labels := []string{}
	for _, part := range strings.Split(line, ",") {
		if name := strings.TrimSpace(part); name != "" {
			labels = append(labels, name)
		}
	}
	return labels
}
