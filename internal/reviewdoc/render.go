package reviewdoc

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/danielolaszy/issuer/pkg/models"
)

// RenderBody builds the tracker issue body for issue. relatedTo is written in
// the footer; an empty value falls back to DefaultRelatedTo.
func RenderBody(issue models.ReviewIssue, relatedTo string) string {
	if relatedTo == "" {
		relatedTo = DefaultRelatedTo
	}

	return fmt.Sprintf(`## Description

%s

## Goals

%s

## Files to modify

%s

## Acceptance Criteria

%s

---
**Estimated Effort**: %s
**Related to**: %s
`, issue.Description, issue.Goals, issue.Files, issue.Acceptance, issue.Effort, relatedTo)
}

var htmlRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts a rendered markdown body into HTML the way GitHub
// flavoured markdown would display it.
func RenderHTML(body string) (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}
