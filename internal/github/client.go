// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/danielolaszy/issuer/internal/config"
	"github.com/danielolaszy/issuer/internal/logging"
	"github.com/danielolaszy/issuer/pkg/models"
)

// Client encapsulates the GitHub API client.
type Client struct {
	client *github.Client
}

// APIURL returns the REST API base URL for a GitHub domain. An empty domain
// means github.com; anything else is treated as GitHub Enterprise.
func APIURL(domain string) string {
	if domain == "" || domain == "github.com" {
		return "https://api.github.com/"
	}
	return fmt.Sprintf("https://%s/api/v3/", domain)
}

// NewClient creates a new GitHub API client authenticated with the configured
// token and pointed at the configured domain.
func NewClient(cfg config.GitHubConfig) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("github token not found in configuration")
	}

	apiURL := APIURL(cfg.Domain)

	logging.Info("github configuration",
		"domain", cfg.Domain,
		"api_url", apiURL,
		"token", logging.MaskSensitive(cfg.Token))

	// Create the oauth2 client
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	return newClient(tc, apiURL)
}

// newClient wraps httpClient in a go-github client talking to apiURL.
func newClient(httpClient *http.Client, apiURL string) (*Client, error) {
	client := github.NewClient(httpClient)

	if apiURL != APIURL("") {
		parsedURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}
		if !strings.HasSuffix(parsedURL.Path, "/") {
			parsedURL.Path += "/"
		}

		client.BaseURL = parsedURL

		// For GitHub Enterprise, set the upload URL to the same endpoint
		client.UploadURL = parsedURL
	}

	return &Client{client: client}, nil
}

// splitRepository parses an "owner/repo" identifier.
func splitRepository(repository string) (string, string, error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format: %s, expected format: owner/repo", repository)
	}
	return parts[0], parts[1], nil
}

// ListLabels returns the names of every label defined on the repository.
// The repository should be in the format "owner/repo".
func (c *Client) ListLabels(ctx context.Context, repository string) ([]string, error) {
	owner, repo, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}

	opts := &github.ListOptions{PerPage: 100}

	var names []string
	for {
		labels, resp, err := c.client.Issues.ListLabels(ctx, owner, repo, opts)
		if err != nil {
			logging.Error("failed to fetch github labels", "repository", repository, "error", err)
			return nil, fmt.Errorf("failed to fetch labels for %s: %w", repository, err)
		}

		for _, label := range labels {
			names = append(names, label.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.Debug("retrieved repository labels", "repository", repository, "number_of_labels", len(names))
	return names, nil
}

// CreateLabel creates a label with the given hex colour (without '#').
// The repository should be in the format "owner/repo".
func (c *Client) CreateLabel(ctx context.Context, repository, name, color string) error {
	owner, repo, err := splitRepository(repository)
	if err != nil {
		return err
	}

	logging.Debug("creating label", "repository", repository, "label", name, "color", color)

	_, _, err = c.client.Issues.CreateLabel(ctx, owner, repo, &github.Label{
		Name:  github.String(name),
		Color: github.String(color),
	})
	if err != nil {
		logging.Error("error creating label", "repository", repository, "label", name, "error", err)
		return fmt.Errorf("failed to create label %q in %s: %w", name, repository, err)
	}

	return nil
}

// CreateIssue opens a new issue and returns its number and URL.
// The repository should be in the format "owner/repo".
func (c *Client) CreateIssue(ctx context.Context, repository, title, body string, labels []string) (*models.CreatedIssue, error) {
	owner, repo, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}

	labelNames := append([]string{}, labels...)
	request := &github.IssueRequest{
		Title:  github.String(title),
		Body:   github.String(body),
		Labels: &labelNames,
	}

	issue, _, err := c.client.Issues.Create(ctx, owner, repo, request)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue in %s: %w", repository, err)
	}

	logging.Debug("created github issue",
		"repository", repository,
		"issue_number", issue.GetNumber(),
		"url", issue.GetHTMLURL())

	return &models.CreatedIssue{
		Number: issue.GetNumber(),
		URL:    issue.GetHTMLURL(),
	}, nil
}
