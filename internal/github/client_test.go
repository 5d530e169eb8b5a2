package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/issuer/internal/config"
)

// newTestClient starts an httptest server around mux and returns a client
// pointed at it.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := newClient(server.Client(), server.URL+"/")
	require.NoError(t, err)
	return client
}

// TestAPIURL tests the logic that converts a domain to an API URL
func TestAPIURL(t *testing.T) {
	testCases := []struct {
		name           string
		domain         string
		expectedAPIURL string
	}{
		{
			name:           "Default GitHub.com",
			domain:         "github.com",
			expectedAPIURL: "https://api.github.com/",
		},
		{
			name:           "GitHub Enterprise",
			domain:         "github.example.com",
			expectedAPIURL: "https://github.example.com/api/v3/",
		},
		{
			name:           "Empty Domain (should default to github.com)",
			domain:         "",
			expectedAPIURL: "https://api.github.com/",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			apiURL := APIURL(tc.domain)
			assert.Equal(t, tc.expectedAPIURL, apiURL)

			parsedURL, err := url.Parse(apiURL)
			require.NoError(t, err)
			assert.Equal(t, apiURL, parsedURL.String())
		})
	}
}

func TestNewClient(t *testing.T) {
	t.Run("Missing token", func(t *testing.T) {
		client, err := NewClient(config.GitHubConfig{Repository: "owner/repo"})
		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("Enterprise domain", func(t *testing.T) {
		client, err := NewClient(config.GitHubConfig{Token: "test-token", Domain: "git.example.com"})
		require.NoError(t, err)
		assert.Equal(t, "https://git.example.com/api/v3/", client.client.BaseURL.String())
		assert.Equal(t, "https://git.example.com/api/v3/", client.client.UploadURL.String())
	})

	t.Run("Public GitHub", func(t *testing.T) {
		client, err := NewClient(config.GitHubConfig{Token: "test-token", Domain: "github.com"})
		require.NoError(t, err)
		assert.Equal(t, "https://api.github.com/", client.client.BaseURL.String())
	})
}

// TestRepositoryValidation tests that malformed repositories are rejected before any request
func TestRepositoryValidation(t *testing.T) {
	client := &Client{}
	ctx := context.Background()

	for _, repository := range []string{"invalid-repo-format", "owner/", "/repo", "a/b/c"} {
		t.Run(repository, func(t *testing.T) {
			_, err := client.ListLabels(ctx, repository)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid repository format")

			err = client.CreateLabel(ctx, repository, "bug", "0366d6")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid repository format")

			_, err = client.CreateIssue(ctx, repository, "title", "body", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid repository format")
		})
	}
}

func TestListLabelsPaginates(t *testing.T) {
	mux := http.NewServeMux()
	var serverURL string
	mux.HandleFunc("/repos/owner/repo/labels", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"name":"perf"}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/owner/repo/labels?per_page=100&page=2>; rel="next"`, serverURL))
		fmt.Fprint(w, `[{"name":"bug"},{"name":"needs-review"}]`)
	})

	server := httptest.NewServer(mux)
	defer server.Close()
	serverURL = server.URL

	client, err := newClient(server.Client(), server.URL+"/")
	require.NoError(t, err)

	labels, err := client.ListLabels(context.Background(), "owner/repo")
	require.NoError(t, err)
	assert.Equal(t, []string{"bug", "needs-review", "perf"}, labels)
}

func TestListLabelsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/labels", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})
	client := newTestClient(t, mux)

	labels, err := client.ListLabels(context.Background(), "owner/repo")
	assert.Error(t, err)
	assert.Nil(t, labels)
	assert.Contains(t, err.Error(), "failed to fetch labels for owner/repo")
}

func TestCreateLabel(t *testing.T) {
	mux := http.NewServeMux()
	var received map[string]any
	mux.HandleFunc("/repos/owner/repo/labels", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"name":"needs-review","color":"0366d6"}`)
	})
	client := newTestClient(t, mux)

	err := client.CreateLabel(context.Background(), "owner/repo", "needs-review", "0366d6")
	require.NoError(t, err)
	assert.Equal(t, "needs-review", received["name"])
	assert.Equal(t, "0366d6", received["color"])
}

func TestCreateLabelError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/labels", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Validation Failed"}`, http.StatusUnprocessableEntity)
	})
	client := newTestClient(t, mux)

	err := client.CreateLabel(context.Background(), "owner/repo", "bug", "0366d6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to create label "bug"`)
}

func TestCreateIssue(t *testing.T) {
	mux := http.NewServeMux()
	var received struct {
		Title  string   `json:"title"`
		Body   string   `json:"body"`
		Labels []string `json:"labels"`
	}
	mux.HandleFunc("/repos/owner/repo/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number":42,"html_url":"https://github.com/owner/repo/issues/42"}`)
	})
	client := newTestClient(t, mux)

	created, err := client.CreateIssue(context.Background(), "owner/repo", "Add timeouts", "## Description\n\nbody", []string{"bug", "perf"})
	require.NoError(t, err)

	assert.Equal(t, 42, created.Number)
	assert.Equal(t, "https://github.com/owner/repo/issues/42", created.URL)
	assert.Equal(t, "Add timeouts", received.Title)
	assert.Equal(t, "## Description\n\nbody", received.Body)
	assert.Equal(t, []string{"bug", "perf"}, received.Labels)
}

func TestCreateIssueError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/issues", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Issues are disabled for this repo"}`, http.StatusGone)
	})
	client := newTestClient(t, mux)

	created, err := client.CreateIssue(context.Background(), "owner/repo", "title", "body", nil)
	assert.Error(t, err)
	assert.Nil(t, created)
	assert.Contains(t, err.Error(), "failed to create issue in owner/repo")
}
