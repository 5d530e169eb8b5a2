// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultIssuesFile is the review document read when ISSUES_FILE is not set.
const DefaultIssuesFile = "code-reviews/2025-10-24-comprehensive-review/CODE_REVIEW_ISSUES.md"

// Config holds all configuration parameters for the application.
type Config struct {
	DryRun     bool
	StartIssue int
	EndIssue   int
	IssuesFile string
	GitHub     GitHubConfig
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token      string
	Repository string
	Domain     string
}

// flagKeys maps command line flag names onto configuration keys.
var flagKeys = map[string]string{
	"dry-run":    "dry_run",
	"start":      "start_issue",
	"end":        "end_issue",
	"file":       "issues_file",
	"repository": "github.repository",
}

// LoadConfig initializes and loads configuration from environment variables.
// Flags present in flags override the environment when they were set on the
// command line; flags may be nil.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	// Initialize Viper for environment variables
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map specific environment variables
	v.BindEnv("dry_run", "DRY_RUN")
	v.BindEnv("start_issue", "START_ISSUE")
	v.BindEnv("end_issue", "END_ISSUE")
	v.BindEnv("issues_file", "ISSUES_FILE")
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.repository", "GITHUB_REPOSITORY")
	v.BindEnv("github.domain", "GITHUB_DOMAIN")

	v.SetDefault("dry_run", "true")
	v.SetDefault("start_issue", "1")
	v.SetDefault("end_issue", "20")
	v.SetDefault("issues_file", DefaultIssuesFile)
	v.SetDefault("github.domain", "github.com")

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	start, err := parseIssueNumber("START_ISSUE", v.GetString("start_issue"))
	if err != nil {
		return nil, err
	}
	end, err := parseIssueNumber("END_ISSUE", v.GetString("end_issue"))
	if err != nil {
		return nil, err
	}

	// Create config structure
	config := &Config{
		DryRun:     ParseDryRun(v.GetString("dry_run")),
		StartIssue: start,
		EndIssue:   end,
		IssuesFile: v.GetString("issues_file"),
		GitHub: GitHubConfig{
			Token:      strings.TrimSpace(v.GetString("github.token")),
			Repository: strings.TrimSpace(v.GetString("github.repository")),
			Domain:     strings.TrimSpace(v.GetString("github.domain")),
		},
	}

	if config.GitHub.Domain == "" {
		config.GitHub.Domain = "github.com"
	}

	return config, nil
}

// ParseDryRun reports whether value selects dry-run mode. Only "true" (in any
// case) does; an empty value means the variable was not provided.
func ParseDryRun(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	return strings.EqualFold(value, "true")
}

func parseIssueNumber(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, value)
	}
	return n, nil
}

// ValidateLiveConfig ensures the values needed to talk to GitHub are present.
// It is only required when the importer is not in dry-run mode.
func ValidateLiveConfig(config *Config) error {
	var missingVars []string

	// GitHub validation
	if config.GitHub.Token == "" {
		missingVars = append(missingVars, "GITHUB_TOKEN")
	}
	if config.GitHub.Repository == "" {
		missingVars = append(missingVars, "GITHUB_REPOSITORY")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}
