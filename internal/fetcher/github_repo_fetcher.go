package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const defaultGitHubBaseURL = "https://api.github.com"

// GitHubRepoFetcher fetches repository metadata from the GitHub REST API.
type GitHubRepoFetcher struct {
	Client  *http.Client
	Token   string
	BaseURL string // optional; defaults to "https://api.github.com"
}

// GitHubRepoResponse is the decoded response from GET /repos/:owner/:repo.
type GitHubRepoResponse struct {
	FullName    string         `json:"full_name"`
	HTMLURL     string         `json:"html_url"`
	Description string         `json:"description"`
	Stars       int            `json:"stargazers_count"`
	Forks       int            `json:"forks_count"`
	Watchers    int            `json:"watchers_count"`
	OpenIssues  int            `json:"open_issues_count"`
	Language    string         `json:"language"`
	Topics      []string       `json:"topics"`
	UpdatedAt   string         `json:"updated_at"`
	Archived    bool           `json:"archived"`
	License     *GitHubLicense `json:"license"`
	// SizeKB is the repository size reported by GitHub, in kilobytes.
	SizeKB int64 `json:"size"`
}

type GitHubLicense struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
}

// Fetch fetches the repository for owner/repo.
func (f *GitHubRepoFetcher) Fetch(ctx context.Context, owner, repo string) (*GitHubRepoResponse, error) {
	owner = strings.TrimSpace(owner)
	repo = strings.TrimSuffix(strings.TrimSpace(repo), ".git")
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("github repo requires owner and name, got %q/%q", owner, repo)
	}
	id := owner + "/" + repo
	logf(id, "GET /repos/%s", id)

	base := strings.TrimRight(strings.TrimSpace(f.BaseURL), "/")
	if base == "" {
		base = defaultGitHubBaseURL
	}
	u := fmt.Sprintf("%s/repos/%s/%s", base, url.PathEscape(owner), url.PathEscape(repo))

	var parsed GitHubRepoResponse
	if err := getJSON(ctx, f.Client, u, f.Token, ServiceGitHub, &parsed); err != nil {
		logf(id, "fetch failed (%v)", err)
		return nil, err
	}
	logf(id, "ok (stars=%d forks=%d)", parsed.Stars, parsed.Forks)
	return &parsed, nil
}
