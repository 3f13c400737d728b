// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package release

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nitrokit/nitrokit/internal/releasenotes"
)

const githubAPI = "https://api.github.com"

// NormalizeGitHubURL turns any GitHub remote form into "owner/repo".
func NormalizeGitHubURL(url string) (string, error) {
	repo := releasenotes.ParseRepository(url)
	if !repo.IsGitHub() || repo.Owner == "" || repo.Name == "" {
		return "", fmt.Errorf("not a GitHub repository: %s", url)
	}
	return repo.Owner + "/" + repo.Name, nil
}

// GitHubClient talks to the releases endpoint of the REST API.
type GitHubClient struct {
	Token   string
	BaseURL string
	HTTP    *http.Client
}

// NewGitHubClient reads GITHUB_TOKEN.
func NewGitHubClient() (*GitHubClient, error) {
	token := strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
	if token == "" {
		return nil, ErrMissingToken
	}
	return &GitHubClient{Token: token, BaseURL: githubAPI, HTTP: &http.Client{Timeout: 30 * time.Second}}, nil
}

type releaseRequest struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Body       string `json:"body"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

type releaseResponse struct {
	HTMLURL string `json:"html_url"`
	Message string `json:"message"`
}

// CreateRelease publishes tag on repo ("owner/name") and returns the
// release page URL.
func (c *GitHubClient) CreateRelease(ctx context.Context, repo, tag, name, body string, prerelease bool) (string, error) {
	if c.Token == "" {
		return "", ErrMissingToken
	}
	payload, err := json.Marshal(releaseRequest{TagName: tag, Name: name, Body: body, Prerelease: prerelease})
	if err != nil {
		return "", err
	}
	base := c.BaseURL
	if base == "" {
		base = githubAPI
	}
	endpoint := fmt.Sprintf("%s/repos/%s/releases", strings.TrimSuffix(base, "/"), repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "nitrokit")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("create release: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read release response: %w", err)
	}
	var out releaseResponse
	_ = json.Unmarshal(data, &out)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Message
		if msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		return "", fmt.Errorf("create release: %s: %s", resp.Status, msg)
	}
	return out.HTMLURL, nil
}
