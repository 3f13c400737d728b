// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package release

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGitHubURL(t *testing.T) {
	for _, url := range []string{
		"git@github.com:acme/tool.git",
		"https://github.com/acme/tool",
		"https://github.com/acme/tool.git",
		"ssh://git@github.com/acme/tool.git",
	} {
		got, err := NormalizeGitHubURL(url)
		require.NoError(t, err, url)
		assert.Equal(t, "acme/tool", got, url)
	}
	_, err := NormalizeGitHubURL("https://gitlab.com/acme/tool")
	assert.Error(t, err)
}

func TestNewGitHubClient_MissingToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	_, err := NewGitHubClient()
	assert.True(t, errors.Is(err, ErrMissingToken))

	t.Setenv("GITHUB_TOKEN", "secret")
	c, err := NewGitHubClient()
	require.NoError(t, err)
	assert.Equal(t, "secret", c.Token)
}

func TestCreateRelease(t *testing.T) {
	var got releaseRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/acme/tool/releases", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "nitrokit", r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"html_url":"https://github.com/acme/tool/releases/tag/v1.3.0"}`))
	}))
	defer srv.Close()

	c := &GitHubClient{Token: "secret", BaseURL: srv.URL, HTTP: srv.Client()}
	url, err := c.CreateRelease(context.Background(), "acme/tool", "v1.3.0-beta.1", "Release v1.3.0", "notes", true)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/tool/releases/tag/v1.3.0", url)
	assert.Equal(t, releaseRequest{TagName: "v1.3.0-beta.1", Name: "Release v1.3.0", Body: "notes", Prerelease: true}, got)
}

func TestCreateRelease_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Validation Failed"}`))
	}))
	defer srv.Close()

	c := &GitHubClient{Token: "secret", BaseURL: srv.URL}
	_, err := c.CreateRelease(context.Background(), "acme/tool", "v1.0.0", "v1.0.0", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validation Failed")

	empty := &GitHubClient{}
	_, err = empty.CreateRelease(context.Background(), "acme/tool", "v1.0.0", "v1.0.0", "", false)
	assert.ErrorIs(t, err, ErrMissingToken)
}
