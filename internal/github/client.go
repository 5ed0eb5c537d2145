// Package github implements the small slice of the GitHub Contents API used
// to commit the gallery document to the canonical repository.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/giralt/sitecms/internal/apperr"
)

const defaultBaseURL = "https://api.github.com"

// Client is a minimal GitHub Contents API client.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient creates a client authenticating with the given token.
func NewClient(token string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		// Bounded timeout so a hung API call cannot block an admin
		// request indefinitely.
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a fake API.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type contentsResponse struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

func splitRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("github: repo must be owner/name, got %q", repo)
	}
	return owner, name, nil
}

func (c *Client) contentsURL(owner, name, path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, name, url.PathEscape(path))
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")
	return c.httpc.Do(req)
}

// FileSHA returns the version identifier of the blob at path on branch.
// A 404 maps to apperr.ErrNotFound, meaning the file does not exist yet and
// the subsequent write will create it.
func (c *Client) FileSHA(ctx context.Context, repo, branch, path string) (string, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return "", err
	}
	u := c.contentsURL(owner, name, path) + "?ref=" + url.QueryEscape(branch)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("github: build request: %w", err)
	}
	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("github: get contents: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", apperr.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", apiError("get contents", resp)
	}

	var body contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("github: decode contents: %w", err)
	}
	return body.SHA, nil
}

// PutFile creates or updates the blob at path on branch. contentB64 is the
// base64-encoded file content; sha is the current version identifier and
// must be empty when creating. A stale sha maps to apperr.ErrConflict.
func (c *Client) PutFile(ctx context.Context, repo, branch, path, message, contentB64, sha string) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(putRequest{
		Message: message,
		Content: contentB64,
		Branch:  branch,
		SHA:     sha,
	})
	if err != nil {
		return fmt.Errorf("github: marshal put: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(owner, name, path), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("github: build request: %w", err)
	}
	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("github: put contents: %w", err)
	}
	defer resp.Body.Close()

	switch {
	// 409 and 422 both signal a stale or missing sha.
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("github: put contents: %w", apperr.ErrConflict)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apiError("put contents", resp)
	}
	return nil
}

func apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return fmt.Errorf("github: %s: status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
}
