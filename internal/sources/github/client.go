package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linktracker/linktracker/internal/domain"
	"github.com/linktracker/linktracker/internal/logger"
	"github.com/linktracker/linktracker/internal/utils"
)

const acceptHeader = "application/vnd.github.v3+json"

// ClientOptions configures the GitHub API client.
type ClientOptions struct {
	BaseURL string        // ex: "https://api.github.com"
	Owner   string        // repository owner
	Repo    string        // repository name
	Token   string        // personal access token
	Timeout time.Duration // per-request timeout
	PerPage int           // page size when listing issues
}

// Client talks to the GitHub REST API for one fixed owner/repo.
// Every call is attempted exactly once; there is no retry or backoff.
type Client struct {
	baseURL string
	owner   string
	repo    string
	token   string
	perPage int
	http    *http.Client
	logger  logger.Logger
}

func NewClient(opts ClientOptions, log logger.Logger) *Client {
	if opts.PerPage <= 0 {
		opts.PerPage = 100
	}
	return &Client{
		baseURL: opts.BaseURL,
		owner:   opts.Owner,
		repo:    opts.Repo,
		token:   opts.Token,
		perPage: opts.PerPage,
		http:    &http.Client{Timeout: opts.Timeout},
		logger:  log,
	}
}

// do performs one authenticated request. A non-2xx status becomes an
// *APIError with the raw response text; network failures and invalid
// JSON on a 2xx become a *TransportError.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &TransportError{Err: fmt.Errorf("marshal request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", acceptHeader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("github request",
		logger.String("method", method),
		logger.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		c.logger.Warn("github request failed",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", resp.StatusCode))
		return &APIError{Status: resp.StatusCode, Body: string(text)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) repoPath(suffix string) string {
	return fmt.Sprintf("/repos/%s/%s%s", c.owner, c.repo, suffix)
}

// VerifyRepo checks the backing repository is reachable. Called once at
// startup; a failure is fatal for the process.
func (c *Client) VerifyRepo(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.repoPath(""), nil, &struct{}{})
}

// ListOpenIssues fetches all open issues, paging until a short page.
func (c *Client) ListOpenIssues(ctx context.Context) ([]Issue, error) {
	var all []Issue
	for page := 1; ; page++ {
		path := c.repoPath(fmt.Sprintf("/issues?state=open&per_page=%d&page=%d", c.perPage, page))
		var issues []Issue
		if err := c.do(ctx, http.MethodGet, path, nil, &issues); err != nil {
			return nil, err
		}
		all = append(all, issues...)
		if len(issues) < c.perPage {
			return all, nil
		}
	}
}

func (c *Client) CreateIssue(ctx context.Context, payload IssuePayload) (*Issue, error) {
	var issue Issue
	if err := c.do(ctx, http.MethodPost, c.repoPath("/issues"), payload, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *Client) UpdateIssue(ctx context.Context, number int, payload IssuePayload) (*Issue, error) {
	var issue Issue
	path := c.repoPath(fmt.Sprintf("/issues/%d", number))
	if err := c.do(ctx, http.MethodPatch, path, payload, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// CloseIssue transitions an issue to closed. This is how bookmarks are
// deleted; the issue stays in GitHub history.
func (c *Client) CloseIssue(ctx context.Context, number int) error {
	path := c.repoPath(fmt.Sprintf("/issues/%d", number))
	return c.do(ctx, http.MethodPatch, path, statePayload{State: "closed"}, &struct{}{})
}

func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	var labels []Label
	if err := c.do(ctx, http.MethodGet, c.repoPath("/labels"), nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func (c *Client) CreateLabel(ctx context.Context, name, color string) (*Label, error) {
	var label Label
	payload := labelPayload{Name: name, Color: color}
	if err := c.do(ctx, http.MethodPost, c.repoPath("/labels"), payload, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// FetchBookmarks lists all open issues and maps them to bookmarks.
// Implements the cache's Fetcher interface.
func (c *Client) FetchBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	issues, err := c.ListOpenIssues(ctx)
	if err != nil {
		return nil, err
	}
	bookmarks := make([]domain.Bookmark, 0, len(issues))
	for _, issue := range issues {
		bookmarks = append(bookmarks, IssueToBookmark(issue))
	}
	return bookmarks, nil
}
