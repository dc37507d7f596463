// Package github fetches a user's repositories from the GitHub REST API and
// normalizes them into the shape the rest of the app works with.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const DefaultBaseURL = "https://api.github.com"

// acceptTopics negotiates topic metadata in the repository listing.
const acceptTopics = "application/vnd.github.mercy-preview+json"

// APIError is returned when the API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("github: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github: unexpected status %d", e.StatusCode)
}

type Client struct {
	http     *http.Client
	baseURL  *url.URL
	pageSize int
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= 100 {
			c.pageSize = n
		}
	}
}

func NewClient(opts ...Option) *Client {
	u, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		baseURL:  u,
		pageSize: 100,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FetchRepos performs exactly one call for up to one page of the user's own
// repositories, newest first. Retry policy belongs to the caller.
func (c *Client) FetchRepos(ctx context.Context, login string) ([]RawRepo, error) {
	u := c.baseURL.JoinPath("users", login, "repos")
	q := url.Values{
		"per_page": {strconv.Itoa(c.pageSize)},
		"sort":     {"updated"},
		"type":     {"owner"},
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", acceptTopics)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching repos for %s: %w", login, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			apiErr.Message = body.Message
		}
		return nil, apiErr
	}

	var raw []RawRepo
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding repos for %s: %w", login, err)
	}
	return raw, nil
}
