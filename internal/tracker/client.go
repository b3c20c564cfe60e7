// Package tracker talks to the issue tracker's REST API.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrIssueNotFound indicates the issue key does not exist (or is not
// visible to the authenticated user).
var ErrIssueNotFound = errors.New("issue not found")

// Client communicates with the tracker HTTP API.
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	httpClient *http.Client
}

func NewClient(baseURL, email, apiToken string) *Client {
	return &Client{
		baseURL:  baseURL,
		email:    email,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchDescription retrieves the raw description tree of an issue. The
// returned value is the undecoded JSON shape and may be nil when the issue
// has no description.
func (c *Client) FetchDescription(ctx context.Context, issueKey string) (any, error) {
	u := c.baseURL + "/rest/api/3/issue/" + url.PathEscape(issueKey) + "?fields=description"
	resp, err := c.send(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch issue: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch issue %s: %w", issueKey, ErrIssueNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("fetch issue %s: status %d: %s", issueKey, resp.StatusCode, string(respBody))
	}

	var payload struct {
		Fields struct {
			Description any `json:"description"`
		} `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode issue %s: %w", issueKey, err)
	}
	return payload.Fields.Description, nil
}

// UpdateDescription writes the description tree back to the issue. With
// dryRun set, no request is made and the call succeeds.
func (c *Client) UpdateDescription(ctx context.Context, issueKey string, doc any, dryRun bool) error {
	if dryRun {
		return nil
	}
	body, err := json.Marshal(map[string]any{
		"fields": map[string]any{"description": doc},
	})
	if err != nil {
		return fmt.Errorf("marshal description: %w", err)
	}

	u := c.baseURL + "/rest/api/3/issue/" + url.PathEscape(issueKey)
	resp, err := c.send(ctx, http.MethodPut, u, body)
	if err != nil {
		return fmt.Errorf("update issue: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("update issue %s: %w", issueKey, ErrIssueNotFound)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("update issue %s: status %d: %s", issueKey, resp.StatusCode, string(respBody))
	}
	return nil
}

// send performs a request with bounded retry on transient statuses. The
// final response is returned even when still transient so callers can
// report the status.
func (c *Client) send(ctx context.Context, method, u string, body []byte) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, reader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.SetBasicAuth(c.email, c.apiToken)

		resp, err := c.httpClient.Do(req)
		if err == nil && !retryableStatus(resp.StatusCode) {
			return resp, nil
		}
		if attempt >= maxRetries {
			return resp, err
		}
		if resp != nil {
			resp.Body.Close()
		}
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Close releases any resources (currently a no-op).
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
