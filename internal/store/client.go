// Package store talks to an optional hosted table that records editing
// sessions. Everything here is best-effort: callers log failures and move
// on, and the editing/generation flow never depends on a write landing.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	entriesPath        = "/rest/v1/entries"
	defaultHTTPTimeout = 15 * time.Second
)

// Entry mirrors the backing table: an open-access record keyed by id, with
// the raw document, the excerpt that drove generation, and eventually the
// generated post attached.
type Entry struct {
	ID                string `json:"id,omitempty"`
	Content           string `json:"content"`
	HighlightedText   string `json:"highlighted_text,omitempty"`
	GeneratedBlogPost string `json:"generated_blog_post,omitempty"`
	CreatedAt         string `json:"created_at,omitempty"`
	UpdatedAt         string `json:"updated_at,omitempty"`
}

// Client is a thin PostgREST-style client. A nil *Client is valid and means
// persistence is unconfigured; both operations no-op on it.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// New returns a client for the given project URL and key, or nil when either
// is missing so persistence silently disables.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if strings.TrimSpace(baseURL) == "" || strings.TrimSpace(apiKey) == "" {
		return nil
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpClient,
	}
}

// Enabled reports whether persistence is configured.
func (c *Client) Enabled() bool { return c != nil }

// Create inserts a record for the document and its highlighted excerpt and
// returns the new record id. An empty id with a nil error never happens; on
// any failure the caller skips the later AttachPost entirely.
func (c *Client) Create(ctx context.Context, content, highlighted string) (string, error) {
	if c == nil {
		return "", nil
	}
	payload, err := json.Marshal(Entry{Content: content, HighlightedText: highlighted})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+entriesPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("store create failed: %s (%s)", resp.Status, string(body))
	}

	var created []Entry
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("store create: decode response: %w", err)
	}
	if len(created) == 0 || created[0].ID == "" {
		return "", fmt.Errorf("store create: response carried no id")
	}
	return created[0].ID, nil
}

// AttachPost records the generated post on an existing entry.
func (c *Client) AttachPost(ctx context.Context, id, post string) error {
	if c == nil || id == "" {
		return nil
	}
	payload, err := json.Marshal(map[string]string{"generated_blog_post": post})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s%s?id=eq.%s", c.baseURL, entriesPath, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("store update failed: %s (%s)", resp.Status, string(body))
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
