// Package sheets talks to the remote sheet endpoint that mirrors the
// journal. Every call is best-effort: the caller applies its local
// update first and only reports a failed push, it never rolls back.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/chrisissin/moodmap-journal/internal/journal/model"
)

// HTTPError reports a non-2xx response from the sheet endpoint.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("sheet endpoint returned HTTP %d", e.Status)
}

type Client struct {
	BaseURL string
	Secret  string
	HTTP    *http.Client
}

func NewClient(baseURL, secret string) *Client {
	return &Client{
		BaseURL: baseURL,
		Secret:  secret,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) FetchMetrics(ctx context.Context) (model.MetricsStore, error) {
	var out model.MetricsStore
	if err := c.get(ctx, "metrics", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FetchEvents(ctx context.Context) (model.EventStore, error) {
	var out model.EventStore
	if err := c.get(ctx, "events", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PushMetrics(ctx context.Context, metrics model.MetricsStore) error {
	return c.post(ctx, map[string]interface{}{
		"action":  "saveMetrics",
		"secret":  c.Secret,
		"metrics": metrics,
	})
}

func (c *Client) PushEvents(ctx context.Context, store model.EventStore) error {
	return c.post(ctx, map[string]interface{}{
		"action": "saveEvents",
		"secret": c.Secret,
		"events": store,
	})
}

func (c *Client) get(ctx context.Context, action string, out interface{}) error {
	u := fmt.Sprintf("%s?action=%s&secret=%s", c.BaseURL, action, url.QueryEscape(c.Secret))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sheet fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) post(ctx context.Context, body map[string]interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sheet push failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode}
	}
	return nil
}
