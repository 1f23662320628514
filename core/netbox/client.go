package netbox

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

	"go.uber.org/zap"
)

// APIError describes a non-2xx response from NetBox. It carries the HTTP
// status and the raw error body so callers can record the rejection without
// aborting the surrounding run.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("netbox returned HTTP %d: %s", e.StatusCode, e.Body)
}

// Object is the subset of a NetBox API object the sync engine cares about.
// Every create and list response carries at least the numeric id.
type Object struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Display string `json:"display"`
	URL     string `json:"url"`
}

// listEnvelope is the paginated list response shape: {count, results: [...]}.
type listEnvelope struct {
	Count   int      `json:"count"`
	Results []Object `json:"results"`
}

// StatusInfo is the response of the /api/status/ endpoint.
type StatusInfo struct {
	Version string `json:"netbox-version"`
}

// Client is a minimal NetBox REST client. It holds only the base URL, the
// token and a fixed-timeout HTTP client; no state is retained between calls.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a Client from configuration. The request timeout bounds
// every call so a single unreachable endpoint cannot hang a whole run.
func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		log:     log,
	}
}

// List issues a filtered list query against an API path (e.g. "dcim/sites/")
// and returns the result objects. A non-2xx response is returned as *APIError.
func (c *Client) List(ctx context.Context, path string, query url.Values) ([]Object, error) {
	endpoint := c.endpoint(path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode list response from %s: %w", path, err)
	}

	return envelope.Results, nil
}

// Create POSTs a new object to an API path and returns the created object.
func (c *Client) Create(ctx context.Context, path string, payload any) (*Object, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload for %s: %w", path, err)
	}

	body, err := c.do(ctx, http.MethodPost, c.endpoint(path), raw)
	if err != nil {
		return nil, err
	}

	var obj Object
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode create response from %s: %w", path, err)
	}

	return &obj, nil
}

// Status probes the /api/status/ endpoint. It is used as a connectivity
// check before a run and reports the remote NetBox version.
func (c *Client) Status(ctx context.Context) (*StatusInfo, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("status/"), nil)
	if err != nil {
		return nil, err
	}

	var info StatusInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}

	return &info, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + "/api/" + strings.TrimLeft(path, "/")
}

// do executes a single authenticated request. Transport failures are wrapped,
// non-2xx statuses become *APIError with the status and body logged so the
// caller can treat the rejection as data.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}

	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("NetBox request failed",
			zap.String("method", method),
			zap.String("url", endpoint),
			zap.Error(err),
		)
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		c.log.Warn("NetBox rejected request",
			zap.String("method", method),
			zap.String("url", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("body", apiErr.Body),
		)
		return nil, apiErr
	}

	return data, nil
}
