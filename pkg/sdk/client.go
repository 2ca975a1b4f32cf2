// Package sdk is a thin HTTP client for the mcplookup REST API.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mcplookup/mcplookup"
)

const defaultTimeout = 30 * time.Second

// Client talks to a running mcplookup API server.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// New creates a Client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Option configures the Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mcplookup api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Discover runs a discovery query.
func (c *Client) Discover(ctx context.Context, req mcplookup.DiscoverRequest) (mcplookup.DiscoverResponse, error) {
	var resp mcplookup.DiscoverResponse
	err := c.do(ctx, http.MethodPost, "/v1/discover", req, &resp)
	return resp, err
}

// GetServer fetches one record by exact domain.
func (c *Client) GetServer(ctx context.Context, domain string) (mcplookup.Server, error) {
	var srv mcplookup.Server
	err := c.do(ctx, http.MethodGet, "/v1/servers/"+url.PathEscape(domain), nil, &srv)
	return srv, err
}

// PutServer registers or updates a record.
func (c *Client) PutServer(ctx context.Context, srv mcplookup.Server) (mcplookup.Server, error) {
	var out mcplookup.Server
	err := c.do(ctx, http.MethodPut, "/v1/servers/"+url.PathEscape(srv.Domain), srv, &out)
	return out, err
}

// DeleteServer removes a record.
func (c *Client) DeleteServer(ctx context.Context, domain string) error {
	return c.do(ctx, http.MethodDelete, "/v1/servers/"+url.PathEscape(domain), nil, nil)
}

// ListServers returns up to limit records in a category plus the total count.
func (c *Client) ListServers(ctx context.Context, category string, limit int) ([]mcplookup.Server, int, error) {
	path := "/v1/servers?category=" + url.QueryEscape(category)
	if limit > 0 {
		path += "&limit=" + strconv.Itoa(limit)
	}

	var resp struct {
		Servers []mcplookup.Server `json:"servers"`
		Total   int                `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Servers, resp.Total, nil
}

// Health fetches the service health report. A degraded service returns the
// report with a non-nil *APIError carrying status 503.
func (c *Client) Health(ctx context.Context) (mcplookup.HealthReport, error) {
	var report mcplookup.HealthReport
	err := c.do(ctx, http.MethodGet, "/health", nil, &report)
	return report, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return apiError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiError(resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		return &APIError{
			Status:  resp.StatusCode,
			Code:    "unknown",
			Message: strings.TrimSpace(string(raw)),
		}
	}
	return &APIError{
		Status:  resp.StatusCode,
		Code:    body.Error,
		Message: body.Message,
	}
}
