// Package api is a typed client for the habit tracker backend. Every response
// is decoded into an explicit type and validated before it is returned.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/logger"
)

const maxBodyBytes = 8 << 20

type validator interface {
	Validate() error
}

// Client talks to one backend instance
type Client struct {
	baseURL      string
	http         *http.Client
	chartTimeout time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithRequestTimeout bounds every request. Zero means no client-side limit.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithChartTimeout overrides the deadline applied to the 30-day chart
func WithChartTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.chartTimeout = d
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{},
		chartTimeout: constants.ChartTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root used for every request
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends a request and decodes the JSON response into out when out is
// non-nil. An empty body is accepted only when allowEmpty is set.
func (c *Client) do(ctx context.Context, method, path string, in, out any, allowEmpty bool) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		logger.Debug("Backend request failed", "method", method, "path", path, "error", err)
		return &UnreachableError{BaseURL: c.baseURL, Err: err}
	}
	defer res.Body.Close()

	logger.Debug("Backend request", "method", method, "path", path, "status", res.StatusCode, "elapsed", time.Since(start))

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return &UnreachableError{BaseURL: c.baseURL, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &HTTPError{
			StatusCode: res.StatusCode,
			StatusText: statusText(res),
			Body:       strings.TrimSpace(string(data)),
		}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: %s %s: empty body", ErrInvalidResponse, method, path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, false)
}

func statusText(res *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	if text == "" {
		text = http.StatusText(res.StatusCode)
	}
	return text
}

func invalid(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, path, err)
}

func validateAll[T any, P interface {
	*T
	validator
}](path string, items []T) error {
	for i := range items {
		if err := P(&items[i]).Validate(); err != nil {
			return invalid(path, fmt.Errorf("item %d: %w", i, err))
		}
	}
	return nil
}
