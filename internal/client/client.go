// Package client is an HTTP client for the posts API.
//
// Every call returns the captured *Response whatever the status code is: a 404 or 409 is a
// normal result the caller inspects, not an error. The error return is reserved for failures
// to build, send or read the request (bad URL, connection refused, timeout).
package client

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
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client (30s timeout).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout of the underlying http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports whether the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("empty response body (status %d)", r.StatusCode)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body (status %d): %w", r.StatusCode, err)
	}
	return nil
}

// Do sends a request with payload (if not nil) encoded as JSON.
func (c *Client) Do(ctx context.Context, method, path string, payload any) (*Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// PostRequest is the body sent by CreatePost and UpdatePost.
type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (c *Client) ListPosts(ctx context.Context) (*Response, error) {
	return c.Do(ctx, http.MethodGet, "/posts", nil)
}

func (c *Client) GetPost(ctx context.Context, id string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, postPath(id), nil)
}

func (c *Client) CreatePost(ctx context.Context, req PostRequest) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/posts", req)
}

// UpdatePost sends payload as is so callers can send any JSON shape (e.g. a full post including its id).
func (c *Client) UpdatePost(ctx context.Context, id string, payload any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, postPath(id), payload)
}

func (c *Client) DeletePost(ctx context.Context, id string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, postPath(id), nil)
}

func postPath(id string) string {
	return "/posts/" + url.PathEscape(id)
}
