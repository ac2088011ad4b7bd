// Package http provides the fluent, retry-aware client used for outbound
// calls (the inference provider in pkg/llm).
//
//	client := http.NewClient("https://api.groq.com/openai/v1")
//	resp, err := client.Post("/chat/completions").
//	    WithContext(ctx).
//	    Bearer(key).
//	    Body(payload).
//	    Retry(2, time.Second).
//	    Send()
//	if err == nil {
//	    err = resp.Throw()
//	}
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	gohttp "net/http"
	"strings"
	"time"

	"github.com/shashiranjanraj/voucherhub/pkg/logger"
)

const maxResponseBytes = 8 << 20

var defaultTransport = &gohttp.Transport{
	Proxy:               gohttp.ProxyFromEnvironment,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 20,
	IdleConnTimeout:     90 * time.Second,
}

// Client sends requests relative to a base URL.
type Client struct {
	base string
	hc   *gohttp.Client
}

// NewClient returns a client for baseURL using the shared pooled transport.
func NewClient(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &gohttp.Client{Transport: defaultTransport},
	}
}

// WithHTTPClient swaps the underlying client. Tests pass httptest's client.
func (c *Client) WithHTTPClient(hc *gohttp.Client) *Client {
	c.hc = hc
	return c
}

func (c *Client) Get(path string) *Request  { return c.newRequest(gohttp.MethodGet, path) }
func (c *Client) Post(path string) *Request { return c.newRequest(gohttp.MethodPost, path) }

func (c *Client) newRequest(method, path string) *Request {
	url := path
	if c.base != "" && !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		url = c.base + "/" + strings.TrimLeft(path, "/")
	}
	return &Request{
		client:    c,
		method:    method,
		url:       url,
		headers:   map[string]string{"Accept": "application/json"},
		timeout:   30 * time.Second,
		retries:   1,
		retryWait: 500 * time.Millisecond,
		ctx:       context.Background(),
	}
}

// Request is a fluent HTTP request builder.
type Request struct {
	client    *Client
	method    string
	url       string
	headers   map[string]string
	body      interface{}
	timeout   time.Duration
	retries   int
	retryWait time.Duration
	ctx       context.Context
}

func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Bearer sets the Authorization: Bearer <token> header.
func (r *Request) Bearer(token string) *Request {
	return r.Header("Authorization", "Bearer "+token)
}

// Body sets the request body. v is marshalled to JSON unless it is a
// string or []byte.
func (r *Request) Body(v interface{}) *Request {
	r.body = v
	return r
}

// Timeout sets the per-attempt timeout.
func (r *Request) Timeout(d time.Duration) *Request {
	r.timeout = d
	return r
}

// Retry sets the total attempts and the initial backoff, which doubles
// after each failure. Only transport errors, 429 and 5xx are retried.
func (r *Request) Retry(n int, wait time.Duration) *Request {
	if n < 1 {
		n = 1
	}
	r.retries = n
	r.retryWait = wait
	return r
}

func (r *Request) WithContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// Send executes the request. A non-2xx response is returned without error;
// call Throw to turn it into one.
func (r *Request) Send() (*Response, error) {
	var (
		resp    *Response
		lastErr error
		backoff = r.retryWait
	)

	for attempt := 1; attempt <= r.retries; attempt++ {
		resp, lastErr = r.do()
		if lastErr == nil && !retryable(resp.StatusCode) {
			return resp, nil
		}
		if attempt == r.retries {
			break
		}

		logger.WithCtx(r.ctx).Warn("http: request failed, retrying",
			"url", r.url, "attempt", attempt, "backoff", backoff, "error", lastErr)

		select {
		case <-r.ctx.Done():
			return nil, fmt.Errorf("http: %s %s: %w", r.method, r.url, r.ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	if lastErr != nil {
		return nil, fmt.Errorf("http: all %d attempts failed for %s %s: %w", r.retries, r.method, r.url, lastErr)
	}
	return resp, nil
}

func retryable(status int) bool {
	return status == gohttp.StatusTooManyRequests || status >= 500
}

func (r *Request) do() (*Response, error) {
	body, ct, err := r.buildBody()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	req, err := gohttp.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, fmt.Errorf("http: build request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := r.client.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: send: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("http: read body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Headers: resp.Header, Raw: raw}, nil
}

func (r *Request) buildBody() (io.Reader, string, error) {
	switch v := r.body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	case []byte:
		return bytes.NewReader(v), "application/octet-stream", nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("http: marshal body: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	}
}

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Headers    gohttp.Header
	Raw        []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON unmarshals the response body into dest.
func (r *Response) JSON(dest interface{}) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("http: decode JSON: %w", err)
	}
	return nil
}

func (r *Response) Text() string {
	return string(r.Raw)
}

// Throw returns a *StatusError if the status is not 2xx.
func (r *Response) Throw() error {
	if !r.OK() {
		return &StatusError{Code: r.StatusCode, Body: truncate(string(r.Raw), 512)}
	}
	return nil
}

// StatusError is a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http: request failed with status %d: %s", e.Code, e.Body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
