// Package httpclient provides the single configured HTTP client shared by
// the storefront adapters.
//
// A Client is built once with a base URL and JSON headers and cannot be
// reconfigured afterwards. Interceptors observe every request and response;
// the defaults pass everything through unchanged.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const contentTypeJSON = "application/json"

// RequestInterceptor runs before a request is sent.
type RequestInterceptor func(*http.Request) (*http.Request, error)

// ResponseInterceptor runs after a request completes. OnSuccess receives 2xx
// responses, OnError receives transport failures and [*HTTPError].
type ResponseInterceptor struct {
	OnSuccess func(*http.Response) (*http.Response, error)
	OnError   func(error) error
}

// PassRequest is the identity request interceptor.
func PassRequest(r *http.Request) (*http.Request, error) {
	return r, nil
}

// PassResponse returns responses and failures unchanged.
var PassResponse = ResponseInterceptor{
	OnSuccess: func(r *http.Response) (*http.Response, error) { return r, nil },
	OnError:   func(err error) error { return err },
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithHeaders adds default headers sent with every request.
func WithHeaders(h http.Header) Option {
	return func(c *Client) {
		for k, values := range h {
			for _, v := range values {
				c.headers.Add(k, v)
			}
		}
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(c *Client) {
		if i != nil {
			c.reqInterceptors = append(c.reqInterceptors, i)
		}
	}
}

func WithResponseInterceptor(i ResponseInterceptor) Option {
	return func(c *Client) {
		c.respInterceptors = append(c.respInterceptors, i)
	}
}

// Client is a base-URL bound JSON client. Safe for concurrent use.
type Client struct {
	baseURL          *url.URL
	httpClient       *http.Client
	headers          http.Header
	timeout          time.Duration
	reqInterceptors  []RequestInterceptor
	respInterceptors []ResponseInterceptor
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	const op = "httpclient.New"

	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("%s: base URL is required", op)
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid base URL: %w", op, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%s: base URL must be absolute: %q", op, baseURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{},
		headers:    make(http.Header),
	}
	c.headers.Set("Content-Type", contentTypeJSON)
	c.headers.Set("Accept", contentTypeJSON)

	for _, opt := range opts {
		opt(c)
	}

	if len(c.reqInterceptors) == 0 {
		c.reqInterceptors = []RequestInterceptor{PassRequest}
	}
	if len(c.respInterceptors) == 0 {
		c.respInterceptors = []ResponseInterceptor{PassResponse}
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// BaseURL returns a copy of the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// GetJSON issues one GET for path and decodes the JSON body into out.
func (c *Client) GetJSON(
	ctx context.Context, path string, query url.Values, out any,
) error {
	const op = "Client.GetJSON"

	resp, err := c.Do(ctx, http.MethodGet, path, query)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer closeBody(resp.Body)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// Do sends a single request without a body. Non-2xx responses are returned
// as [*HTTPError]. The caller closes the body of a successful response.
func (c *Client) Do(
	ctx context.Context, method, path string, query url.Values,
) (*http.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	fullURL, err := c.buildURL(path, query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header = c.headers.Clone()

	for _, intercept := range c.reqInterceptors {
		req, err = intercept(req)
		if err != nil {
			return nil, c.onError(err)
		}
		if req == nil {
			return nil, c.onError(errors.New("request interceptor returned nil request"))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.onError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.onError(newHTTPError(resp))
	}

	return c.onSuccess(resp)
}

func (c *Client) onSuccess(resp *http.Response) (*http.Response, error) {
	for _, i := range c.respInterceptors {
		if i.OnSuccess == nil {
			continue
		}
		next, err := i.OnSuccess(resp)
		if err == nil && next == nil {
			err = errors.New("response interceptor returned nil response")
		}
		if err != nil {
			closeBody(resp.Body)
			return nil, c.onError(err)
		}
		resp = next
	}
	return resp, nil
}

func (c *Client) onError(err error) error {
	for _, i := range c.respInterceptors {
		if i.OnError == nil {
			continue
		}
		err = i.OnError(err)
	}
	return err
}

func (c *Client) buildURL(path string, q url.Values) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	if len(q) > 0 {
		ref.RawQuery = q.Encode()
	}

	full := *c.baseURL
	full.Path = strings.TrimRight(c.baseURL.Path, "/") + ref.Path
	full.RawPath = ""
	full.RawQuery = ref.RawQuery
	return full.String(), nil
}

func closeBody(rc io.ReadCloser) {
	if rc != nil {
		_ = rc.Close()
	}
}
