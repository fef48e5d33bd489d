// Package backend is the single HTTP boundary to the SmartShop REST API.
//
// One Client is constructed at bootstrap with the backend's base origin and
// shared by every resource service. The backend authenticates with a session
// cookie: the cookie captured at login is stored in the browser session and
// forwarded on every call via the request context (WithCredentials).
//
//	resp, err := client.Get("/products").
//	    Query("page", "0").Query("size", "10").
//	    Send(ctx)
//
//	var page models.Page[models.Product]
//	err = resp.JSON(&page)
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	gohttp "net/http"
	"net/url"
	"time"

	"github.com/smartshop/webapp/pkg/metrics"
)

// defaultTransport is the connection-pooled transport used in production.
// Tests swap Client.Transport to intercept calls.
var defaultTransport = &gohttp.Transport{
	MaxIdleConns:        200,
	MaxIdleConnsPerHost: 100,
	IdleConnTimeout:     90 * time.Second,
}

type credKey struct{}

// WithCredentials stores the backend session cookie header value in ctx so
// every outgoing call on that context forwards it. Mirrors a browser's
// automatic cookie forwarding.
func WithCredentials(ctx context.Context, cookieHeader string) context.Context {
	return context.WithValue(ctx, credKey{}, cookieHeader)
}

func credentialsFrom(ctx context.Context) string {
	if v, ok := ctx.Value(credKey{}).(string); ok {
		return v
	}
	return ""
}

// Client sends requests against one fixed base origin.
type Client struct {
	baseURL string
	http    *gohttp.Client
}

// New builds a Client for the given base origin.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &gohttp.Client{Transport: defaultTransport},
	}
}

// SetTransport swaps the underlying RoundTripper (tests).
func (c *Client) SetTransport(rt gohttp.RoundTripper) {
	c.http.Transport = rt
}

// Get starts a GET request for path (resolved against the base origin).
func (c *Client) Get(path string) *Request { return c.newRequest(gohttp.MethodGet, path) }

// Post starts a POST request.
func (c *Client) Post(path string) *Request { return c.newRequest(gohttp.MethodPost, path) }

// Put starts a PUT request.
func (c *Client) Put(path string) *Request { return c.newRequest(gohttp.MethodPut, path) }

// Patch starts a PATCH request.
func (c *Client) Patch(path string) *Request { return c.newRequest(gohttp.MethodPatch, path) }

// Delete starts a DELETE request.
func (c *Client) Delete(path string) *Request { return c.newRequest(gohttp.MethodDelete, path) }

// Request is a fluent request builder.
type Request struct {
	client  *Client
	method  string
	path    string
	query   url.Values
	headers map[string]string
	body    interface{}
	timeout time.Duration
}

func (c *Client) newRequest(method, path string) *Request {
	return &Request{
		client:  c,
		method:  method,
		path:    path,
		query:   url.Values{},
		headers: map[string]string{"Accept": "application/json"},
	}
}

// Query adds a query parameter. Empty values are dropped so optional filters
// pass through unchanged.
func (r *Request) Query(key, value string) *Request {
	if value != "" {
		r.query.Set(key, value)
	}
	return r
}

// Header sets a request header.
func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Body sets the request body, marshalled to JSON.
func (r *Request) Body(v interface{}) *Request {
	r.body = v
	return r
}

// Timeout sets an optional deadline for this request. Without it the
// request is bounded only by the caller's context and the transport.
func (r *Request) Timeout(d time.Duration) *Request {
	r.timeout = d
	return r
}

// Send executes the request. Transport failures return an error; any HTTP
// response, success or not, returns a *Response and callers decide via
// Response.Err(). Nothing is retried.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	var body io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("backend: marshal body: %w", err)
		}
		body = bytes.NewReader(raw)
		r.headers["Content-Type"] = "application/json"
	}

	u := r.client.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req, err := gohttp.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}

	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if cookies := credentialsFrom(ctx); cookies != "" {
		req.Header.Set("Cookie", cookies)
	}

	start := time.Now()
	resp, err := r.client.http.Do(req)
	if err != nil {
		metrics.ObserveBackendCall(r.method, 0, start)
		return nil, fmt.Errorf("backend: %s %s: %w", r.method, r.path, err)
	}
	metrics.ObserveBackendCall(r.method, resp.StatusCode, start)

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("backend: read body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Raw:        raw,
		cookies:    resp.Cookies(),
	}, nil
}

// Response wraps a backend HTTP response.
type Response struct {
	StatusCode int
	Headers    gohttp.Header
	Raw        []byte
	cookies    []*gohttp.Cookie
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON unmarshals the response body into dest.
func (r *Response) JSON(dest interface{}) error {
	if len(r.Raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("backend: decode JSON: %w", err)
	}
	return nil
}

// Text returns the response body as a string.
func (r *Response) Text() string {
	return string(r.Raw)
}

// Cookies returns the Set-Cookie values from the response. Login captures
// the backend session cookie from here.
func (r *Response) Cookies() []*gohttp.Cookie {
	return r.cookies
}

// Err converts a non-2xx response into an *APIError carrying the backend's
// message field when present. Returns nil for 2xx.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	return &APIError{Status: r.StatusCode, Message: r.message()}
}

func (r *Response) message() string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(r.Raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return ""
}
