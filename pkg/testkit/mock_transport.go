// Package testkit provides test doubles for the backend HTTP boundary.
//
// MockTransport implements http.RoundTripper: it matches outgoing requests
// against programmed stubs and returns synthetic responses instead of
// making network calls.
//
//	mt := testkit.NewMockTransport()
//	mt.Stub("GET", "/me/profile", 200, `{"id":1,"name":"Jean"}`)
//	client.SetTransport(mt)
//	...
//	mt.AssertAllCalled(t)
package testkit

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

// Stub is one programmed request/response pair.
type Stub struct {
	Method string // "" matches any method
	Path   string // prefix match on the URL path
	Status int
	Body   string
	Header http.Header

	calls int
}

// MockTransport is a programmable http.RoundTripper.
type MockTransport struct {
	mu    sync.Mutex
	stubs []*Stub

	// Requests records every request seen, in order.
	Requests []*http.Request
}

// NewMockTransport returns an empty transport; unmatched calls get a 404.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Stub programs a response for method+path (path is a prefix match).
// Stubs are matched in registration order; the first hit wins.
func (mt *MockTransport) Stub(method, path string, status int, body string) *Stub {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	s := &Stub{Method: method, Path: path, Status: status, Body: body, Header: http.Header{}}
	mt.stubs = append(mt.stubs, s)
	return s
}

// SetCookie adds a Set-Cookie header to the stubbed response.
func (s *Stub) SetCookie(value string) *Stub {
	s.Header.Add("Set-Cookie", value)
	return s
}

func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.Requests = append(mt.Requests, req)

	for _, s := range mt.stubs {
		if s.Method != "" && s.Method != req.Method {
			continue
		}
		if !strings.HasPrefix(req.URL.Path, s.Path) {
			continue
		}

		s.calls++
		header := http.Header{"Content-Type": []string{"application/json"}}
		for k, vs := range s.Header {
			header[k] = vs
		}
		return &http.Response{
			StatusCode: s.Status,
			Status:     fmt.Sprintf("%d %s", s.Status, http.StatusText(s.Status)),
			Header:     header,
			Body:       io.NopCloser(strings.NewReader(s.Body)),
			Request:    req,
		}, nil
	}

	return &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{"message":"no stub configured"}`)),
		Request:    req,
	}, nil
}

// Calls returns how many requests hit the stub for method+path.
func (mt *MockTransport) Calls(method, path string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, s := range mt.stubs {
		if s.Method == method && s.Path == path {
			return s.calls
		}
	}
	return 0
}

// AssertAllCalled fails the test when a programmed stub was never hit.
func (mt *MockTransport) AssertAllCalled(t *testing.T) {
	t.Helper()
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, s := range mt.stubs {
		if s.calls == 0 {
			t.Errorf("testkit: stub %s %s was never called", s.Method, s.Path)
		}
	}
}
