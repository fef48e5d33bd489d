// Package session manages browser sessions for the SmartShop web console.
//
// A Manager is constructed once at bootstrap with an explicit Store driver
// (memory, redis or database) and injected where needed; there is no
// package-global session state. The cookie carries a signed token holding
// only the session ID; all data lives in the store.
//
// Usage (middleware):
//
//	mgr := session.NewManager(store, session.DefaultOptions())
//	r.Use(mgr.Middleware())
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	sess.Set("backend_cookie", cookie)
//	sess.Save(w)
package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"
)

// Options configures cookie behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns sensible defaults for local development.
func DefaultOptions() Options {
	return Options{
		CookieName: "smartshop_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		Secure:     false, // set true behind TLS
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// newID generates a cryptographically random 32-byte hex session ID.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Session is an in-request handle over one browser session.
type Session struct {
	id      string
	data    map[string]interface{}
	mgr     *Manager
	changed bool
	dead    bool
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Set stores a value under key.
func (s *Session) Set(key string, value interface{}) {
	s.data[key] = value
	s.changed = true
}

// Get retrieves a value.
func (s *Session) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString is a typed convenience getter.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Delete removes a key.
func (s *Session) Delete(key string) {
	delete(s.data, key)
	s.changed = true
}

// Flash stores a value that is removed by the next GetFlash.
func (s *Session) Flash(key string, value interface{}) {
	s.Set("_flash_"+key, value)
}

// GetFlash retrieves and removes a flash value.
func (s *Session) GetFlash(key string) (interface{}, bool) {
	v, ok := s.Get("_flash_" + key)
	if ok {
		s.Delete("_flash_" + key)
	}
	return v, ok
}

// Invalidate empties the session and marks it for destruction; the next
// Save removes the stored record and expires the cookie.
func (s *Session) Invalidate() {
	s.data = map[string]interface{}{}
	s.changed = true
	s.dead = true
}
