package session

import (
	"context"
	"net/http"

	"github.com/smartshop/webapp/pkg/logger"
	"github.com/smartshop/webapp/pkg/signer"
)

// Store persists session data keyed by session ID.
type Store interface {
	// Load returns the data for id, or (nil, nil) when the session is
	// unknown or expired.
	Load(ctx context.Context, id string) (map[string]interface{}, error)
	Save(ctx context.Context, id string, data map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// Manager loads and persists sessions. Construct one at bootstrap and share
// it; it is safe for concurrent use as long as the Store is.
type Manager struct {
	store Store
	opts  Options
}

// NewManager builds a Manager over the given store.
func NewManager(store Store, opts Options) *Manager {
	return &Manager{store: store, opts: opts}
}

type ctxKey struct{}

// Middleware loads (or creates) the session for every request and injects it
// into the request context. Handlers access it via session.FromCtx(r).
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := m.load(r)
			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx retrieves the session from the request context. A fresh unsaved
// session is returned when the middleware did not run (tests, mostly).
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	id, _ := newID()
	return &Session{id: id, data: map[string]interface{}{}}
}

func (m *Manager) load(r *http.Request) *Session {
	if cookie, err := r.Cookie(m.opts.CookieName); err == nil {
		if claims, err := signer.Verify(cookie.Value); err == nil {
			data, err := m.store.Load(r.Context(), claims.SessionID)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("session: load failed", "error", err)
			}
			if data != nil {
				return &Session{id: claims.SessionID, data: data, mgr: m}
			}
			// Unknown or expired record: keep the ID, start empty.
			return &Session{id: claims.SessionID, data: map[string]interface{}{}, mgr: m}
		}
	}

	id, _ := newID()
	return &Session{id: id, data: map[string]interface{}{}, mgr: m}
}

// Save persists the session and writes the signed cookie. Invalidated
// sessions are deleted from the store and the cookie is expired.
func (s *Session) Save(w http.ResponseWriter) error {
	if !s.changed || s.mgr == nil {
		return nil
	}
	m := s.mgr

	if s.dead {
		if err := m.store.Delete(context.Background(), s.id); err != nil {
			return err
		}
		http.SetCookie(w, &http.Cookie{
			Name:     m.opts.CookieName,
			Value:    "",
			Path:     m.opts.Path,
			MaxAge:   -1,
			HttpOnly: m.opts.HTTPOnly,
			Secure:   m.opts.Secure,
			SameSite: m.opts.SameSite,
		})
		s.changed = false
		return nil
	}

	if err := m.store.Save(context.Background(), s.id, s.data); err != nil {
		return err
	}

	roleHint, _ := s.GetString("auth_role")
	token, err := signer.Sign(s.id, roleHint, m.opts.TTL)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    token,
		Path:     m.opts.Path,
		MaxAge:   int(m.opts.TTL.Seconds()),
		HttpOnly: m.opts.HTTPOnly,
		Secure:   m.opts.Secure,
		SameSite: m.opts.SameSite,
	})

	s.changed = false
	return nil
}
