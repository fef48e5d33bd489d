// Package services wraps the backend REST resources. Each service holds the
// shared backend client and exposes one method per endpoint; no state is
// cached here.
package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/smartshop/webapp/app/models"
	"github.com/smartshop/webapp/pkg/backend"
)

// AuthService wraps /auth, /me/profile and /admin/me.
type AuthService struct {
	client *backend.Client
}

func NewAuthService(client *backend.Client) *AuthService {
	return &AuthService{client: client}
}

// LoginResult carries what a successful login yields: the role the backend
// announced and the session cookies to forward on later calls.
type LoginResult struct {
	Role    string
	Cookies []*http.Cookie
}

// Login authenticates against the backend. The success body is plain text of
// the form "Logged in as ADMIN"; the role is parsed from its last word.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	resp, err := s.client.Post("/auth/login").
		Body(map[string]string{"username": username, "password": password}).
		Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	return &LoginResult{
		Role:    parseRole(resp.Text()),
		Cookies: resp.Cookies(),
	}, nil
}

func parseRole(body string) string {
	fields := strings.Fields(strings.TrimSpace(body))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[len(fields)-1])
}

// Logout invalidates the backend session.
func (s *AuthService) Logout(ctx context.Context) error {
	resp, err := s.client.Post("/auth/logout").Send(ctx)
	if err != nil {
		return err
	}
	return resp.Err()
}

// MyProfile fetches the authenticated client's own profile.
func (s *AuthService) MyProfile(ctx context.Context) (*models.ClientProfile, error) {
	resp, err := s.client.Get("/me/profile").Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var profile models.ClientProfile
	if err := resp.JSON(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AdminProfile fetches the authenticated admin's identity. Used on session
// restore to tell an admin session from a client one.
func (s *AuthService) AdminProfile(ctx context.Context) (*models.ClientProfile, error) {
	resp, err := s.client.Get("/admin/me").Send(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	var profile models.ClientProfile
	if err := resp.JSON(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
