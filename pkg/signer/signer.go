// Package signer signs and verifies the browser session cookie as a compact
// JWT. The token carries only the opaque session ID plus a role hint; all
// session data lives server-side in the session store.
package signer

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smartshop/webapp/config"
)

// ErrInvalidToken is returned for any cookie that does not verify.
var ErrInvalidToken = errors.New("signer: invalid session token")

// Claims is the typed payload of the session cookie.
type Claims struct {
	SessionID string `json:"sid"`
	RoleHint  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.SessionSecret())
}

// Sign produces a signed cookie value for the given session ID.
// The role hint lets session restore target the right profile endpoint
// without a stored session record.
func Sign(sessionID, roleHint string, ttl time.Duration) (string, error) {
	claims := Claims{
		SessionID: sessionID,
		RoleHint:  roleHint,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// Verify parses a cookie value and returns its claims.
func Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
