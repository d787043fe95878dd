package authn

import (
	"errors"
	"slices"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidJWT = errors.New("invalid jwt token")
var ErrInvalidClaims = errors.New("invalid claims")

// Claims are the claims of a WorkOS user management access token.
type Claims struct {
	jwt.StandardClaims
	SessionID      string   `json:"sid"`
	OrganizationID string   `json:"org_id,omitempty"`
	Role           string   `json:"role,omitempty"`
	Permissions    []string `json:"permissions,omitempty"`
}

func (c Claims) HasPermission(permission string) bool {
	return slices.Contains(c.Permissions, permission)
}

// ParseClaims decodes the claims of token without checking its signature.
// It is for display only; use KeySetVerifier to authenticate a caller.
func ParseClaims(token string) (Claims, error) {
	claims := Claims{}
	// Check if token is JWT by attempting to parse it
	if t, err := jwt.ParseWithClaims(token, &claims, nil); err != nil {
		// Ignore validation errors (no need to check signing of key)
		if _, ok := err.(*jwt.ValidationError); !ok {
			return claims, ErrInvalidJWT
		}

		// Check if token was decoded successfully
		if t == nil {
			return claims, ErrInvalidClaims
		}
	}
	if claims.Subject == "" {
		return claims, ErrInvalidClaims
	}
	return claims, nil
}
