package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BearerTokenClaims is the subset of the marketplace-issued JWT the gateway
// reads. The upstream holds the signing key and is the only verifier; the
// gateway decodes without verification purely to know who the session belongs
// to and when the token lapses.
type BearerTokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeBearerToken extracts claims from a marketplace JWT without verifying
// the signature.
func DecodeBearerToken(tokenString string) (*BearerTokenClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, fmt.Errorf("bearer token is empty")
	}

	claims := &BearerTokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("decoding bearer token: %w", err)
	}
	return claims, nil
}

// Expired reports whether the token's exp claim has passed. Tokens without an
// exp claim are treated as live; the upstream still gets the final say.
func (c *BearerTokenClaims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt == nil {
		return false
	}
	return now.After(c.ExpiresAt.Time)
}
