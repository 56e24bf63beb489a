package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of a bearer token the frontend looks at. The API owns
// signature verification; the frontend only reads the payload.
type Claims struct {
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether exp is set and not after now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !c.ExpiresAt.After(now)
}

// Inspect decodes the payload of a JWT bearer token without verifying it.
// ok is false for opaque tokens.
func Inspect(token string) (Claims, bool) {
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return Claims{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Claims{}, false
	}

	var out Claims
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if username, ok := claims["username"].(string); ok {
		out.Username = username
	}
	return out, true
}

// Expired reports whether token is a JWT whose exp is not after now. Opaque
// tokens and JWTs without exp never expire here.
func Expired(token string, now time.Time) bool {
	claims, ok := Inspect(token)
	return ok && claims.Expired(now)
}
