package claims

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the informational issued-at/expiry fields of an access
// token. Values are decoded without signature verification and are advisory
// only: they schedule refreshes, they never authorize anything.
type Claims struct {
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

var parser = jwt.NewParser(
	jwt.WithoutClaimsValidation(),
	jwt.WithPaddingAllowed(),
)

// Decode extracts claims from a token payload without verifying the
// signature. Any malformed token yields nil rather than an error: callers
// treat "no claims" as "cannot verify expiry" and act conservatively.
func Decode(token string) *Claims {
	var rc jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(token, &rc); err != nil {
		return nil
	}

	c := &Claims{}
	if rc.IssuedAt != nil {
		t := rc.IssuedAt.Time
		c.IssuedAt = &t
	}
	if rc.ExpiresAt != nil {
		t := rc.ExpiresAt.Time
		c.ExpiresAt = &t
	}
	return c
}

// Expired reports whether the token should be treated as expired at now.
// Missing claims or a missing exp count as expired: ambiguous expiry always
// means "needs refresh", never "trusted valid".
func (c *Claims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt == nil {
		return true
	}
	return !now.Before(*c.ExpiresAt)
}
