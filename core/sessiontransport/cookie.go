package sessiontransport

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/ssokit/core/cookie"
	"github.com/dmitrymomot/ssokit/core/envelope"
	"github.com/dmitrymomot/ssokit/core/session"
)

// Cookie is the encrypted-session cookie transport: the single write path for
// the session cookie shared by the callback handler, the session endpoints,
// and the gatekeeper's refresh persistence.
type Cookie struct {
	codec     *envelope.Codec
	cookieMgr *cookie.Manager
	name      string
	maxAge    int
	secure    bool
}

// NewCookie creates a cookie-based session transport from configuration.
func NewCookie(cfg Config, codec *envelope.Codec, cookieMgr *cookie.Manager) *Cookie {
	name := cfg.Name
	if name == "" {
		name = DefaultConfig().Name
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultConfig().MaxAge
	}

	return &Cookie{
		codec:     codec,
		cookieMgr: cookieMgr,
		name:      name,
		maxAge:    maxAge,
		secure:    cfg.Secure,
	}
}

// Name returns the session cookie name.
func (c *Cookie) Name() string {
	return c.name
}

// Read returns the raw encrypted cookie value from the request, or "" when
// the cookie is absent. It always reads the incoming request, never a cache.
func (c *Cookie) Read(r *http.Request) string {
	value, err := c.cookieMgr.Get(r, c.name)
	if err != nil {
		return ""
	}
	return value
}

// Save marshals, encrypts, and writes the session cookie with the standard
// attributes: httpOnly, SameSite=Lax, path=/, configured max-age, secure in
// production deployments.
func (c *Cookie) Save(w http.ResponseWriter, sess session.Session) error {
	text, err := session.Marshal(sess)
	if err != nil {
		return fmt.Errorf("sessiontransport: marshal session: %w", err)
	}

	sealed, err := c.codec.Encrypt(text)
	if err != nil {
		return fmt.Errorf("sessiontransport: encrypt session: %w", err)
	}

	return c.cookieMgr.Set(w, c.name, sealed,
		cookie.WithHTTPOnly(true),
		cookie.WithSecure(c.secure),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithPath("/"),
		cookie.WithMaxAge(c.maxAge),
	)
}

// Clear deletes the session cookie.
func (c *Cookie) Clear(w http.ResponseWriter) {
	c.cookieMgr.Delete(w, c.name)
}

// Peek decrypts and parses the session cookie without any refresh decision.
// Absent cookie yields the canonical empty session; unreadable or malformed
// cookies yield an empty session with ShouldClear set. Use the session
// processor instead when expiry handling is needed.
func (c *Cookie) Peek(r *http.Request) session.Session {
	raw := c.Read(r)
	if raw == "" {
		return session.Empty()
	}

	text, err := c.codec.Decrypt(raw)
	if err != nil {
		return session.Session{ShouldClear: true}
	}

	sess, err := session.Unmarshal(text)
	if err != nil || sess.Tokens == nil {
		return session.Session{ShouldClear: true}
	}

	return sess
}
