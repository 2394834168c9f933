package ssokit

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// normalizeURL strips trailing slashes so path concatenation never doubles
// them. A bare "/" is kept as is.
func normalizeURL(raw string) string {
	if raw == "" || raw == "/" {
		return raw
	}
	return strings.TrimRight(raw, "/")
}

// LoginURL builds the identity provider login URL for one login attempt. It
// carries a fresh random state, the application's callback endpoint as
// redirect_uri, and the original page URL so the flow can return the user
// where they started. The signature matches what the gatekeeper middleware
// expects.
func (k *Kit) LoginURL(callbackURL string) string {
	login, err := url.Parse(k.cfg.LoginURL)
	if err != nil {
		return k.cfg.LoginURL
	}

	q := login.Query()
	q.Set("state", uuid.NewString())
	q.Set("redirect_uri", k.cfg.AppURL+k.cfg.CallbackPath)
	if reg := normalizeURL(k.cfg.RegisterCallbackURI); reg != "" && reg != "/" {
		q.Set("register_callback_uri", k.cfg.AppURL+reg)
	}
	if callbackURL != "" {
		q.Set("callbackUrl", callbackURL)
	}
	login.RawQuery = q.Encode()
	return login.String()
}
