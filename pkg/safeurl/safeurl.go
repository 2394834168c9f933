package safeurl

import (
	"net/url"
	"strings"
)

// Resolve turns an untrusted redirect target into an absolute URL on the
// same origin as base. Relative targets are resolved against base; absolute
// targets are accepted only when their scheme and host match base exactly.
// Anything else (foreign origin, scheme-relative tricks, unparsable input)
// falls back to base, so the result is always safe to redirect to.
func Resolve(target, base string) string {
	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() {
		return base
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return base
	}

	// Scheme-relative URLs ("//evil.com/path") parse as relative but carry
	// their own host, so ResolveReference would keep the foreign origin.
	// The same-origin check below catches them.
	parsed, err := url.Parse(target)
	if err != nil {
		return base
	}

	resolved := baseURL.ResolveReference(parsed)
	if resolved.Scheme != baseURL.Scheme || resolved.Host != baseURL.Host {
		return base
	}
	return resolved.String()
}

// StripParams removes the named query parameters from rawURL, returning the
// URL otherwise unchanged. Used to drop one-time credentials from redirect
// targets before they end up in Location headers or logs.
func StripParams(rawURL string, params ...string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	query := parsed.Query()
	changed := false
	for _, p := range params {
		if query.Has(p) {
			query.Del(p)
			changed = true
		}
	}
	if !changed {
		return rawURL
	}

	parsed.RawQuery = query.Encode()
	return parsed.String()
}
