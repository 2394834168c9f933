package middleware

import "strings"

// RouteMatcher decides which request paths require an authenticated session.
// An empty prefix list protects everything, which is the safe default for an
// app that fronts all of its pages with the identity provider.
type RouteMatcher struct {
	prefixes []string
	all      bool
}

// NewRouteMatcher builds a matcher from path prefixes. Prefixes are
// normalized (leading slash enforced, trailing slash stripped) and
// deduplicated. A nil or empty list, or a "/" entry, protects all paths.
func NewRouteMatcher(protected []string) *RouteMatcher {
	if len(protected) == 0 {
		return &RouteMatcher{all: true}
	}

	seen := make(map[string]struct{}, len(protected))
	prefixes := make([]string, 0, len(protected))
	for _, p := range protected {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		if p != "/" {
			p = strings.TrimRight(p, "/")
		}
		if p == "/" {
			return &RouteMatcher{all: true}
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		prefixes = append(prefixes, p)
	}

	if len(prefixes) == 0 {
		return &RouteMatcher{all: true}
	}
	return &RouteMatcher{prefixes: prefixes}
}

// Match reports whether path falls under a protected prefix. A prefix matches
// itself and everything below it, but not sibling paths that merely share the
// string prefix ("/app" matches "/app/x", not "/application").
func (m *RouteMatcher) Match(path string) bool {
	if m.all {
		return true
	}
	for _, prefix := range m.prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Patterns returns the protected prefixes as wildcard route patterns suitable
// for mounting the gatekeeper on a subtree router ("/app" becomes "/app/*").
// When the matcher protects all paths it returns a single "/*".
func (m *RouteMatcher) Patterns() []string {
	if m.all {
		return []string{"/*"}
	}
	patterns := make([]string, 0, len(m.prefixes)*2)
	for _, prefix := range m.prefixes {
		patterns = append(patterns, prefix, prefix+"/*")
	}
	return patterns
}
