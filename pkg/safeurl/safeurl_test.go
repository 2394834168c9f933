package safeurl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/ssokit/pkg/safeurl"
)

func TestResolve(t *testing.T) {
	const base = "https://app.example.com"

	t.Run("relative path", func(t *testing.T) {
		assert.Equal(t, "https://app.example.com/dashboard", safeurl.Resolve("/dashboard", base))
	})

	t.Run("relative path with query", func(t *testing.T) {
		assert.Equal(t, "https://app.example.com/items?page=2", safeurl.Resolve("/items?page=2", base))
	})

	t.Run("same origin absolute", func(t *testing.T) {
		assert.Equal(t, "https://app.example.com/settings", safeurl.Resolve("https://app.example.com/settings", base))
	})

	t.Run("foreign origin falls back", func(t *testing.T) {
		assert.Equal(t, base, safeurl.Resolve("https://evil.com/phish", base))
	})

	t.Run("scheme relative falls back", func(t *testing.T) {
		assert.Equal(t, base, safeurl.Resolve("//evil.com/phish", base))
	})

	t.Run("scheme downgrade falls back", func(t *testing.T) {
		assert.Equal(t, base, safeurl.Resolve("http://app.example.com/settings", base))
	})

	t.Run("empty target", func(t *testing.T) {
		assert.Equal(t, base, safeurl.Resolve("", base))
	})

	t.Run("whitespace target", func(t *testing.T) {
		assert.Equal(t, base, safeurl.Resolve("   ", base))
	})

	t.Run("unparsable target", func(t *testing.T) {
		assert.Equal(t, base, safeurl.Resolve("http://[::1", base))
	})

	t.Run("relative base returned unchanged", func(t *testing.T) {
		assert.Equal(t, "/app", safeurl.Resolve("https://evil.com", "/app"))
	})
}

func TestStripParams(t *testing.T) {
	t.Run("removes named params", func(t *testing.T) {
		got := safeurl.StripParams("https://app.example.com/cb?accessToken=a&refreshToken=b&page=2", "accessToken", "refreshToken")
		assert.Equal(t, "https://app.example.com/cb?page=2", got)
	})

	t.Run("no matching params leaves url untouched", func(t *testing.T) {
		raw := "https://app.example.com/cb?page=2"
		assert.Equal(t, raw, safeurl.StripParams(raw, "accessToken"))
	})

	t.Run("drops query entirely when all params removed", func(t *testing.T) {
		got := safeurl.StripParams("https://app.example.com/cb?state=x", "state")
		assert.Equal(t, "https://app.example.com/cb", got)
	})

	t.Run("unparsable url returned as is", func(t *testing.T) {
		raw := "http://[::1?state=x"
		assert.Equal(t, raw, safeurl.StripParams(raw, "state"))
	})
}
