package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssokit/core/cookie"
)

func TestManager_SetGet(t *testing.T) {
	m := cookie.New(nil)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "session", "value123"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Cookie", w.Header().Get("Set-Cookie"))

	value, err := m.Get(r, "session")
	require.NoError(t, err)
	assert.Equal(t, "value123", value)
}

func TestManager_SecureDefaults(t *testing.T) {
	m := cookie.New(nil)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "session", "v"))

	header := w.Header().Get("Set-Cookie")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "Path=/")
	assert.Contains(t, header, "SameSite=Lax")
}

func TestManager_OptionsOverride(t *testing.T) {
	m := cookie.New([]cookie.Option{cookie.WithSecure(true)})

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "session", "v", cookie.WithMaxAge(3600)))

	header := w.Header().Get("Set-Cookie")
	assert.Contains(t, header, "Secure")
	assert.Contains(t, header, "Max-Age=3600")

	// Per-call options must not leak into the defaults.
	w = httptest.NewRecorder()
	require.NoError(t, m.Set(w, "session", "v"))
	assert.NotContains(t, w.Header().Get("Set-Cookie"), "Max-Age")
}

func TestManager_Get_NotFound(t *testing.T) {
	m := cookie.New(nil)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := m.Get(r, "absent")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Delete(t *testing.T) {
	m := cookie.New(nil)

	w := httptest.NewRecorder()
	m.Delete(w, "session")

	header := w.Header().Get("Set-Cookie")
	assert.Contains(t, header, "session=;")
	assert.Contains(t, header, "Max-Age=0")
}

func TestManager_SizeLimit(t *testing.T) {
	m := cookie.New(nil, cookie.WithMaxSize(64))

	w := httptest.NewRecorder()
	err := m.Set(w, "big", strings.Repeat("x", 128))

	var tooLarge cookie.ErrCookieTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "big", tooLarge.Name)
	assert.Empty(t, w.Header().Get("Set-Cookie"), "oversized cookies are never written")
}
