package ssokit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssokit"
	"github.com/dmitrymomot/ssokit/middleware"
)

func validConfig() ssokit.Config {
	return ssokit.Config{
		EncryptionSecret: "kit-test-encryption-secret",
		AppURL:           "https://app.example.com",
		LoginURL:         "https://login.example.com/login",
		APIURL:           "https://api.example.com",
		CallbackPath:     "/api/sso/callback",
		RedirectURI:      "/",
		CookieName:       "session",
		CookieMaxAge:     7 * 24 * 60 * 60,
		HTTPTimeout:      10 * time.Second,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.EncryptionSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing app URL", func(t *testing.T) {
		cfg := validConfig()
		cfg.AppURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing login URL", func(t *testing.T) {
		cfg := validConfig()
		cfg.LoginURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("endpoint overrides replace API URL", func(t *testing.T) {
		cfg := validConfig()
		cfg.APIURL = ""
		cfg.RefreshEndpoint = "https://other.example.com/refresh"
		cfg.ProfileEndpoint = "https://other.example.com/me"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("partial endpoint overrides are rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.APIURL = ""
		cfg.RefreshEndpoint = "https://other.example.com/refresh"
		assert.Error(t, cfg.Validate())
	})
}

func TestNew(t *testing.T) {
	t.Run("assembles from valid config", func(t *testing.T) {
		kit, err := ssokit.New(validConfig())
		require.NoError(t, err)
		assert.NotNil(t, kit.Middleware())
		assert.NotNil(t, kit.Handlers())
		assert.NotNil(t, kit.Processor())
		assert.NotNil(t, kit.Transport())
		assert.Equal(t, "/api/sso/callback", kit.CallbackPath())
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		_, err := ssokit.New(ssokit.Config{})
		assert.Error(t, err)
	})

	t.Run("matcher reflects protected routes", func(t *testing.T) {
		cfg := validConfig()
		cfg.ProtectedRoutes = []string{"/app"}
		kit, err := ssokit.New(cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"/app", "/app/*"}, kit.Matcher())
	})
}

func kitToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte("kit-test-signing-key"))
	require.NoError(t, err)
	return signed
}

// TestLoginFlow exercises the whole kit against a stub identity provider:
// unauthenticated redirect, callback persistence, authenticated pass-through
// and transparent refresh.
func TestLoginFlow(t *testing.T) {
	freshAccess := kitToken(t, time.Hour)
	var refreshCalls, profileCalls atomic.Int64

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{
				"accessToken":  freshAccess,
				"refreshToken": "r2",
			})
		case "/users/me":
			profileCalls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"id": 7, "name": "Ada"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer provider.Close()

	cfg := validConfig()
	cfg.APIURL = provider.URL
	kit, err := ssokit.New(cfg)
	require.NoError(t, err)

	app := kit.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte("hello " + sess.User.Name))
	}))

	t.Run("unauthenticated request redirects to login", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "https://app.example.com/app", nil))

		require.Equal(t, http.StatusFound, rec.Code)
		loc, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "login.example.com", loc.Host)
		assert.Equal(t, "https://app.example.com/api/sso/callback", loc.Query().Get("redirect_uri"))
		assert.Equal(t, "https://app.example.com/app", loc.Query().Get("callbackUrl"))
		assert.NotEmpty(t, loc.Query().Get("state"))
	})

	// Callback installs the session cookie the rest of the flow rides on.
	access := kitToken(t, time.Hour)
	cbReq := httptest.NewRequest(http.MethodGet,
		"https://app.example.com/api/sso/callback?accessToken="+url.QueryEscape(access)+"&refreshToken=r1", nil)
	cbRec := httptest.NewRecorder()
	kit.Handlers().Callback(cbRec, cbReq)
	require.Equal(t, http.StatusFound, cbRec.Code)
	sessionCookies := cbRec.Result().Cookies()
	require.Len(t, sessionCookies, 1)

	t.Run("authenticated request passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://app.example.com/app", nil)
		req.AddCookie(sessionCookies[0])

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello Ada", rec.Body.String())
		assert.Zero(t, refreshCalls.Load())
	})

	t.Run("expired token refreshes transparently", func(t *testing.T) {
		expired := kitToken(t, -time.Minute)
		expReq := httptest.NewRequest(http.MethodGet,
			"https://app.example.com/api/sso/callback?accessToken="+url.QueryEscape(expired)+"&refreshToken=r1", nil)
		expRec := httptest.NewRecorder()
		kit.Handlers().Callback(expRec, expReq)
		require.Equal(t, http.StatusFound, expRec.Code)
		expiredCookies := expRec.Result().Cookies()
		require.Len(t, expiredCookies, 1)

		req := httptest.NewRequest(http.MethodGet, "https://app.example.com/app", nil)
		req.AddCookie(expiredCookies[0])

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello Ada", rec.Body.String())
		assert.Equal(t, int64(1), refreshCalls.Load())
		require.Len(t, rec.Result().Cookies(), 1, "refreshed session is persisted")
	})

	t.Run("sign out clears the session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://app.example.com/api/sso/signout", nil)
		rec := httptest.NewRecorder()
		kit.Handlers().SignOut(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})
}
