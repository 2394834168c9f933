package ssokit_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssokit"
)

func TestLoginURL(t *testing.T) {
	t.Run("carries state, redirect_uri and callbackUrl", func(t *testing.T) {
		kit, err := ssokit.New(validConfig())
		require.NoError(t, err)

		loc, err := url.Parse(kit.LoginURL("https://app.example.com/app?tab=2"))
		require.NoError(t, err)

		assert.Equal(t, "login.example.com", loc.Host)
		assert.Equal(t, "/login", loc.Path)
		assert.NotEmpty(t, loc.Query().Get("state"))
		assert.Equal(t, "https://app.example.com/api/sso/callback", loc.Query().Get("redirect_uri"))
		assert.Equal(t, "https://app.example.com/app?tab=2", loc.Query().Get("callbackUrl"))
		assert.Empty(t, loc.Query().Get("register_callback_uri"))
	})

	t.Run("fresh state per call", func(t *testing.T) {
		kit, err := ssokit.New(validConfig())
		require.NoError(t, err)

		first, err := url.Parse(kit.LoginURL(""))
		require.NoError(t, err)
		second, err := url.Parse(kit.LoginURL(""))
		require.NoError(t, err)
		assert.NotEqual(t, first.Query().Get("state"), second.Query().Get("state"))
	})

	t.Run("register callback advertised when configured", func(t *testing.T) {
		cfg := validConfig()
		cfg.RegisterCallbackURI = "/welcome/"
		kit, err := ssokit.New(cfg)
		require.NoError(t, err)

		loc, err := url.Parse(kit.LoginURL(""))
		require.NoError(t, err)
		assert.Equal(t, "https://app.example.com/welcome", loc.Query().Get("register_callback_uri"))
	})

	t.Run("root register callback is ignored", func(t *testing.T) {
		cfg := validConfig()
		cfg.RegisterCallbackURI = "/"
		kit, err := ssokit.New(cfg)
		require.NoError(t, err)

		loc, err := url.Parse(kit.LoginURL(""))
		require.NoError(t, err)
		assert.Empty(t, loc.Query().Get("register_callback_uri"))
	})

	t.Run("empty callback omits the parameter", func(t *testing.T) {
		kit, err := ssokit.New(validConfig())
		require.NoError(t, err)

		loc, err := url.Parse(kit.LoginURL(""))
		require.NoError(t, err)
		assert.False(t, loc.Query().Has("callbackUrl"))
	})

	t.Run("trailing slashes are normalized", func(t *testing.T) {
		cfg := validConfig()
		cfg.AppURL = "https://app.example.com///"
		kit, err := ssokit.New(cfg)
		require.NoError(t, err)

		loc, err := url.Parse(kit.LoginURL(""))
		require.NoError(t, err)
		assert.Equal(t, "https://app.example.com/api/sso/callback", loc.Query().Get("redirect_uri"))
	})
}
