package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrymomot/ssokit/core/session"
)

const defaultTimeout = 10 * time.Second

// maxErrorBodySize bounds how much of an error response is read for detail.
const maxErrorBodySize = 8 << 10

// Config configures the identity provider client endpoints.
type Config struct {
	// RefreshURL is the token refresh endpoint (POST {"refreshToken": ...}).
	RefreshURL string `env:"SSO_REFRESH_ENDPOINT" envDefault:""`

	// ProfileURL is the current-user endpoint (GET with Bearer token).
	ProfileURL string `env:"SSO_PROFILE_ENDPOINT" envDefault:""`

	// Timeout bounds every outbound call. A hung provider is a refresh
	// failure, not a wedged request.
	Timeout time.Duration `env:"SSO_HTTP_TIMEOUT" envDefault:"10s"`
}

// Client calls the identity provider's refresh and profile endpoints.
// Tokens are minted elsewhere; this client only consumes them.
type Client struct {
	httpClient *http.Client
	refreshURL string
	profileURL string
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests and
// for hosts with custom transport requirements.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates an identity provider client from configuration.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		refreshURL: cfg.RefreshURL,
		profileURL: cfg.ProfileURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Refresh exchanges a refresh token for a new token pair. Ordinary HTTP
// failure never panics or surfaces an untyped error: non-2xx responses and
// transport errors both map to *Error so callers can classify by status.
// The returned pair is the provider's response verbatim; attaching a user
// profile is the caller's job.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (session.TokenPair, error) {
	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return session.TokenPair{}, fmt.Errorf("idp: encode refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.refreshURL, bytes.NewReader(body))
	if err != nil {
		return session.TokenPair{}, fmt.Errorf("idp: build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return session.TokenPair{}, transportError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return session.TokenPair{}, responseError(resp)
	}

	var pair session.TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return session.TokenPair{}, fmt.Errorf("idp: decode refresh response: %w", err)
	}

	return pair, nil
}

// Profile fetches the user profile for an access token.
func (c *Client) Profile(ctx context.Context, accessToken string) (session.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.profileURL, nil)
	if err != nil {
		return session.User{}, fmt.Errorf("idp: build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return session.User{}, transportError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return session.User{}, responseError(resp)
	}

	var user session.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return session.User{}, fmt.Errorf("idp: decode profile response: %w", err)
	}

	return user, nil
}

// responseError extracts whatever detail the provider put in a non-2xx body.
func responseError(resp *http.Response) *Error {
	e := &Error{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(data) == 0 {
		e.Message = http.StatusText(resp.StatusCode)
		return e
	}

	var detail struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &detail); err == nil {
		switch {
		case detail.Message != "":
			e.Message = detail.Message
		case detail.Error != "":
			e.Message = detail.Error
		case detail.Detail != "":
			e.Message = detail.Detail
		}
	}
	if e.Message == "" {
		e.Message = string(data)
	}

	return e
}

// transportError maps network-level failures (DNS, refused connections,
// timeouts) to a status-zero *Error, which classifies as retryable.
func transportError(err error) *Error {
	return &Error{Status: 0, Message: err.Error()}
}
