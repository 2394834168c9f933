package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/ssokit/core/idp"
	"github.com/dmitrymomot/ssokit/core/logger"
	"github.com/dmitrymomot/ssokit/core/session"
	"github.com/dmitrymomot/ssokit/core/sessiontransport"
	"github.com/dmitrymomot/ssokit/pkg/safeurl"
)

// credentialParams are one-time query parameters that must never survive into
// a redirect Location header.
var credentialParams = []string{"accessToken", "refreshToken", "state"}

// Config wires the HTTP endpoints to the session transport and the identity
// provider.
type Config struct {
	// Session reads and writes the encrypted session cookie (required)
	Session *sessiontransport.Cookie
	// Profiles resolves user profiles from access tokens (required for Callback)
	Profiles session.ProfileFetcher
	// AppURL is the application's trusted origin; redirect targets are pinned to it (required)
	AppURL string
	// DefaultRedirect is where the callback sends the browser when the request
	// carries no redirect parameter; defaults to AppURL
	DefaultRedirect string
	// SignOutRedirect is where SignOut sends the browser; defaults to AppURL
	SignOutRedirect string
	// ErrorURL, when set, receives the browser on callback authentication
	// failures (with error and status query parameters) instead of a JSON
	// error body
	ErrorURL string
	// Logger receives handler diagnostics
	Logger *slog.Logger
}

// Handler serves the SSO HTTP endpoints: the login callback and the
// programmatic session set, clear and sign-out operations.
type Handler struct {
	session  *sessiontransport.Cookie
	profiles session.ProfileFetcher
	appURL   string
	redirect string
	signOut  string
	errorURL string
	log      *slog.Logger
}

// New creates the endpoint handler set. Panics if Session or AppURL is
// missing; Profiles may be nil when the Callback endpoint is not mounted.
func New(cfg Config) *Handler {
	if cfg.Session == nil {
		panic("handler: session transport is required")
	}
	if cfg.AppURL == "" {
		panic("handler: app URL is required")
	}

	h := &Handler{
		session:  cfg.Session,
		profiles: cfg.Profiles,
		appURL:   cfg.AppURL,
		redirect: cfg.DefaultRedirect,
		signOut:  cfg.SignOutRedirect,
		errorURL: cfg.ErrorURL,
		log:      cfg.Logger,
	}
	if h.redirect == "" {
		h.redirect = cfg.AppURL
	}
	if h.signOut == "" {
		h.signOut = cfg.AppURL
	}
	if h.log == nil {
		h.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return h
}

// Callback completes the login flow. The identity provider redirects the
// browser here with a fresh token pair in the query string; the handler
// exchanges the access token for the user profile, persists the encrypted
// session cookie and redirects to the sanitized destination with the
// credentials stripped from the URL.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	accessToken := query.Get("accessToken")
	refreshToken := query.Get("refreshToken")
	if accessToken == "" {
		jsonError(w, http.StatusBadRequest, "Missing accessToken")
		return
	}
	if refreshToken == "" {
		jsonError(w, http.StatusBadRequest, "Missing refreshToken")
		return
	}

	if h.profiles == nil {
		jsonError(w, http.StatusInternalServerError, "Profile endpoint not configured")
		return
	}

	user, err := h.profiles.Profile(r.Context(), accessToken)
	if err != nil {
		h.log.ErrorContext(r.Context(), "callback authentication failed", logger.Error(err))
		h.authFailure(w, r, upstreamStatus(err), "Invalid credentials or user fetch failed")
		return
	}

	sess := session.Session{
		User:   &user,
		Tokens: &session.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
	}
	if err := h.session.Save(w, sess); err != nil {
		h.log.ErrorContext(r.Context(), "failed to persist session", logger.Error(err))
		jsonError(w, http.StatusInternalServerError, "Failed to persist session")
		return
	}

	target := query.Get("redirect")
	if target == "" {
		target = h.redirect
	}
	dest := safeurl.Resolve(target, h.appURL)
	http.Redirect(w, r, safeurl.StripParams(dest, credentialParams...), http.StatusFound)
}

// authFailure reports a failed token exchange, either as a redirect to the
// configured error page or as a JSON error body.
func (h *Handler) authFailure(w http.ResponseWriter, r *http.Request, status int, message string) {
	if h.errorURL != "" {
		if dest, err := url.Parse(h.errorURL); err == nil {
			q := dest.Query()
			q.Set("error", message)
			q.Set("status", strconv.Itoa(status))
			dest.RawQuery = q.Encode()
			http.Redirect(w, r, dest.String(), http.StatusFound)
			return
		}
	}
	jsonError(w, status, message)
}

// upstreamStatus maps a profile fetch error to the status the callback
// reports. Identity provider rejections keep their status; transport errors
// and everything else read as unauthorized.
func upstreamStatus(err error) int {
	var idpErr *idp.Error
	if errors.As(err, &idpErr) && idpErr.Status > 0 {
		return idpErr.Status
	}
	return http.StatusUnauthorized
}
