package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/ssokit/core/logger"
	"github.com/dmitrymomot/ssokit/core/session"
	"github.com/dmitrymomot/ssokit/pkg/safeurl"
)

// sessionSetRequest is the SessionSet payload. User is optional; when absent
// the profile is fetched with the supplied access token.
type sessionSetRequest struct {
	User   *session.User      `json:"user,omitempty"`
	Tokens *session.TokenPair `json:"tokens"`
}

// SessionSet installs a session from an explicit token pair, for flows that
// obtain tokens outside the browser redirect (native login forms, tests,
// token hand-off between services). Accepts a JSON body and responds with the
// persisted session.
func (h *Handler) SessionSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req sessionSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Tokens == nil || req.Tokens.AccessToken == "" {
		jsonError(w, http.StatusBadRequest, "Missing accessToken")
		return
	}
	if req.Tokens.RefreshToken == "" {
		jsonError(w, http.StatusBadRequest, "Missing refreshToken")
		return
	}

	user := req.User
	if user == nil {
		if h.profiles == nil {
			jsonError(w, http.StatusBadRequest, "Missing user")
			return
		}
		fetched, err := h.profiles.Profile(r.Context(), req.Tokens.AccessToken)
		if err != nil {
			h.log.ErrorContext(r.Context(), "session set profile fetch failed", logger.Error(err))
			jsonError(w, upstreamStatus(err), "Invalid credentials or user fetch failed")
			return
		}
		user = &fetched
	}

	sess := session.Session{User: user, Tokens: req.Tokens}
	if err := h.session.Save(w, sess); err != nil {
		h.log.ErrorContext(r.Context(), "failed to persist session", logger.Error(err))
		jsonError(w, http.StatusInternalServerError, "Failed to persist session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "session": sess})
}

// SessionClear removes the session cookie. Idempotent: clearing an absent
// session still succeeds.
func (h *Handler) SessionClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete && r.Method != http.MethodPost {
		methodNotAllowed(w, "DELETE, POST")
		return
	}
	h.session.Clear(w)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// SignOut clears the session cookie and sends the browser to the configured
// post-sign-out destination. A redirect query parameter may narrow the
// destination within the application origin.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		methodNotAllowed(w, "GET, POST")
		return
	}

	h.session.Clear(w)

	dest := h.signOut
	if target := r.URL.Query().Get("redirect"); target != "" {
		dest = safeurl.Resolve(target, h.appURL)
	}
	http.Redirect(w, r, dest, http.StatusFound)
}
