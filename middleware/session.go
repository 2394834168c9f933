package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/ssokit/core/logger"
	"github.com/dmitrymomot/ssokit/core/session"
	"github.com/dmitrymomot/ssokit/core/sessiontransport"
)

// DefaultAccessTokenHeader carries the authenticated user's access token to
// downstream handlers. The inbound value is always stripped so clients cannot
// spoof it.
const DefaultAccessTokenHeader = "X-SSO-Access-Token"

// sessionContextKey is used as a key for storing the session in request context.
type sessionContextKey struct{}

// Config configures the SSO gatekeeper middleware.
type Config struct {
	// Session reads and writes the encrypted session cookie (required)
	Session *sessiontransport.Cookie
	// Processor validates, refreshes and fails sessions closed (required)
	Processor *session.Manager
	// LoginURL builds the identity provider login URL for a callback URL (required)
	LoginURL func(callbackURL string) string
	// Protected lists path prefixes that require authentication; empty protects everything
	Protected []string
	// AccessTokenHeader overrides the header used to pass the access token downstream
	AccessTokenHeader string
	// Skip defines a function to bypass the middleware for specific requests
	Skip func(r *http.Request) bool
	// ErrorHandler replaces the login redirect for unauthenticated requests,
	// e.g. to answer API routes with 401 JSON. The session cookie is already
	// cleared when it was invalid; err carries the processing failure, nil for
	// a plain missing session.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
	// Logger receives refresh and cookie persistence diagnostics
	Logger *slog.Logger
}

// SSO returns middleware that guards protected routes behind an authenticated
// session. Requests without a valid session are redirected to the identity
// provider's login page with the original URL as the callback. Valid sessions
// pass through with the access token injected into AccessTokenHeader and the
// session available via GetSession; transparently refreshed sessions are
// persisted back to the cookie on the way out.
//
// Panics if Session, Processor or LoginURL is missing.
func SSO(cfg Config) func(http.Handler) http.Handler {
	if cfg.Session == nil {
		panic("sso middleware: session transport is required")
	}
	if cfg.Processor == nil {
		panic("sso middleware: session processor is required")
	}
	if cfg.LoginURL == nil {
		panic("sso middleware: login URL builder is required")
	}

	header := cfg.AccessTokenHeader
	if header == "" {
		header = DefaultAccessTokenHeader
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	matcher := NewRouteMatcher(cfg.Protected)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !matcher.Match(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			// Never trust an inbound copy of the token header.
			r.Header.Del(header)

			result := cfg.Processor.Process(r.Context(), cfg.Session.Read(r), "")
			if !result.Session.IsAuthenticated() {
				if result.Session.ShouldClear {
					cfg.Session.Clear(w)
				}
				if cfg.ErrorHandler != nil {
					cfg.ErrorHandler(w, r, result.Err)
					return
				}
				http.Redirect(w, r, cfg.LoginURL(requestURL(r)), http.StatusFound)
				return
			}

			if result.Refreshed {
				if err := cfg.Session.Save(w, result.Session); err != nil {
					// The refreshed tokens still serve this request; the next
					// one will refresh again from the stale cookie.
					log.WarnContext(r.Context(), "failed to persist refreshed session", logger.Error(err))
				}
			}

			r.Header.Set(header, result.Session.Tokens.AccessToken)
			ctx := context.WithValue(r.Context(), sessionContextKey{}, result.Session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession retrieves the authenticated session stored by the SSO middleware.
// Returns false when the request did not pass through the middleware.
func GetSession(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(session.Session)
	return sess, ok
}

// requestURL reconstructs the absolute URL of the request so the login
// callback can return the user to the page they asked for. Proxy headers win
// over connection details because the edge usually terminates TLS.
func requestURL(r *http.Request) string {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		if r.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	return scheme + "://" + host + r.URL.RequestURI()
}
