package ssokit

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dmitrymomot/ssokit/core/cookie"
	"github.com/dmitrymomot/ssokit/core/envelope"
	"github.com/dmitrymomot/ssokit/core/idp"
	"github.com/dmitrymomot/ssokit/core/refresh"
	"github.com/dmitrymomot/ssokit/core/session"
	"github.com/dmitrymomot/ssokit/core/sessiontransport"
	"github.com/dmitrymomot/ssokit/handler"
	"github.com/dmitrymomot/ssokit/middleware"
)

// Config holds everything the kit needs, loadable from the environment via
// core/config. URLs are normalized (trailing slashes stripped) before use.
type Config struct {
	// EncryptionSecret derives the session cookie encryption key.
	EncryptionSecret string `env:"SSO_ENCRYPTION_SECRET,required"`

	// AppURL is this application's public origin, e.g. https://app.example.com.
	AppURL string `env:"SSO_APP_URL,required"`

	// LoginURL is the identity provider's login page.
	LoginURL string `env:"SSO_LOGIN_URL,required"`

	// APIURL is the identity provider's API base; the refresh and profile
	// endpoints default to paths under it.
	APIURL string `env:"SSO_API_URL"`

	// RefreshEndpoint overrides APIURL + "/auth/refresh".
	RefreshEndpoint string `env:"SSO_REFRESH_ENDPOINT"`

	// ProfileEndpoint overrides APIURL + "/users/me".
	ProfileEndpoint string `env:"SSO_PROFILE_ENDPOINT"`

	// CallbackPath is where the login callback handler is mounted on AppURL.
	CallbackPath string `env:"SSO_CALLBACK_PATH" envDefault:"/api/sso/callback"`

	// RedirectURI is the default post-login destination within the app.
	RedirectURI string `env:"SSO_REDIRECT_URI" envDefault:"/"`

	// RegisterCallbackURI, when set, is advertised to the login page so new
	// sign-ups return to a dedicated path.
	RegisterCallbackURI string `env:"SSO_REGISTER_CALLBACK_URI"`

	// ErrorURI, when set, is the app path that receives callback
	// authentication failures instead of a JSON error body.
	ErrorURI string `env:"SSO_ERROR_URI"`

	// CookieName is the session cookie name.
	CookieName string `env:"SSO_COOKIE_NAME" envDefault:"session"`

	// CookieMaxAge is the session cookie lifetime in seconds.
	CookieMaxAge int `env:"SSO_COOKIE_MAX_AGE" envDefault:"604800"`

	// CookieSecure restricts the session cookie to HTTPS.
	CookieSecure bool `env:"SSO_COOKIE_SECURE" envDefault:"false"`

	// HTTPTimeout bounds every identity provider call.
	HTTPTimeout time.Duration `env:"SSO_HTTP_TIMEOUT" envDefault:"10s"`

	// AccessTokenHeader carries the access token to downstream handlers.
	AccessTokenHeader string `env:"SSO_ACCESS_TOKEN_HEADER" envDefault:"X-SSO-Access-Token"`

	// ProtectedRoutes lists path prefixes the gatekeeper guards; empty
	// protects everything.
	ProtectedRoutes []string `env:"SSO_PROTECTED_ROUTES" envSeparator:","`

	// Debug enables verbose logging to stderr when no logger is supplied.
	Debug bool `env:"SSO_DEBUG" envDefault:"false"`
}

// Validate reports the first missing or inconsistent setting.
func (c Config) Validate() error {
	if c.EncryptionSecret == "" {
		return errors.New("ssokit: encryption secret is required")
	}
	if c.AppURL == "" {
		return errors.New("ssokit: app URL is required")
	}
	if c.LoginURL == "" {
		return errors.New("ssokit: login URL is required")
	}
	if c.APIURL == "" && (c.RefreshEndpoint == "" || c.ProfileEndpoint == "") {
		return errors.New("ssokit: either API URL or both endpoint overrides are required")
	}
	return nil
}

// Kit wires the full single sign-on client: envelope codec, identity
// provider client, refresh coordinator, session processor, cookie transport,
// HTTP endpoints and the route gatekeeper.
type Kit struct {
	cfg       Config
	codec     *envelope.Codec
	client    *idp.Client
	transport *sessiontransport.Cookie
	processor *session.Manager
	handlers  *handler.Handler
	guard     func(http.Handler) http.Handler
	log       *slog.Logger
}

// Option configures optional Kit collaborators.
type Option func(*kitOptions)

type kitOptions struct {
	logger     *slog.Logger
	blocklist  refresh.Blocklist
	httpClient *http.Client
	policy     session.ProfilePolicy
	skip       func(*http.Request) bool
}

// WithLogger routes all kit diagnostics to log.
func WithLogger(log *slog.Logger) Option {
	return func(o *kitOptions) {
		if log != nil {
			o.logger = log
		}
	}
}

// WithBlocklist backs the refresh circuit breaker with a shared store, such
// as refresh.NewRedisBlocklist, so revoked tokens stay blocked across
// replicas. Defaults to an in-process blocklist.
func WithBlocklist(b refresh.Blocklist) Option {
	return func(o *kitOptions) {
		if b != nil {
			o.blocklist = b
		}
	}
}

// WithHTTPClient replaces the identity provider HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *kitOptions) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

// WithProfilePolicy changes how a refresh without a resolvable profile is
// handled. The default is session.ProfileStrict.
func WithProfilePolicy(p session.ProfilePolicy) Option {
	return func(o *kitOptions) { o.policy = p }
}

// WithSkip bypasses the gatekeeper for matching requests, typically health
// checks and static assets.
func WithSkip(skip func(*http.Request) bool) Option {
	return func(o *kitOptions) { o.skip = skip }
}

// New validates cfg and assembles the kit. The returned Kit is ready to
// mount: Middleware guards routes, Handlers serves the SSO endpoints.
func New(cfg Config, opts ...Option) (*Kit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.AppURL = normalizeURL(cfg.AppURL)
	cfg.LoginURL = normalizeURL(cfg.LoginURL)
	cfg.APIURL = normalizeURL(cfg.APIURL)

	o := kitOptions{
		blocklist: refresh.NewMemoryBlocklist(),
		policy:    session.ProfileStrict,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		if cfg.Debug {
			o.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		} else {
			o.logger = slog.Default()
		}
	}

	refreshURL := cfg.RefreshEndpoint
	if refreshURL == "" {
		refreshURL = cfg.APIURL + "/auth/refresh"
	}
	profileURL := cfg.ProfileEndpoint
	if profileURL == "" {
		profileURL = cfg.APIURL + "/users/me"
	}

	var clientOpts []idp.ClientOption
	if o.httpClient != nil {
		clientOpts = append(clientOpts, idp.WithHTTPClient(o.httpClient))
	}
	client := idp.NewClient(idp.Config{
		RefreshURL: refreshURL,
		ProfileURL: profileURL,
		Timeout:    cfg.HTTPTimeout,
	}, clientOpts...)

	coordinator := refresh.NewCoordinator(client,
		refresh.WithBlocklist(o.blocklist),
		refresh.WithLogger(o.logger),
	)

	codec := envelope.New(cfg.EncryptionSecret)
	transport := sessiontransport.NewCookie(sessiontransport.Config{
		Name:   cfg.CookieName,
		MaxAge: cfg.CookieMaxAge,
		Secure: cfg.CookieSecure,
	}, codec, cookie.New(nil))

	processor := session.NewManager(codec, coordinator,
		session.WithProfileFetcher(client),
		session.WithProfilePolicy(o.policy),
		session.WithLogger(o.logger),
	)

	kit := &Kit{
		cfg:       cfg,
		codec:     codec,
		client:    client,
		transport: transport,
		processor: processor,
		log:       o.logger,
	}
	errorURL := ""
	if cfg.ErrorURI != "" {
		errorURL = cfg.AppURL + cfg.ErrorURI
	}
	kit.handlers = handler.New(handler.Config{
		Session:         transport,
		Profiles:        client,
		AppURL:          cfg.AppURL,
		DefaultRedirect: cfg.RedirectURI,
		ErrorURL:        errorURL,
		Logger:          o.logger,
	})
	kit.guard = middleware.SSO(middleware.Config{
		Session:           transport,
		Processor:         processor,
		LoginURL:          kit.LoginURL,
		Protected:         cfg.ProtectedRoutes,
		AccessTokenHeader: cfg.AccessTokenHeader,
		Skip:              o.skip,
		Logger:            o.logger,
	})

	return kit, nil
}

// Middleware returns the route gatekeeper. Mount it in front of everything
// the session should protect.
func (k *Kit) Middleware() func(http.Handler) http.Handler {
	return k.guard
}

// Handlers returns the SSO HTTP endpoint set (callback, session set/clear,
// sign-out).
func (k *Kit) Handlers() *handler.Handler {
	return k.handlers
}

// Processor exposes the session processor for server-side session reads
// outside the middleware path.
func (k *Kit) Processor() *session.Manager {
	return k.processor
}

// Transport exposes the cookie transport for handlers that read or write the
// session directly.
func (k *Kit) Transport() *sessiontransport.Cookie {
	return k.transport
}

// Matcher reports the wildcard route patterns derived from ProtectedRoutes,
// for mounting the middleware on a subtree router.
func (k *Kit) Matcher() []string {
	return middleware.NewRouteMatcher(k.cfg.ProtectedRoutes).Patterns()
}

// CallbackPath returns the path the callback handler should be mounted on.
func (k *Kit) CallbackPath() string {
	return k.cfg.CallbackPath
}
