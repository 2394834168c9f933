// Package ssokit is a single sign-on client toolkit for Go web applications.
// It keeps the user's access/refresh token pair and profile in an encrypted
// httponly cookie, refreshes expiring tokens transparently on the request
// path, and guards protected routes with a redirect-to-login gatekeeper.
//
// The root package wires the building blocks from the core packages into a
// ready-to-mount Kit:
//
//	var cfg ssokit.Config
//	config.MustLoad(&cfg)
//
//	kit, err := ssokit.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	r := chi.NewRouter()
//	r.Get(kit.CallbackPath(), kit.Handlers().Callback)
//	r.Get("/api/sso/signout", kit.Handlers().SignOut)
//	r.Group(func(r chi.Router) {
//		r.Use(kit.Middleware())
//		r.Get("/app", appHandler)
//	})
//
// Handlers behind the middleware read the session from the request context
// with middleware.GetSession, or from the injected access token header.
//
// The building blocks compose individually when the kit's defaults do not
// fit:
//
//   - core/envelope: PBKDF2 + JWE encryption of the cookie payload
//   - core/session: the session model and the fail-closed processor
//   - core/claims: access token expiry inspection without verification
//   - core/idp: the identity provider HTTP client
//   - core/refresh: refresh coalescing and the bad-token circuit breaker
//   - core/sessiontransport: the encrypted cookie transport
//   - handler, middleware: the HTTP surface
package ssokit
