// Package middleware provides the HTTP gatekeeper that fronts protected
// routes with single sign-on. It reads the encrypted session cookie,
// transparently refreshes expiring tokens, redirects unauthenticated
// requests to the identity provider's login page, and passes the access
// token downstream in a trusted header.
//
// The middleware is standard net/http, so it composes with any router:
//
//	guard := middleware.SSO(middleware.Config{
//		Session:   transport,
//		Processor: processor,
//		LoginURL:  kit.LoginURL,
//		Protected: []string{"/app", "/api"},
//	})
//
//	r := chi.NewRouter()
//	r.Use(guard)
//
// Handlers behind the guard retrieve the session from the request context:
//
//	sess, ok := middleware.GetSession(r.Context())
//	if ok {
//		fmt.Println(sess.User.Name)
//	}
//
// Route protection is prefix based. NewRouteMatcher exposes the same
// matching logic for applications that want to mount the guard selectively.
package middleware
