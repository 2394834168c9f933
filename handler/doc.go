// Package handler provides the HTTP endpoints of the single sign-on flow:
// the login callback that exchanges a token pair for an encrypted session
// cookie, and the programmatic session set, clear and sign-out operations.
//
// All endpoints are plain http.HandlerFunc methods, so they mount on any
// router:
//
//	h := handler.New(handler.Config{
//		Session:  transport,
//		Profiles: idpClient,
//		AppURL:   "https://app.example.com",
//	})
//
//	r.Get("/api/sso/callback", h.Callback)
//	r.Post("/api/sso/session", h.SessionSet)
//	r.Delete("/api/sso/session", h.SessionClear)
//	r.Get("/api/sso/signout", h.SignOut)
//
// Error responses are JSON of the form {"ok": false, "error": "..."} with the
// upstream status when the identity provider rejected the credentials.
// Redirect destinations are pinned to the application origin and scrubbed of
// one-time credential parameters.
package handler
