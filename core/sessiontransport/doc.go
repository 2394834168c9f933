// Package sessiontransport moves encrypted session records between HTTP
// requests/responses and the domain layer.
//
// The Cookie transport is the single write path for the session cookie:
// every component that persists a session — the login callback, the session
// endpoints, the gatekeeper after a refresh — goes through Save, so cookie
// attributes (httpOnly, SameSite=Lax, path=/, max-age, secure) are decided in
// exactly one place.
package sessiontransport
