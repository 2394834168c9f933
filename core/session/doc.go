// Package session defines the domain session record, its JSON codec, and the
// request-time processor that resolves an encrypted cookie into a usable
// session.
//
// # Session Record
//
// A Session carries an optional user profile and an optional token pair. The
// record is authenticated if and only if both tokens are present and
// non-empty; a profile alone never authenticates. ShouldClear is an advisory,
// never-persisted flag telling the caller to delete the cookie.
//
// # Processor
//
// Manager.Process is the single decision procedure used by the edge
// gatekeeper and by downstream handlers:
//
//	result := manager.Process(ctx, rawCookieValue, "")
//	if result.Session.IsAuthenticated() {
//		// admit; persist a new cookie when result.Refreshed
//	}
//
// Every failure — tamper, malformed record, expired-and-unrefreshable — fails
// closed to an empty session with ShouldClear set. The processor never writes
// cookies and never lets an error escape as a panic.
package session
