// Package cookie provides HTTP cookie management with secure defaults
// (httpOnly, SameSite=Lax, path=/) and a serialized-size guard.
//
// The manager handles plain cookie I/O only. Session payloads are encrypted
// by the envelope codec before being stored here; keeping the concerns apart
// means the wire format has exactly one owner.
//
//	manager := cookie.New([]cookie.Option{
//		cookie.WithSecure(true),
//		cookie.WithMaxAge(7 * 24 * 60 * 60),
//	})
//
//	err := manager.Set(w, "session", sealedValue)
//	value, err := manager.Get(r, "session")
//	manager.Delete(w, "session")
package cookie
