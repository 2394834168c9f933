// Package safeurl guards redirect targets against open-redirect abuse.
//
// Authentication flows pass user-controlled "return to" URLs through query
// parameters. Resolve pins such a target to a trusted origin, and StripParams
// removes one-time credentials before the URL is echoed back to the client:
//
//	dest := safeurl.Resolve(r.URL.Query().Get("redirect"), appURL)
//	dest = safeurl.StripParams(dest, "accessToken", "refreshToken", "state")
//	http.Redirect(w, r, dest, http.StatusFound)
package safeurl
