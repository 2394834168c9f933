package session

import "errors"

var (
	// ErrMalformedSession indicates the decrypted cookie payload is not a
	// JSON object resembling a session record.
	ErrMalformedSession = errors.New("session: malformed session record")

	// ErrInvalidSession indicates a parsed record fails semantic validation
	// (missing or incomplete token pair).
	ErrInvalidSession = errors.New("session: invalid session")

	// ErrNoRefresher indicates an expired session could not be refreshed
	// because the manager was built without a refresher.
	ErrNoRefresher = errors.New("session: no refresher configured")

	// ErrRefreshFailed indicates the identity provider rejected or failed
	// the refresh attempt. The whole session is invalidated in response.
	ErrRefreshFailed = errors.New("session: token refresh failed")

	// ErrProfileUnavailable indicates a refreshed token pair could not be
	// paired with a user profile under the strict profile policy.
	ErrProfileUnavailable = errors.New("session: user profile unavailable after refresh")
)
