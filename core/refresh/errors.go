package refresh

import "errors"

var (
	// ErrNoRefreshToken indicates Refresh was called with an empty token.
	// No provider call is made.
	ErrNoRefreshToken = errors.New("refresh: no refresh token")

	// ErrTokenBlocked indicates the token previously failed with a client
	// error and is circuit-broken. No provider call is made.
	ErrTokenBlocked = errors.New("refresh: token is blocklisted")
)
