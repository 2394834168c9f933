package idp

import "fmt"

// Error is the typed failure returned for any identity provider call that did
// not succeed. Status is the upstream HTTP status, or 0 for network-level
// failures that never produced a response.
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("idp: request failed: %s", e.Message)
	}
	return fmt.Sprintf("idp: status %d: %s", e.Status, e.Message)
}

// ClientFailure reports whether the provider rejected the request with a 4xx
// status. Client failures are permanent for a given token (revoked, reused,
// malformed) and feed the refresh circuit breaker; everything else is
// considered retryable.
func (e *Error) ClientFailure() bool {
	return e.Status >= 400 && e.Status < 500
}
