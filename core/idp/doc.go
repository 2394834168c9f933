// Package idp is the HTTP client for the external identity provider's
// refresh and profile endpoints.
//
// The provider is an opaque remote service: this package shuttles bytes and
// classifies failures, nothing more. Every call is bounded by a timeout and
// every failure — transport or non-2xx — maps to *Error carrying the upstream
// status so callers can distinguish permanently-bad tokens (4xx) from
// transient provider trouble.
package idp
