package envelope

import "errors"

var (
	// ErrNoSecret indicates the encryption secret is not configured.
	// This is a deployment mistake and is intentionally fatal on first use.
	ErrNoSecret = errors.New("envelope: encryption secret is required")

	// ErrEmptyInput indicates Decrypt was called with an empty string.
	ErrEmptyInput = errors.New("envelope: empty encrypted input")

	// ErrInvalidFormat indicates the value does not look like any known
	// envelope format.
	ErrInvalidFormat = errors.New("envelope: invalid encrypted format")

	// ErrUnsupportedLegacyFormat indicates a value in the retired
	// salt:iv:tag:cipher format. Legacy envelopes are rejected, never decoded.
	ErrUnsupportedLegacyFormat = errors.New("envelope: legacy encryption format no longer supported")

	// ErrDecryptionFailed indicates the envelope could not be decrypted,
	// due to tampering, truncation, or a wrong secret.
	ErrDecryptionFailed = errors.New("envelope: decryption failed")
)
