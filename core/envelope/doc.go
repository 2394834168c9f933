// Package envelope implements the authenticated-encryption wire format used
// for the session cookie.
//
// An envelope is the string "<saltHex>:<compactJWE>". The salt is 16 random
// bytes generated per encryption; the key is derived from the configured
// shared secret with PBKDF2-SHA256 at 100,000 iterations; the payload is a
// compact-serialized JWE using direct key agreement and A256GCM.
//
// Basic usage:
//
//	codec := envelope.New(os.Getenv("SSO_ENCRYPTION_SECRET"))
//
//	sealed, err := codec.Encrypt(`{"hello":"world"}`)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	plaintext, err := codec.Decrypt(sealed)
//
// Decryption fails closed: any tampered or malformed input returns an error,
// never partially recovered plaintext. Values in the retired 4-part colon
// format return ErrUnsupportedLegacyFormat so callers can clear stale cookies
// explicitly instead of misreading them.
package envelope
