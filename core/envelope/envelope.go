package envelope

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	jose "github.com/go-jose/go-jose/v4"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// saltLength is the random salt size in bytes, prepended hex-encoded to every envelope.
	saltLength = 16
	// iterations is the PBKDF2 work factor. Raising it invalidates existing envelopes.
	iterations = 100_000
	// keyLength derives a 256-bit key for A256GCM.
	keyLength = 32
)

// Codec produces and consumes encrypted envelopes in the form
// "<saltHex>:<compactJWE>". Each Encrypt call generates a fresh random salt
// and derives a one-off AES-256 key from the shared secret via PBKDF2-SHA256,
// so envelopes are not correlatable across sessions even with a long-lived secret.
type Codec struct {
	secret string
}

// New creates an envelope codec. An empty secret is accepted here and only
// rejected at the first cryptographic operation, so misconfigured deployments
// fail on first use rather than at wiring time.
func New(secret string) *Codec {
	return &Codec{secret: secret}
}

// Encrypt seals plaintext into a fresh envelope.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	if c.secret == "" {
		return "", ErrNoSecret
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("envelope: generate salt: %w", err)
	}

	enc, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: c.deriveKey(salt)},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("envelope: init encrypter: %w", err)
	}

	obj, err := enc.Encrypt([]byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("envelope: encrypt: %w", err)
	}

	compact, err := obj.CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("envelope: serialize: %w", err)
	}

	return hex.EncodeToString(salt) + ":" + compact, nil
}

// Decrypt opens an envelope produced by Encrypt. Tampered, truncated, or
// wrong-secret envelopes fail with ErrDecryptionFailed; strings in the retired
// 4-part colon format fail with ErrUnsupportedLegacyFormat and are never
// partially decoded.
func (c *Codec) Decrypt(envelope string) (string, error) {
	if envelope == "" {
		return "", ErrEmptyInput
	}
	if c.secret == "" {
		return "", ErrNoSecret
	}

	colon := strings.IndexByte(envelope, ':')
	if colon < 0 {
		return "", legacyError(envelope)
	}

	saltHex, compact := envelope[:colon], envelope[colon+1:]

	// A compact JWE has exactly five dot-delimited parts. With direct key
	// agreement the encrypted-key part is empty, producing two consecutive
	// dots, so the check counts delimiters instead of non-empty parts.
	if strings.Count(compact, ".") != 4 {
		return "", legacyError(envelope)
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", ErrInvalidFormat
	}

	obj, err := jose.ParseEncrypted(compact,
		[]jose.KeyAlgorithm{jose.DIRECT},
		[]jose.ContentEncryption{jose.A256GCM},
	)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	plaintext, err := obj.Decrypt(c.deriveKey(salt))
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}

func (c *Codec) deriveKey(salt []byte) []byte {
	return pbkdf2.Key([]byte(c.secret), salt, iterations, keyLength, sha256.New)
}

// legacyError distinguishes the retired colon-delimited wire format from
// plain garbage. Legacy envelopes must fail loudly so stale cookies get
// cleared instead of being silently treated as absent.
func legacyError(envelope string) error {
	if len(strings.Split(envelope, ":")) == 4 {
		return ErrUnsupportedLegacyFormat
	}
	return ErrInvalidFormat
}
