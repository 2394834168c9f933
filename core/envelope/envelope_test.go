package envelope_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssokit/core/envelope"
)

const testSecret = "test-encryption-secret-for-envelopes"

func TestCodec_RoundTrip(t *testing.T) {
	codec := envelope.New(testSecret)

	for _, plaintext := range []string{
		`{"user":{"id":7},"tokens":{"accessToken":"A1","refreshToken":"R1"}}`,
		"",
		"plain text with spaces and unicode: éñ日本",
	} {
		sealed, err := codec.Encrypt(plaintext)
		require.NoError(t, err)

		opened, err := codec.Decrypt(sealed)
		require.NoError(t, err)
		assert.Equal(t, plaintext, opened)
	}
}

func TestCodec_Format(t *testing.T) {
	codec := envelope.New(testSecret)

	sealed, err := codec.Encrypt("payload")
	require.NoError(t, err)

	colon := strings.IndexByte(sealed, ':')
	require.Positive(t, colon, "envelope must carry a salt prefix")
	assert.Len(t, sealed[:colon], 32, "salt is 16 bytes hex-encoded")
	assert.Equal(t, 4, strings.Count(sealed[colon+1:], "."), "payload is a 5-part compact JWE")
}

func TestCodec_FreshSaltPerCall(t *testing.T) {
	codec := envelope.New(testSecret)

	first, err := codec.Encrypt("same input")
	require.NoError(t, err)
	second, err := codec.Encrypt("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, strings.SplitN(first, ":", 2)[0], strings.SplitN(second, ":", 2)[0])
}

func TestCodec_TamperDetection(t *testing.T) {
	codec := envelope.New(testSecret)

	sealed, err := codec.Encrypt("sensitive session data")
	require.NoError(t, err)

	// Flip one character of the authentication tag (last JWE segment).
	lastDot := strings.LastIndexByte(sealed, '.')
	tampered := []byte(sealed)
	if tampered[lastDot+1] == 'A' {
		tampered[lastDot+1] = 'B'
	} else {
		tampered[lastDot+1] = 'A'
	}

	_, err = codec.Decrypt(string(tampered))
	assert.ErrorIs(t, err, envelope.ErrDecryptionFailed)
}

func TestCodec_WrongSecret(t *testing.T) {
	sealed, err := envelope.New(testSecret).Encrypt("payload")
	require.NoError(t, err)

	_, err = envelope.New("a-completely-different-secret").Decrypt(sealed)
	assert.ErrorIs(t, err, envelope.ErrDecryptionFailed)
}

func TestCodec_LegacyRejection(t *testing.T) {
	codec := envelope.New(testSecret)

	_, err := codec.Decrypt("73616c74:6976:746167:636970686572")
	assert.ErrorIs(t, err, envelope.ErrUnsupportedLegacyFormat)

	// Legacy detection keys off the 4-part colon shape even without hex.
	_, err = codec.Decrypt("salt:iv:tag:cipher")
	assert.ErrorIs(t, err, envelope.ErrUnsupportedLegacyFormat)
}

func TestCodec_InvalidInput(t *testing.T) {
	codec := envelope.New(testSecret)

	t.Run("empty input", func(t *testing.T) {
		_, err := codec.Decrypt("")
		assert.ErrorIs(t, err, envelope.ErrEmptyInput)
	})

	t.Run("no colon, not legacy", func(t *testing.T) {
		_, err := codec.Decrypt("justgarbage")
		assert.ErrorIs(t, err, envelope.ErrInvalidFormat)
	})

	t.Run("colon but not a JWE", func(t *testing.T) {
		_, err := codec.Decrypt("deadbeef:notajwe")
		assert.ErrorIs(t, err, envelope.ErrInvalidFormat)
	})

	t.Run("bad salt hex", func(t *testing.T) {
		_, err := codec.Decrypt("zzzz:a.b.c.d.e")
		assert.ErrorIs(t, err, envelope.ErrInvalidFormat)
	})

	t.Run("valid shape, bogus JWE", func(t *testing.T) {
		_, err := codec.Decrypt("deadbeef:a.b.c.d.e")
		assert.ErrorIs(t, err, envelope.ErrDecryptionFailed)
	})
}

func TestCodec_MissingSecret(t *testing.T) {
	codec := envelope.New("")

	_, err := codec.Encrypt("anything")
	assert.ErrorIs(t, err, envelope.ErrNoSecret)

	_, err = codec.Decrypt("deadbeef:a.b.c.d.e")
	assert.ErrorIs(t, err, envelope.ErrNoSecret)
}
