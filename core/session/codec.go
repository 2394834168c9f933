package session

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Marshal serializes a session record to the plaintext JSON fed to the
// envelope codec. Only user and tokens are persisted; transient flags such as
// ShouldClear never reach the wire.
func Marshal(s Session) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", errors.Join(ErrMalformedSession, err)
	}
	return string(data), nil
}

// Unmarshal parses a decrypted session record. It guarantees a JSON object
// round-trip only; semantic validation of the token shape belongs to
// Session.Validate on the caller side.
func Unmarshal(text string) (Session, error) {
	trimmed := bytes.TrimSpace([]byte(text))
	if !bytes.HasPrefix(trimmed, []byte("{")) {
		return Session{}, ErrMalformedSession
	}

	var s Session
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return Session{}, errors.Join(ErrMalformedSession, err)
	}
	return s, nil
}
