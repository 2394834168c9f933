package session

import (
	"encoding/json"
	"fmt"
)

// TokenPair holds the access/refresh token pair issued by the identity
// provider. Pairs are immutable once issued and replaced wholesale on refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Email is a user email address as reported by the identity provider.
type Email struct {
	Address    string `json:"address"`
	IsVerified bool   `json:"isVerified"`
	Active     bool   `json:"active"`
}

// PhoneCountry carries the dialing prefix for a phone record.
type PhoneCountry struct {
	PhoneNumberCode string `json:"phoneNumberCode"`
}

// Phone is a user phone number as reported by the identity provider.
type Phone struct {
	CountryID  int          `json:"countryId"`
	Number     string       `json:"number"`
	IsVerified bool         `json:"isVerified"`
	Country    PhoneCountry `json:"country"`
	Active     bool         `json:"active"`
}

// User is the profile attached to a session. The shape varies per deployment;
// fields this library does not interpret travel in Extra untouched.
type User struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Emails   []Email         `json:"emails,omitempty"`
	Phones   []Phone         `json:"phones,omitempty"`
	PhotoURL string          `json:"photoUrl,omitempty"`
	Extra    json.RawMessage `json:"extra,omitempty"`
}

// Session is the domain session record persisted (encrypted) in the cookie.
//
// A nil Tokens is the canonical unauthenticated value. ShouldClear is
// advisory: it tells the caller to delete the cookie and is never persisted
// into the envelope.
type Session struct {
	User   *User      `json:"user"`
	Tokens *TokenPair `json:"tokens"`

	ShouldClear bool `json:"-"`
}

// Empty returns the canonical "no session" value.
func Empty() Session {
	return Session{}
}

// emptyWithClear is the fail-closed result every error path converges to.
func emptyWithClear() Session {
	return Session{ShouldClear: true}
}

// IsAuthenticated reports whether the session carries a complete token pair.
// A session is never considered authenticated on any weaker condition: a
// present user profile without tokens does not count.
func (s Session) IsAuthenticated() bool {
	return s.Tokens != nil && s.Tokens.AccessToken != "" && s.Tokens.RefreshToken != ""
}

// Validate is the single shape check used by every consumer instead of ad-hoc
// nil-chasing at call sites. It returns nil only for a session IsAuthenticated
// would accept, and a wrapped ErrInvalidSession naming the missing piece
// otherwise.
func (s Session) Validate() error {
	switch {
	case s.Tokens == nil:
		return fmt.Errorf("%w: no token pair", ErrInvalidSession)
	case s.Tokens.AccessToken == "":
		return fmt.Errorf("%w: empty access token", ErrInvalidSession)
	case s.Tokens.RefreshToken == "":
		return fmt.Errorf("%w: empty refresh token", ErrInvalidSession)
	}
	return nil
}
