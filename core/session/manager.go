package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/ssokit/core/claims"
	"github.com/dmitrymomot/ssokit/core/envelope"
	"github.com/dmitrymomot/ssokit/core/logger"
)

// Refresher exchanges a refresh token for a new token pair.
// Both refresh.Coordinator and idp.Client satisfy it; deployments without
// coordination can plug the client in directly.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

// ProfileFetcher resolves the user profile for an access token.
type ProfileFetcher interface {
	Profile(ctx context.Context, accessToken string) (User, error)
}

// ProfilePolicy decides what happens when a refreshed token pair cannot be
// paired with a user profile. Both behaviors exist in the wild; the choice is
// per-deployment and explicit.
type ProfilePolicy int

const (
	// ProfileStrict (default) treats a refreshed session without a profile
	// as an authentication failure: the whole session is invalidated.
	ProfileStrict ProfilePolicy = iota

	// ProfileLenient persists the refreshed tokens with a nil user and lets
	// the next consumer refetch the profile lazily.
	ProfileLenient
)

// Result is the only value the processor hands to callers. Errors never
// escape as panics or returned exceptions: every failure converges to an
// empty session with ShouldClear set, carrying Err for logging only.
type Result struct {
	Session   Session
	Refreshed bool
	Err       error
}

// Manager is the request-time session processor: it decrypts the cookie,
// checks access-token expiry, refreshes through the coordinator when needed,
// and fails closed on everything else. It performs no cookie I/O itself —
// Refreshed tells the caller whether a re-encrypted cookie should be written.
type Manager struct {
	codec     *envelope.Codec
	refresher Refresher
	profiles  ProfileFetcher
	policy    ProfilePolicy
	now       func() time.Time
	log       *slog.Logger
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithProfileFetcher enables profile resolution after a refresh that has no
// profile carried over from the previous session state.
func WithProfileFetcher(pf ProfileFetcher) ManagerOption {
	return func(m *Manager) {
		m.profiles = pf
	}
}

// WithProfilePolicy selects the refreshed-session-without-profile behavior.
func WithProfilePolicy(p ProfilePolicy) ManagerOption {
	return func(m *Manager) {
		m.policy = p
	}
}

// WithLogger sets the structured logger. Defaults to a discard handler.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates a session processor. refresher may be nil, in which case
// expired sessions are invalidated instead of refreshed.
func NewManager(codec *envelope.Codec, refresher Refresher, opts ...ManagerOption) *Manager {
	m := &Manager{
		codec:     codec,
		refresher: refresher,
		policy:    ProfileStrict,
		now:       time.Now,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Process resolves an encrypted cookie value into a session.
//
// forcedAccessToken is an optimization for requests an upstream gate already
// resolved: when non-empty and the decrypted record carries a token pair, the
// forced token is spliced in and returned without a second refresh decision.
// When absent, full validation always runs.
//
// Process never panics and never returns an error: every failure path yields
// an empty session with ShouldClear set so the caller can delete the cookie.
func (m *Manager) Process(ctx context.Context, encryptedCookie, forcedAccessToken string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = m.failClosed(ctx, fmt.Errorf("session: panic during processing: %v", r))
		}
	}()

	if encryptedCookie == "" {
		return Result{Session: Empty()}
	}

	plaintext, err := m.codec.Decrypt(encryptedCookie)
	if err != nil {
		return m.failClosed(ctx, err)
	}

	sess, err := Unmarshal(plaintext)
	if err != nil {
		return m.failClosed(ctx, err)
	}
	sess.ShouldClear = false

	if forcedAccessToken != "" && sess.Tokens != nil {
		// An upstream gate already validated (and possibly refreshed) the
		// token on this request; trust it and skip the second decision.
		sess.Tokens = &TokenPair{
			AccessToken:  forcedAccessToken,
			RefreshToken: sess.Tokens.RefreshToken,
		}
		return Result{Session: sess}
	}

	if sess.Tokens == nil || sess.Tokens.AccessToken == "" {
		return m.failClosed(ctx, ErrInvalidSession)
	}

	// Missing claims or a missing exp mean "cannot verify expiry" and are
	// treated as expired, never as trusted-valid.
	if !claims.Decode(sess.Tokens.AccessToken).Expired(m.now()) {
		return Result{Session: sess}
	}

	return m.refreshSession(ctx, sess)
}

func (m *Manager) refreshSession(ctx context.Context, sess Session) Result {
	if m.refresher == nil {
		return m.failClosed(ctx, ErrNoRefresher)
	}

	pair, err := m.refresher.Refresh(ctx, sess.Tokens.RefreshToken)
	if err != nil {
		return m.failClosed(ctx, errors.Join(ErrRefreshFailed, err))
	}

	refreshed := Session{User: sess.User, Tokens: &pair}
	if refreshed.User != nil {
		return Result{Session: refreshed, Refreshed: true}
	}

	switch m.policy {
	case ProfileLenient:
		return Result{Session: refreshed, Refreshed: true}
	default:
		if m.profiles == nil {
			return m.failClosed(ctx, ErrProfileUnavailable)
		}
		user, err := m.profiles.Profile(ctx, pair.AccessToken)
		if err != nil {
			return m.failClosed(ctx, errors.Join(ErrProfileUnavailable, err))
		}
		refreshed.User = &user
		return Result{Session: refreshed, Refreshed: true}
	}
}

// failClosed is the single convergence point for every error path: no
// partially-decrypted or stale data ever leaves the processor.
func (m *Manager) failClosed(ctx context.Context, err error) Result {
	m.log.DebugContext(ctx, "session: processing failed", logger.Error(err))
	return Result{Session: emptyWithClear(), Err: err}
}
