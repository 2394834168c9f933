package refresh

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/ssokit/core/idp"
	"github.com/dmitrymomot/ssokit/core/logger"
	"github.com/dmitrymomot/ssokit/core/session"
)

// Client is the outbound refresh call the coordinator deduplicates.
// *idp.Client satisfies it.
type Client interface {
	Refresh(ctx context.Context, refreshToken string) (session.TokenPair, error)
}

// Coordinator guarantees at most one in-flight provider refresh per distinct
// refresh-token value within the process. Concurrent callers with the same
// token join the pending call and all receive its result. Tokens the provider
// rejected with a 4xx are circuit-broken via the Blocklist and never retried.
type Coordinator struct {
	client    Client
	blocklist Blocklist
	group     singleflight.Group
	log       *slog.Logger
}

// CoordinatorOption configures the Coordinator.
type CoordinatorOption func(*Coordinator)

// WithBlocklist replaces the default in-memory blocklist.
func WithBlocklist(b Blocklist) CoordinatorOption {
	return func(c *Coordinator) {
		if b != nil {
			c.blocklist = b
		}
	}
}

// WithLogger sets the structured logger. Defaults to a discard handler.
func WithLogger(log *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCoordinator creates a refresh coordinator around the given client.
func NewCoordinator(client Client, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		client:    client,
		blocklist: NewMemoryBlocklist(),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh exchanges the refresh token for a new pair, coalescing concurrent
// attempts for the same token value. Failure classification:
//
//   - empty token: ErrNoRefreshToken, no provider call
//   - blocklisted token: ErrTokenBlocked, no provider call
//   - provider 4xx: token is blocklisted, error returned
//   - anything else: error returned, token stays retryable
func (c *Coordinator) Refresh(ctx context.Context, refreshToken string) (session.TokenPair, error) {
	if refreshToken == "" {
		return session.TokenPair{}, ErrNoRefreshToken
	}

	if blocked, err := c.blocklist.IsBlocked(ctx, refreshToken); err != nil {
		// A broken blocklist store must not take refresh down with it.
		c.log.WarnContext(ctx, "refresh: blocklist check failed", logger.Error(err))
	} else if blocked {
		return session.TokenPair{}, ErrTokenBlocked
	}

	v, err, _ := c.group.Do(refreshToken, func() (any, error) {
		pair, err := c.client.Refresh(ctx, refreshToken)
		if err != nil {
			var apiErr *idp.Error
			if errors.As(err, &apiErr) && apiErr.ClientFailure() {
				if berr := c.blocklist.Block(ctx, refreshToken); berr != nil {
					c.log.WarnContext(ctx, "refresh: blocklist update failed", logger.Error(berr))
				}
			}
			return nil, err
		}

		if berr := c.blocklist.Unblock(ctx, refreshToken); berr != nil {
			c.log.WarnContext(ctx, "refresh: blocklist cleanup failed", logger.Error(berr))
		}
		return pair, nil
	})
	if err != nil {
		return session.TokenPair{}, err
	}

	return v.(session.TokenPair), nil
}

// GetValidToken returns a fresh access token for the refresh token, or the
// empty string when no valid token can be produced. It never returns stale
// tokens: any failure yields "".
func (c *Coordinator) GetValidToken(ctx context.Context, refreshToken string) string {
	pair, err := c.Refresh(ctx, refreshToken)
	if err != nil {
		if !errors.Is(err, ErrNoRefreshToken) && !errors.Is(err, ErrTokenBlocked) {
			c.log.DebugContext(ctx, "refresh: attempt failed", logger.Error(err))
		}
		return ""
	}
	return pair.AccessToken
}
