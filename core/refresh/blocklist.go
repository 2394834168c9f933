package refresh

import (
	"context"
	"sync"
)

// Blocklist tracks refresh tokens that are known-bad for the process (or
// deployment) lifetime. It backs the coordinator's circuit breaker: a token
// the provider rejected with a client error is never retried.
//
// Implementations must be safe for concurrent use.
type Blocklist interface {
	// IsBlocked reports whether the refresh token has been marked bad.
	IsBlocked(ctx context.Context, refreshToken string) (bool, error)

	// Block marks the refresh token as permanently bad.
	Block(ctx context.Context, refreshToken string) error

	// Unblock removes the mark, typically after a successful refresh
	// proves the token usable again.
	Unblock(ctx context.Context, refreshToken string) error
}

// NoOpBlocklist disables circuit breaking. Every token is always retryable.
type NoOpBlocklist struct{}

func (NoOpBlocklist) IsBlocked(context.Context, string) (bool, error) { return false, nil }
func (NoOpBlocklist) Block(context.Context, string) error             { return nil }
func (NoOpBlocklist) Unblock(context.Context, string) error           { return nil }

// MemoryBlocklist is the default process-wide blocklist. State is an explicit
// injectable object rather than package-level, so tests get isolated
// instances and multi-tenant hosts can keep tenants apart.
type MemoryBlocklist struct {
	mu      sync.RWMutex
	blocked map[string]struct{}
}

// NewMemoryBlocklist creates an empty in-memory blocklist.
func NewMemoryBlocklist() *MemoryBlocklist {
	return &MemoryBlocklist{blocked: make(map[string]struct{})}
}

func (b *MemoryBlocklist) IsBlocked(_ context.Context, refreshToken string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.blocked[refreshToken]
	return ok, nil
}

func (b *MemoryBlocklist) Block(_ context.Context, refreshToken string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blocked[refreshToken] = struct{}{}
	return nil
}

func (b *MemoryBlocklist) Unblock(_ context.Context, refreshToken string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.blocked, refreshToken)
	return nil
}

// Len returns the number of blocked tokens, for tests and introspection.
func (b *MemoryBlocklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.blocked)
}
