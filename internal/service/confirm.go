package service

import (
	"strings"
	"sync"
	"time"
)

// ConfirmGuard makes destructive operations two-step: the first request arms
// a pending confirmation for the target, and only a follow-up request that
// carries confirm=true within the TTL is allowed through. An expired or
// unarmed confirmation re-arms instead of proceeding.
type ConfirmGuard struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	pending map[string]time.Time
}

// NewConfirmGuard builds a guard with the given confirmation window.
func NewConfirmGuard(ttl time.Duration) *ConfirmGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ConfirmGuard{
		ttl:     ttl,
		now:     time.Now,
		pending: make(map[string]time.Time),
	}
}

// Check reports whether the operation may proceed. kind scopes the target so
// deleting an account and deleting a profile for the same name are confirmed
// independently.
func (g *ConfirmGuard) Check(kind, target string, confirmed bool) bool {
	key := kind + "\x00" + strings.ToLower(strings.TrimSpace(target))

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	armedAt, armed := g.pending[key]
	if confirmed && armed && now.Sub(armedAt) <= g.ttl {
		delete(g.pending, key)
		return true
	}

	g.pending[key] = now
	g.sweepLocked(now)
	return false
}

func (g *ConfirmGuard) sweepLocked(now time.Time) {
	for key, armedAt := range g.pending {
		if now.Sub(armedAt) > g.ttl {
			delete(g.pending, key)
		}
	}
}
