// internal/app/system/formtoken/formtoken.go
//
// Package formtoken issues one-shot tokens for action forms. Each modal
// instance embeds a fresh token; submitting burns it, so a double click or a
// re-posted form never reaches the backend twice.
package formtoken

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TTL bounds how long an unsubmitted form stays valid. An abandoned modal
// older than this is treated like a duplicate.
const TTL = 30 * time.Minute

// Registry tracks live tokens. The zero value is not usable; construct with
// NewRegistry.
type Registry struct {
	mu   sync.Mutex
	live map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = TTL
	}
	return &Registry{
		live: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Issue mints a token and registers it as live.
func (g *Registry) Issue() string {
	tok := uuid.NewString()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.prune()
	g.live[tok] = g.now()
	return tok
}

// Redeem burns a token. It returns true exactly once per issued token;
// unknown, already-burned, and expired tokens all return false.
func (g *Registry) Redeem(tok string) bool {
	if tok == "" {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	issued, ok := g.live[tok]
	if !ok {
		return false
	}
	delete(g.live, tok)
	return g.now().Sub(issued) <= g.ttl
}

// prune drops expired tokens. Caller holds the lock.
func (g *Registry) prune() {
	cutoff := g.now().Add(-g.ttl)
	for tok, issued := range g.live {
		if issued.Before(cutoff) {
			delete(g.live, tok)
		}
	}
}

// Default registry shared by all handlers; one token namespace is enough
// for a single-process dashboard.
var std = NewRegistry(TTL)

// Issue mints a token from the default registry.
func Issue() string { return std.Issue() }

// Redeem burns a token from the default registry.
func Redeem(tok string) bool { return std.Redeem(tok) }
