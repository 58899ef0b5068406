package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/scrapedown/scrapedown"
	"golang.org/x/time/rate"
)

var _ scrapedown.HostGate = (*HostGate)(nil)

// HostGate enforces the politeness delay between consecutive requests to
// one host using per-host token buckets with a burst of 1. A gate belongs
// to exactly one run; concurrent runs each carry their own gate and never
// serialize against each other.
type HostGate struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewHostGate creates a HostGate with the given minimum spacing between
// requests to the same host. A non-positive interval disables waiting.
func NewHostGate(interval time.Duration) *HostGate {
	return &HostGate{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// Wait blocks until the next request to host is allowed.
// Returns an error if the context is canceled before the wait completes.
func (g *HostGate) Wait(ctx context.Context, host string) error {
	if g.interval <= 0 {
		return ctx.Err()
	}

	g.mu.Lock()
	limiter, ok := g.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(g.interval), 1)
		g.limiters[host] = limiter
	}
	g.mu.Unlock()

	return limiter.Wait(ctx)
}
