package mock

import (
	"context"

	"github.com/scrapedown/scrapedown"
)

var _ scrapedown.HostGate = (*HostGate)(nil)

// HostGate is a mock implementation of scrapedown.HostGate.
type HostGate struct {
	WaitFn func(ctx context.Context, host string) error
}

func (g *HostGate) Wait(ctx context.Context, host string) error {
	if g.WaitFn == nil {
		return nil
	}
	return g.WaitFn(ctx, host)
}
