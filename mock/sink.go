package mock

import (
	"context"

	"github.com/scrapedown/scrapedown"
)

var _ scrapedown.Sink = (*Sink)(nil)

// Sink is a mock implementation of scrapedown.Sink.
type Sink struct {
	WriteFn func(ctx context.Context, artifact *scrapedown.Artifact) (string, error)
}

func (s *Sink) Write(ctx context.Context, artifact *scrapedown.Artifact) (string, error) {
	return s.WriteFn(ctx, artifact)
}
