package scrapedown

import "context"

// Fetcher retrieves raw markup for one URL. Implementations may fetch over
// plain HTTP or delegate to a browser-based collaborator for
// JavaScript-rendered sites; the rest of the pipeline is agnostic to which
// strategy produced the markup.
type Fetcher interface {
	// Fetch returns the page markup. The context controls timeout and
	// cancellation. Failures are typed by error code: EUNAVAILABLE for
	// transport-level failures, ENOTFOUND for non-success statuses,
	// EUNPROCESSABLE for non-HTML content.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	Close() error
}

// HostGate enforces the politeness delay between consecutive requests to
// the same host. A gate is run-scoped: concurrent runs do not serialize
// against each other.
type HostGate interface {
	// Wait blocks until the next request to host is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
