// Package http provides the static-fetch strategy: plain HTTP retrieval of
// page markup, suitable for sites that do not require JavaScript rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/scrapedown/scrapedown"
)

// Browser-like request headers. Some sites serve reduced or blocked
// responses to the default Go user agent.
const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Ensure Fetcher implements scrapedown.Fetcher at compile time.
var _ scrapedown.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML markup over plain HTTP. It does not execute
// JavaScript; use the rod package for sites that need rendering.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to scrapedown.DefaultRequestTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the user agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   scrapedown.DefaultRequestTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the markup for a URL. Failures are typed so the
// orchestrator can tell skippable pages from retryable transport faults:
// non-success statuses map to ENOTFOUND (client errors) or EUNAVAILABLE
// (server errors and timeouts), and non-HTML content maps to
// EUNPROCESSABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", scrapedown.Errorf(scrapedown.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", defaultAccept)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", scrapedown.Errorf(scrapedown.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		code := scrapedown.ENOTFOUND
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			code = scrapedown.EUNAVAILABLE
		}
		return "", scrapedown.Errorf(code, "HTTP %d for %s", resp.StatusCode, url)
	}

	if ct := resp.Header.Get("Content-Type"); !isHTMLContentType(ct) {
		return "", scrapedown.Errorf(scrapedown.EUNPROCESSABLE, "non-HTML content type %q for %s", ct, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", scrapedown.Errorf(scrapedown.EUNAVAILABLE, "reading %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// isHTMLContentType accepts HTML-ish content types and, pragmatically,
// responses that omit the header entirely.
func isHTMLContentType(ct string) bool {
	if ct == "" {
		return true
	}
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
