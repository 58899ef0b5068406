// Package rod provides the rendered-fetch strategy: pages are loaded in a
// headless Chrome browser so JavaScript-built markup is available to the
// extractors. The rest of the pipeline is agnostic to which fetch strategy
// produced the markup.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/scrapedown/scrapedown"
)

// Ensure Fetcher implements scrapedown.Fetcher at compile time.
var _ scrapedown.Fetcher = (*Fetcher)(nil)

// DefaultSettleDelay is how long a page gets to run scripts after its load
// event before the DOM is captured.
const DefaultSettleDelay = 2 * time.Second

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser
	cleanup func()
	settle  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithSettleDelay overrides the post-load settle delay.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, scrapedown.Errorf(scrapedown.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // clean up launched process on connection failure
		return nil, scrapedown.Errorf(scrapedown.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	f := &Fetcher{
		browser: browser,
		cleanup: l.Kill,
		settle:  DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL, waits for the page to load plus the settle
// delay, and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", scrapedown.Errorf(scrapedown.EUNAVAILABLE, "opening page for %s: %v", url, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", scrapedown.Errorf(scrapedown.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", scrapedown.Errorf(scrapedown.EUNAVAILABLE, "loading %s: %v", url, err)
	}

	if f.settle > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.settle):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", scrapedown.Errorf(scrapedown.EUNAVAILABLE, "capturing %s: %v", url, err)
	}

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	if f.cleanup != nil {
		f.cleanup()
	}
	return err
}
