package scrapedown

import (
	"regexp"
	"time"
)

// RenderMode selects the fetch strategy for a run.
type RenderMode string

// Supported render modes.
const (
	// RenderStatic fetches raw markup over plain HTTP.
	RenderStatic RenderMode = "static"

	// RenderBrowser hands the URL to a browser-based collaborator that
	// returns markup equivalent to a fully rendered DOM.
	RenderBrowser RenderMode = "rendered"
)

// Default crawl limits. Delay and timeout values mirror the polite-scraping
// defaults the pipeline was tuned with.
const (
	DefaultMaxDepth       = 2
	DefaultMaxPages       = 50
	DefaultRequestDelay   = 1500 * time.Millisecond
	DefaultRequestTimeout = 15 * time.Second
	DefaultListingDelay   = 200 * time.Millisecond
)

// CrawlConfig bounds a single run. MaxPages bounds total fetched pages
// including the seed.
type CrawlConfig struct {
	// FilterPattern, when non-empty, is a regular expression matched against
	// discovered URLs; non-matching links are never admitted.
	FilterPattern string `json:"filterPattern,omitempty"`

	// MaxDepth is the maximum number of link hops from the seed.
	MaxDepth int `json:"maxDepth"`

	// MaxPages bounds the total number of dispatched pages, seed included.
	MaxPages int `json:"maxPages"`

	// RequestDelay is the minimum spacing between requests to one host.
	RequestDelay time.Duration `json:"requestDelay"`

	// RequestTimeout applies to each individual fetch.
	RequestTimeout time.Duration `json:"requestTimeout"`

	RenderMode RenderMode `json:"renderMode"`

	// Concurrency is the Stage 2 worker count. Values below 1 mean
	// strictly sequential processing.
	Concurrency int `json:"concurrency"`
}

// DefaultCrawlConfig returns a config with the standard limits applied.
func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		MaxDepth:       DefaultMaxDepth,
		MaxPages:       DefaultMaxPages,
		RequestDelay:   DefaultRequestDelay,
		RequestTimeout: DefaultRequestTimeout,
		RenderMode:     RenderStatic,
		Concurrency:    1,
	}
}

// Validate returns an error if the config contains invalid fields.
func (c *CrawlConfig) Validate() error {
	if c.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must be >= 0")
	}
	if c.MaxPages <= 0 {
		return Errorf(EINVALID, "max pages must be > 0")
	}
	if c.RequestDelay < 0 {
		return Errorf(EINVALID, "request delay must be >= 0")
	}
	if c.RequestTimeout <= 0 {
		return Errorf(EINVALID, "request timeout must be > 0")
	}
	switch c.RenderMode {
	case RenderStatic, RenderBrowser:
	default:
		return Errorf(EINVALID, "unknown render mode %q", c.RenderMode)
	}
	if c.FilterPattern != "" {
		if _, err := regexp.Compile(c.FilterPattern); err != nil {
			return Errorf(EINVALID, "invalid filter pattern %q: %v", c.FilterPattern, err)
		}
	}
	return nil
}

// Filter compiles the filter pattern. Returns nil when no pattern is set.
func (c *CrawlConfig) Filter() (*regexp.Regexp, error) {
	if c.FilterPattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.FilterPattern)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid filter pattern %q: %v", c.FilterPattern, err)
	}
	return re, nil
}
