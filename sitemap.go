package scrapedown

import (
	"context"
	"regexp"
)

// SitemapService discovers URLs from website sitemaps. When a site
// publishes a sitemap, Stage 1 can seed the frontier from it instead of
// expanding links recursively.
type SitemapService interface {
	// DiscoverURLs finds URLs from a site's sitemap. It first checks
	// robots.txt for sitemap directives, then falls back to /sitemap.xml.
	// Sitemap indexes are resolved recursively.
	//
	// When filter is non-nil, only matching URLs are returned.
	DiscoverURLs(ctx context.Context, baseURL string, filter *regexp.Regexp) ([]string, error)
}
