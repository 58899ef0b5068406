package mock

import (
	"context"
	"regexp"

	"github.com/scrapedown/scrapedown"
)

var _ scrapedown.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of scrapedown.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *regexp.Regexp) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *regexp.Regexp) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
