package mock

import "github.com/scrapedown/scrapedown"

var _ scrapedown.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of scrapedown.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
