package mock

import "github.com/scrapedown/scrapedown"

var _ scrapedown.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of scrapedown.Extractor.
type Extractor struct {
	ExtractFn func(html string, url string) (*scrapedown.PageRecord, error)
}

func (e *Extractor) Extract(html string, url string) (*scrapedown.PageRecord, error) {
	return e.ExtractFn(html, url)
}

var _ scrapedown.IntentExtractor = (*IntentExtractor)(nil)

// IntentExtractor is a mock implementation of scrapedown.IntentExtractor.
type IntentExtractor struct {
	ExtractIntentFn func(html string, baseURL string, intent scrapedown.Intent) ([]scrapedown.IntentItem, error)
}

func (e *IntentExtractor) ExtractIntent(html string, baseURL string, intent scrapedown.Intent) ([]scrapedown.IntentItem, error) {
	return e.ExtractIntentFn(html, baseURL, intent)
}
