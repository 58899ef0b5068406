package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/scrapedown/scrapedown"
	"github.com/scrapedown/scrapedown/crawl"
	"github.com/scrapedown/scrapedown/goquery"
	"github.com/scrapedown/scrapedown/trafilatura"
)

// Run executes the scrape command: fetch one page, extract the requested
// intent, print the items as JSON.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	cfg := scrapedown.DefaultCrawlConfig()
	cfg.RequestTimeout = time.Duration(c.Timeout) * time.Second

	fetcher, err := newFetcher(deps, c.Render, cfg)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	pageURL := crawl.EnsureScheme(c.URL)
	html, err := fetcher.Fetch(deps.Ctx, pageURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapedown.ErrorMessage(err))
		return err
	}

	intent := scrapedown.ParseIntent(c.Extract)
	extractor := goquery.NewIntentExtractor(
		goquery.NewContentExtractor(goquery.WithFallback(trafilatura.NewExtractor())),
	)

	items, err := extractor.ExtractIntent(html, pageURL, intent)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapedown.ErrorMessage(err))
		return err
	}

	out := struct {
		URL    string                  `json:"url"`
		Intent scrapedown.Intent       `json:"intent"`
		Count  int                     `json:"count"`
		Items  []scrapedown.IntentItem `json:"items"`
	}{
		URL:    pageURL,
		Intent: intent,
		Count:  len(items),
		Items:  items,
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
