package main

import (
	"fmt"
	"time"

	"github.com/scrapedown/scrapedown"
	"github.com/scrapedown/scrapedown/crawl"
	"github.com/scrapedown/scrapedown/goquery"
	sdhttp "github.com/scrapedown/scrapedown/http"
	sdslog "github.com/scrapedown/scrapedown/slog"
)

// Run executes the enrich command: resolve listings, scrape each website
// for contact data, print the scored leads.
func (c *EnrichCmd) Run(deps *Dependencies) error {
	searcher, err := newFileSearcher(c.Listings)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapedown.ErrorMessage(err))
		return err
	}

	fetcher := sdslog.NewLoggingFetcher(
		sdhttp.NewFetcher(sdhttp.WithTimeout(time.Duration(c.Timeout)*time.Second)),
		deps.Logger,
	)
	defer fetcher.Close()

	gate := crawl.NewHostGate(time.Duration(c.Delay) * time.Millisecond)
	enricher := sdslog.NewLoggingEnricher(goquery.NewEnricher(fetcher, gate), deps.Logger)

	pipeline := &crawl.LeadPipeline{
		Searcher: searcher,
		Enricher: enricher,
		Limit:    c.Limit,
	}

	result, err := pipeline.Run(deps.Ctx, c.Query, c.Location)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapedown.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "attempted %d, succeeded %d, failed %d\n",
		result.Attempted, result.Succeeded, len(result.Failed))
	for _, f := range result.Failed {
		fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", scrapedown.TruncateURL(f.URL, 60), f.Reason)
	}

	fmt.Fprint(deps.Stdout, scrapedown.FormatLeads(result.Leads))
	return nil
}
