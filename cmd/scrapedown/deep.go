package main

import (
	"fmt"
	"time"

	"github.com/scrapedown/scrapedown"
	"github.com/scrapedown/scrapedown/crawl"
	"github.com/scrapedown/scrapedown/htmltomarkdown"
	"github.com/scrapedown/scrapedown/json"
	"github.com/scrapedown/scrapedown/markdown"
)

// Run executes the deep command: a full two-stage crawl ending in one
// assembled document.
func (c *DeepCmd) Run(deps *Dependencies) error {
	cfg := scrapedown.DefaultCrawlConfig()
	cfg.FilterPattern = c.Filter
	cfg.MaxDepth = c.MaxDepth
	cfg.MaxPages = c.MaxPages
	cfg.RequestDelay = time.Duration(c.Delay) * time.Millisecond
	cfg.RequestTimeout = time.Duration(c.Timeout) * time.Second
	cfg.Concurrency = c.Concurrency
	if c.Render {
		cfg.RenderMode = scrapedown.RenderBrowser
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapedown.ErrorMessage(err))
		return err
	}

	seed, err := c.seed()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapedown.ErrorMessage(err))
		return err
	}

	crawler, fetcher, err := newCrawler(deps, cfg, c.Sitemap)
	if err != nil {
		return err
	}
	defer fetcher.Close()
	crawler.Order = scrapedown.Order(c.Sort)

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Discovered %d pages\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", scrapedown.TruncateURL(event.URL, 60), event.Err)
		}
	}

	var result *scrapedown.RunResult
	var runErr error
	if seed.Kind == scrapedown.SeedQuery {
		searcher, err := newFileSearcher(c.Listings)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrapedown.ErrorMessage(err))
			return err
		}
		result, runErr = crawler.RunListing(deps.Ctx, seed, searcher, cfg.MaxPages, progress)
	} else {
		result, runErr = crawler.Run(deps.Ctx, seed, progress)
	}
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapedown.ErrorMessage(runErr))
		return runErr
	}

	fmt.Fprint(deps.Stdout, scrapedown.FormatRunResult(result))

	if !c.NoSave {
		if err := c.saveRun(deps, seed, result); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: run not recorded: %s\n", scrapedown.ErrorMessage(err))
		}
	}

	// A partial artifact is still written; only a fully empty run ends
	// here.
	if result.Artifact == nil {
		return runErr
	}

	path, err := c.sink(deps).Write(deps.Ctx, result.Artifact)
	if err != nil {
		// The artifact survives a sink failure; report where it stands.
		fmt.Fprintf(deps.Stderr, "error writing output: %s\n", scrapedown.ErrorMessage(err))
		fmt.Fprintf(deps.Stdout, "Assembled %d pages (not written)\n", len(result.Artifact.Units))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return runErr
}

func (c *DeepCmd) seed() (scrapedown.SeedSpec, error) {
	if c.Query != "" {
		if c.Listings == "" {
			return scrapedown.SeedSpec{}, scrapedown.Errorf(scrapedown.EINVALID,
				"query seeds need a listing source; pass --listings FILE")
		}
		seed := scrapedown.SeedSpec{
			Kind:     scrapedown.SeedQuery,
			Value:    c.Query,
			Location: c.Location,
		}
		return seed, seed.Validate()
	}
	seed := scrapedown.SeedSpec{
		Kind:        scrapedown.SeedURL,
		Value:       c.URL,
		ScopeDomain: c.Scope,
	}
	return seed, seed.Validate()
}

func (c *DeepCmd) sink(deps *Dependencies) scrapedown.Sink {
	if c.Format == "json" {
		return json.NewSink(c.Out)
	}
	return markdown.NewSink(htmltomarkdown.NewConverter(), c.Out)
}

func (c *DeepCmd) saveRun(deps *Dependencies, seed scrapedown.SeedSpec, result *scrapedown.RunResult) error {
	run := &scrapedown.Run{
		Kind:      seed.Kind,
		Seed:      seed.Value,
		Location:  seed.Location,
		Attempted: result.Attempted,
		Succeeded: result.Succeeded,
		Failed:    len(result.Failed),
	}

	var pages []*scrapedown.PageRecord
	if result.Artifact != nil {
		for _, unit := range result.Artifact.Units {
			pages = append(pages, unit.Page)
		}
	}

	return deps.Runs.CreateRun(deps.Ctx, run, pages)
}
